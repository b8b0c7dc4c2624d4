package testutil

import (
	"os"
	"strings"
	"time"

	"github.com/datastax/entity-filter/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// TestLogger returns a development logger when TEST_TRACE=on, otherwise a no-op logger
func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		PanicIfError(err)
		return log.NewZapLogger(logger)
	}

	return log.NewNopLogger()
}

// ObservedLogger returns a debug level logger recording its entries in memory
func ObservedLogger() (log.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return log.NewZapLogger(zap.New(core)), logs
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func StringPtr(v string) *string {
	return &v
}

func IntPtr(v int) *int {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}

func TimePtr(v time.Time) *time.Time {
	return &v
}
