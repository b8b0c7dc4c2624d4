package config

import (
	"fmt"

	"github.com/datastax/entity-filter/log"
	"github.com/spf13/viper"
)

const (
	DefaultPageSize    = 20
	DefaultMaxPageSize = 500
)

type Config interface {
	Naming() NamingConvention
	Logger() log.Logger
	DefaultPageSize() int
	MaxPageSize() int
}

type EngineConfig struct {
	naming          NamingConvention
	logger          log.Logger
	defaultPageSize int
	maxPageSize     int
}

func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		naming:          NewDefaultNaming(),
		logger:          log.NewNopLogger(),
		defaultPageSize: DefaultPageSize,
		maxPageSize:     DefaultMaxPageSize,
	}
}

func (cfg EngineConfig) Naming() NamingConvention {
	return cfg.naming
}

func (cfg EngineConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg EngineConfig) DefaultPageSize() int {
	return cfg.defaultPageSize
}

func (cfg EngineConfig) MaxPageSize() int {
	return cfg.maxPageSize
}

func (cfg *EngineConfig) WithNaming(naming NamingConvention) *EngineConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *EngineConfig) WithLogger(logger log.Logger) *EngineConfig {
	cfg.logger = logger
	return cfg
}

func (cfg *EngineConfig) WithDefaultPageSize(pageSize int) *EngineConfig {
	cfg.defaultPageSize = pageSize
	return cfg
}

func (cfg *EngineConfig) WithMaxPageSize(pageSize int) *EngineConfig {
	cfg.maxPageSize = pageSize
	return cfg
}

// FromViper reads the engine settings owned by the host application:
//
//	naming:            "default" (snake_case columns, CamelCase fields) or "exact"
//	default-page-size: page size used when a request doesn't specify one
//	max-page-size:     upper bound accepted for a requested page size
//	log-level:         zap level, logging is disabled when empty
func FromViper(v *viper.Viper) (*EngineConfig, error) {
	v.SetDefault("naming", "default")
	v.SetDefault("default-page-size", DefaultPageSize)
	v.SetDefault("max-page-size", DefaultMaxPageSize)

	cfg := NewEngineConfig()

	switch naming := v.GetString("naming"); naming {
	case "default":
		cfg.WithNaming(NewDefaultNaming())
	case "exact":
		cfg.WithNaming(NewExactNaming())
	default:
		return nil, fmt.Errorf("invalid naming convention '%s', expected 'default' or 'exact'", naming)
	}

	defaultPageSize := v.GetInt("default-page-size")
	maxPageSize := v.GetInt("max-page-size")
	if defaultPageSize <= 0 || maxPageSize <= 0 {
		return nil, fmt.Errorf("page sizes must be positive, got default-page-size=%d max-page-size=%d",
			defaultPageSize, maxPageSize)
	}
	if defaultPageSize > maxPageSize {
		return nil, fmt.Errorf("default-page-size (%d) can not exceed max-page-size (%d)", defaultPageSize, maxPageSize)
	}
	cfg.WithDefaultPageSize(defaultPageSize).WithMaxPageSize(maxPageSize)

	if level := v.GetString("log-level"); level != "" {
		logger, err := log.NewZapLoggerWithLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log-level: %w", err)
		}
		cfg.WithLogger(logger)
	}

	return cfg, nil
}
