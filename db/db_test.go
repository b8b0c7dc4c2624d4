package db

import (
	"context"
	"errors"
	"testing"

	"github.com/datastax/entity-filter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDbExecuteLogs(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	db := NewDbWithSession(NewSessionMock(map[string]interface{}{"id": 1})).WithLogger(logger)

	rs, err := db.Execute(context.Background(), `SELECT * FROM "store"."orders"`, NewQueryOptions())
	require.NoError(t, err)
	assert.Len(t, rs.Values(), 1)

	entries := logs.FilterMessage("executing query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, `SELECT * FROM "store"."orders"`, entries[0].ContextMap()["query"])
}

func TestDbExecuteLogsFailures(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	session := &SessionMock{}
	session.On("ExecuteIter", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("unavailable"))
	db := NewDbWithSession(session).WithLogger(logger)

	rs, err := db.Execute(context.Background(), `SELECT * FROM "store"."orders"`, NewQueryOptions())
	assert.Nil(t, rs)
	assert.EqualError(t, err, "unavailable")

	entries := logs.FilterMessage("query failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}
