package db

import (
	"context"
	"errors"
	"time"

	"github.com/datastax/entity-filter/log"
	"github.com/gocql/gocql"
)

// Db represents a connection to a db
type Db struct {
	session Session
	logger  log.Logger
}

// NewDb Gets a pointer to a db
func NewDb(username string, password string, hosts ...string) (*Db, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.PoolConfig.HostSelectionPolicy = NewDefaultHostSelectionPolicy()
	cluster.Timeout = 10 * time.Second

	if username != "" && password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: username,
			Password: password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.New("failed to create session")
	}

	return NewDbWithSession(NewGoCqlSession(session)), nil
}

// NewDbWithSession creates a db using an existing session, e.g. a SessionMock
func NewDbWithSession(session Session) *Db {
	return &Db{
		session: session,
		logger:  log.NewNopLogger(),
	}
}

func (db *Db) WithLogger(logger log.Logger) *Db {
	db.logger = logger
	return db
}

// Execute executes query and returns the rows of the result set
func (db *Db) Execute(ctx context.Context, query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	db.logger.Debug("executing query", "query", query, "values", values)
	rs, err := db.session.ExecuteIter(ctx, query, options, values...)
	if err != nil {
		db.logger.Error("query failed", "query", query, "error", err)
		return nil, err
	}
	return rs, nil
}
