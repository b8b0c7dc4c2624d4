// Package filter turns a filter model, a plain struct holding optional criteria, into
// predicates composed onto a query.Queryable, and applies ordering and pagination.
//
// Model fields are bound to entity paths through a Schema. A path is a dot separated
// list of field names ("Customer.Name") where a segment may also be a collection
// token ("[Orders | Any | Status == TargetStatus]") testing the elements of a slice.
package filter

import (
	"github.com/datastax/entity-filter/config"
	"github.com/datastax/entity-filter/log"
)

// Engine resolves paths and builds predicates. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	naming          config.NamingConvention
	logger          log.Logger
	defaultPageSize int
	maxPageSize     int
}

var defaultEngine = NewEngine(nil)

// NewEngine creates an engine from cfg, or from the default configuration when cfg is nil
func NewEngine(cfg config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewEngineConfig()
	}
	e := &Engine{
		naming:          cfg.Naming(),
		logger:          cfg.Logger(),
		defaultPageSize: cfg.DefaultPageSize(),
		maxPageSize:     cfg.MaxPageSize(),
	}
	if e.naming == nil {
		e.naming = config.NewDefaultNaming()
	}
	if e.logger == nil {
		e.logger = log.NewNopLogger()
	}
	return e
}

// DefaultEngine returns the engine used when a nil *Engine is passed to the package functions
func DefaultEngine() *Engine {
	return defaultEngine
}

func (e *Engine) orDefault() *Engine {
	if e == nil {
		return defaultEngine
	}
	return e
}

func (e *Engine) Naming() config.NamingConvention {
	return e.orDefault().naming
}

func (e *Engine) DefaultPageSize() int {
	return e.orDefault().defaultPageSize
}

func (e *Engine) MaxPageSize() int {
	return e.orDefault().maxPageSize
}
