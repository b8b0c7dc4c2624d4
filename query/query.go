// Package query defines the query handle the filter engine composes onto.
package query

import (
	"reflect"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/types"
)

// Queryable is a pending query over a sequence of T. Every method returns a new
// handle with one more stage; the receiver is left unchanged and nothing is executed.
type Queryable[T any] interface {
	Where(predicate expr.Expr) Queryable[T]
	OrderBy(key expr.Path, direction types.Direction) Queryable[T]
	Skip(n int) Queryable[T]
	Take(n int) Queryable[T]
	ElementType() reflect.Type
}

// StageKind identifies a stage of a Plan
type StageKind int

const (
	WhereStage StageKind = 1 + iota
	OrderByStage
	SkipStage
	TakeStage
)

func (k StageKind) String() string {
	switch k {
	case WhereStage:
		return "Where"
	case OrderByStage:
		return "OrderBy"
	case SkipStage:
		return "Skip"
	case TakeStage:
		return "Take"
	default:
		return "unknown"
	}
}

type Stage struct {
	Kind      StageKind
	Predicate expr.Expr
	Key       expr.Path
	Direction types.Direction
	Count     int
}

// Plan is the ordered list of stages recorded by a query handle.
// Append never modifies the receiver's backing array.
type Plan []Stage

func (p Plan) Append(stage Stage) Plan {
	next := make(Plan, len(p), len(p)+1)
	copy(next, p)
	return append(next, stage)
}

// ElementType returns the reflect type of T
func ElementType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
