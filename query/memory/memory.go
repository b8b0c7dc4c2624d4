// Package memory is a query host over an in-memory slice.
package memory

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/types"
)

var ErrNotMemoryQuery = errors.New("query is not an in-memory query")

// Query is a lazy query over a slice. Stages run in the order they were added when ToSlice is called.
type Query[T any] struct {
	source []T
	plan   query.Plan
}

// From returns a query over items. The slice is not modified by any stage.
func From[T any](items []T) Query[T] {
	return Query[T]{source: items}
}

func (q Query[T]) with(stage query.Stage) Query[T] {
	return Query[T]{source: q.source, plan: q.plan.Append(stage)}
}

func (q Query[T]) Where(predicate expr.Expr) query.Queryable[T] {
	return q.with(query.Stage{Kind: query.WhereStage, Predicate: predicate})
}

func (q Query[T]) OrderBy(key expr.Path, direction types.Direction) query.Queryable[T] {
	return q.with(query.Stage{Kind: query.OrderByStage, Key: key, Direction: direction})
}

func (q Query[T]) Skip(n int) query.Queryable[T] {
	return q.with(query.Stage{Kind: query.SkipStage, Count: n})
}

func (q Query[T]) Take(n int) query.Queryable[T] {
	return q.with(query.Stage{Kind: query.TakeStage, Count: n})
}

func (q Query[T]) ElementType() reflect.Type {
	return query.ElementType[T]()
}

func (q Query[T]) Plan() query.Plan {
	return q.plan
}

// ToSlice executes the query
func (q Query[T]) ToSlice() ([]T, error) {
	items := make([]T, len(q.source))
	copy(items, q.source)

	var err error
	for i, stage := range q.plan {
		switch stage.Kind {
		case query.WhereStage:
			items, err = where(items, stage.Predicate)
		case query.OrderByStage:
			err = orderBy(items, stage.Key, stage.Direction)
		case query.SkipStage:
			items = items[clamp(stage.Count, len(items)):]
		case query.TakeStage:
			items = items[:clamp(stage.Count, len(items))]
		default:
			err = fmt.Errorf("unknown stage %v", stage.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Kind, err)
		}
	}
	return items, nil
}

// ToSlice executes q, which must have been created by From
func ToSlice[T any](q query.Queryable[T]) ([]T, error) {
	mq, ok := q.(Query[T])
	if !ok {
		return nil, ErrNotMemoryQuery
	}
	return mq.ToSlice()
}

func where[T any](items []T, predicate expr.Expr) ([]T, error) {
	result := make([]T, 0, len(items))
	for i := range items {
		ok, err := expr.Eval(predicate, reflect.ValueOf(&items[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, items[i])
		}
	}
	return result, nil
}

func orderBy[T any](items []T, key expr.Path, direction types.Direction) error {
	keys := make([]reflect.Value, len(items))
	for i := range items {
		v, err := key.Value(reflect.ValueOf(&items[i]))
		if err != nil {
			return err
		}
		keys[i] = v
	}

	var compareErr error
	indexes := make([]int, len(items))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(i, j int) bool {
		c, err := expr.Compare(keys[indexes[i]], keys[indexes[j]])
		if err != nil && compareErr == nil {
			compareErr = err
		}
		if direction == types.Descending {
			return c > 0
		}
		return c < 0
	})
	if compareErr != nil {
		return compareErr
	}

	sorted := make([]T, len(items))
	for i, index := range indexes {
		sorted[i] = items[index]
	}
	copy(items, sorted)
	return nil
}

func clamp(n, length int) int {
	if n < 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

var _ query.Queryable[struct{}] = Query[struct{}]{}
