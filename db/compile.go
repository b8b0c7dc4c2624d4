package db

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/types"
)

// ErrUnsupported is returned when a query plan can not be expressed in CQL
var ErrUnsupported = errors.New("not supported by CQL")

var ErrNotTableQuery = errors.New("query is not a table query")

// statement is a query plan compiled to a single SELECT.
// The first skip rows returned by the select are discarded client side.
type statement struct {
	where   []ConditionItem
	orderBy []ColumnOrder
	// limit is negative when the plan has no Take
	limit int
	skip  int
}

// rowCount is the number of rows the select must return, negative when unbounded
func (s statement) rowCount() int {
	if s.limit < 0 {
		return -1
	}
	return s.skip + s.limit
}

func compile(plan query.Plan) (statement, error) {
	s := statement{limit: -1}
	paged := false

	var orderBy []ColumnOrder
	for i, stage := range plan {
		switch stage.Kind {
		case query.WhereStage:
			if paged {
				return statement{}, fmt.Errorf("%w: stage %d, filtering after Skip or Take", ErrUnsupported, i)
			}
			conditions, err := toConditions(stage.Predicate)
			if err != nil {
				return statement{}, fmt.Errorf("stage %d: %w", i, err)
			}
			s.where = append(s.where, conditions...)
		case query.OrderByStage:
			if paged {
				return statement{}, fmt.Errorf("%w: stage %d, ordering after Skip or Take", ErrUnsupported, i)
			}
			column, err := columnOf(stage.Key)
			if err != nil {
				return statement{}, fmt.Errorf("stage %d: %w", i, err)
			}
			orderBy = append(orderBy, ColumnOrder{Column: column, Order: stage.Direction})
		case query.SkipStage:
			paged = true
			n := nonNegative(stage.Count)
			s.skip += n
			if s.limit >= 0 {
				s.limit = nonNegative(s.limit - n)
			}
		case query.TakeStage:
			paged = true
			n := nonNegative(stage.Count)
			if s.limit < 0 || n < s.limit {
				s.limit = n
			}
		default:
			return statement{}, fmt.Errorf("%w: stage %d of kind %s", ErrUnsupported, i, stage.Kind)
		}
	}

	// the last order by is the primary sort key
	for i := len(orderBy) - 1; i >= 0; i-- {
		s.orderBy = append(s.orderBy, orderBy[i])
	}
	return s, nil
}

func toConditions(predicate expr.Expr) ([]ConditionItem, error) {
	switch predicate.(type) {
	case expr.Comparison, expr.Conjunction:
	default:
		return nil, fmt.Errorf("%w: expression %T", ErrUnsupported, predicate)
	}

	comparisons := expr.Flatten(predicate)
	items := make([]ConditionItem, 0, len(comparisons))
	for _, comparison := range comparisons {
		column, err := columnOf(comparison.Target)
		if err != nil {
			return nil, err
		}
		if isNil(comparison.Value) {
			return nil, fmt.Errorf("%w: comparison of %s with null", ErrUnsupported, comparison.Target)
		}

		switch comparison.Op {
		case types.EqualDate:
			day, ok := comparison.Value.(time.Time)
			if !ok {
				return nil, fmt.Errorf("operator %s requires a time value, got %T", comparison.Op, comparison.Value)
			}
			day = types.TruncateToDate(day)
			items = append(items,
				ConditionItem{Column: column, Operator: ">=", Value: day},
				ConditionItem{Column: column, Operator: "<", Value: day.AddDate(0, 0, 1)})
		case types.Contains:
			items = append(items, ConditionItem{Column: column, Operator: "LIKE", Value: fmt.Sprintf("%%%v%%", comparison.Value)})
		default:
			operator, ok := types.CqlOperators[comparison.Op]
			if !ok {
				return nil, fmt.Errorf("%w: operator %s", ErrUnsupported, comparison.Op)
			}
			items = append(items, ConditionItem{Column: column, Operator: operator, Value: comparison.Value})
		}
	}
	return items, nil
}

// columnOf returns the column of a path made of a single field
func columnOf(path expr.Path) (string, error) {
	if !path.IsSimple() || len(path.Steps) != 1 {
		return "", fmt.Errorf("%w: path %s does not target a column of the table", ErrUnsupported, path)
	}
	return path.Columns()[0], nil
}

func isNil(value interface{}) bool {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
