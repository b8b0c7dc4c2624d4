package filter

import (
	"reflect"
	"time"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/types"
)

// Apply builds the predicate "target op value". value is captured once: pointers are dereferenced
// and EqualDate constants are truncated to their date.
func (e *Engine) Apply(target expr.Path, op types.Operator, value interface{}) (expr.Expr, error) {
	if !op.Valid() {
		return nil, newError(ErrUnknownOperator, op.String(), "", "operator %d is not supported", int(op))
	}

	value = constant(value)
	if err := expr.CheckOperands(op, target.Type(), reflect.TypeOf(value)); err != nil {
		return nil, newError(ErrTypeMismatch, target.String(), typeName(target.Type()),
			"can not apply %s to %s", op, target).wrap(err)
	}

	if op == types.EqualDate {
		if t, ok := value.(time.Time); ok {
			value = types.TruncateToDate(t)
		}
	}

	return expr.Comparison{Target: target, Op: op, Value: value}, nil
}

// constant dereferences non-nil pointers. A nil pointer keeps its type so that operand checks can run.
func constant(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	for v.IsValid() && v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() {
		return value
	}
	return v.Interface()
}
