package expr

import (
	"fmt"
	"reflect"

	"github.com/datastax/entity-filter/types"
)

// Eval evaluates e against entity, a value of the root type of the expression paths or a pointer to it
func Eval(e Expr, entity reflect.Value) (bool, error) {
	switch e := e.(type) {
	case Comparison:
		v, err := e.Target.Value(entity)
		if err != nil {
			return false, err
		}
		return Apply(e.Op, v, e.Value)
	case Conjunction:
		ok, err := Eval(e.Left, entity)
		if err != nil || !ok {
			return false, err
		}
		return Eval(e.Right, entity)
	case nil:
		return true, nil
	default:
		return false, fmt.Errorf("unsupported expression %T", e)
	}
}

// Value returns the value located by the path. The returned value is invalid
// when a nil pointer is met on the way or when a First step matches no element.
func (p Path) Value(entity reflect.Value) (reflect.Value, error) {
	v := entity
	for _, step := range p.Steps {
		v = indirect(v)
		if !v.IsValid() {
			return reflect.Value{}, nil
		}

		var err error
		switch step := step.(type) {
		case FieldStep:
			v, err = v.FieldByIndexErr(step.Index)
			if err != nil {
				// nil embedded pointer
				return reflect.Value{}, nil
			}
		case CollectionStep:
			v, err = step.apply(v)
			if err != nil {
				return reflect.Value{}, err
			}
		default:
			return reflect.Value{}, fmt.Errorf("unsupported path step %T", step)
		}
	}
	return v, nil
}

func (s CollectionStep) apply(owner reflect.Value) (reflect.Value, error) {
	collection, err := owner.FieldByIndexErr(s.Field.Index)
	if err != nil {
		return reflect.Value{}, nil
	}
	collection = indirect(collection)

	length := 0
	if collection.IsValid() {
		length = collection.Len()
	}

	switch s.Quantifier {
	case types.Any:
		for i := 0; i < length; i++ {
			ok, err := Eval(s.Inner, collection.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			if ok {
				return reflect.ValueOf(true), nil
			}
		}
		return reflect.ValueOf(false), nil
	case types.All:
		for i := 0; i < length; i++ {
			ok, err := Eval(s.Inner, collection.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			if !ok {
				return reflect.ValueOf(false), nil
			}
		}
		return reflect.ValueOf(true), nil
	case types.First:
		for i := 0; i < length; i++ {
			element := collection.Index(i)
			ok, err := Eval(s.Inner, element)
			if err != nil {
				return reflect.Value{}, err
			}
			if ok {
				return element, nil
			}
		}
		return reflect.Value{}, nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported quantifier %d", int(s.Quantifier))
	}
}
