package expr

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/datastax/entity-filter/types"
	"gopkg.in/inf.v0"
)

type operandKind int

const (
	kindUnsupported operandKind = iota
	kindSigned
	kindUnsigned
	kindFloat
	kindDecimal
	kindString
	kindBool
	kindTime
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(inf.Dec{})
)

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func kindOf(t reflect.Type) operandKind {
	t = indirectType(t)
	if t == nil {
		return kindUnsupported
	}
	switch t {
	case timeType:
		return kindTime
	case decimalType:
		return kindDecimal
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindUnsigned
	case reflect.Float32, reflect.Float64:
		return kindFloat
	case reflect.String:
		return kindString
	case reflect.Bool:
		return kindBool
	default:
		return kindUnsupported
	}
}

func (k operandKind) numeric() bool {
	return k == kindSigned || k == kindUnsigned || k == kindFloat || k == kindDecimal
}

// CheckOperands returns an error when values of type left and right can not be compared with op.
// Pointer types are checked through their element type.
func CheckOperands(op types.Operator, left, right reflect.Type) error {
	lk, rk := kindOf(left), kindOf(right)
	if lk == kindUnsupported || rk == kindUnsupported {
		return fmt.Errorf("operator %s does not support operands of type %v and %v", op, left, right)
	}

	switch op {
	case types.Contains:
		if lk != kindString || rk != kindString {
			return fmt.Errorf("operator %s requires text operands, got %v and %v", op, left, right)
		}
		return nil
	case types.EqualDate:
		if lk != kindTime || rk != kindTime {
			return fmt.Errorf("operator %s requires time operands, got %v and %v", op, left, right)
		}
		return nil
	case types.Equal, types.NotEqual, types.GreaterThan, types.LessThan,
		types.GreaterThanOrEqual, types.LessThanOrEqual:
	default:
		return fmt.Errorf("unknown operator %d", int(op))
	}

	if op.IsOrdering() && lk == kindBool {
		return fmt.Errorf("operator %s can not order boolean values", op)
	}
	if lk.numeric() && rk.numeric() {
		return nil
	}
	if lk != rk {
		return fmt.Errorf("operator %s can not compare %v with %v", op, left, right)
	}
	return nil
}

// Apply evaluates "left op right". A nil left value only satisfies Equal with a nil right value
// and NotEqual with a non-nil one; Contains never inspects a nil value.
func Apply(op types.Operator, left reflect.Value, right interface{}) (bool, error) {
	left = indirect(left)
	rv := indirect(reflect.ValueOf(right))

	if !left.IsValid() || !rv.IsValid() {
		switch op {
		case types.Equal:
			return !left.IsValid() && !rv.IsValid(), nil
		case types.NotEqual:
			return left.IsValid() != rv.IsValid(), nil
		default:
			return false, nil
		}
	}

	switch op {
	case types.Contains:
		if left.Kind() != reflect.String || rv.Kind() != reflect.String {
			return false, fmt.Errorf("operator %s requires text operands, got %v and %v", op, left.Type(), rv.Type())
		}
		return strings.Contains(left.String(), rv.String()), nil
	case types.EqualDate:
		lt, lok := left.Interface().(time.Time)
		rt, rok := rv.Interface().(time.Time)
		if !lok || !rok {
			return false, fmt.Errorf("operator %s requires time operands, got %v and %v", op, left.Type(), rv.Type())
		}
		ly, lm, ld := lt.Date()
		ry, rm, rd := rt.Date()
		return ly == ry && lm == rm && ld == rd, nil
	}

	c, err := Compare(left, rv)
	if err != nil {
		return false, err
	}

	switch op {
	case types.Equal:
		return c == 0, nil
	case types.NotEqual:
		return c != 0, nil
	case types.GreaterThan:
		return c > 0, nil
	case types.LessThan:
		return c < 0, nil
	case types.GreaterThanOrEqual:
		return c >= 0, nil
	case types.LessThanOrEqual:
		return c <= 0, nil
	default:
		return false, fmt.Errorf("unknown operator %d", int(op))
	}
}

// Compare returns -1, 0 or 1 when a is less than, equal to or greater than b.
// Nil values are ordered before any other value.
func Compare(a, b reflect.Value) (int, error) {
	a, b = indirect(a), indirect(b)
	switch {
	case !a.IsValid() && !b.IsValid():
		return 0, nil
	case !a.IsValid():
		return -1, nil
	case !b.IsValid():
		return 1, nil
	}

	ak, bk := kindOf(a.Type()), kindOf(b.Type())
	switch {
	case ak.numeric() && bk.numeric():
		return compareNumbers(a, ak, b, bk), nil
	case ak != bk:
		return 0, fmt.Errorf("can not compare %v with %v", a.Type(), b.Type())
	case ak == kindString:
		return strings.Compare(a.String(), b.String()), nil
	case ak == kindBool:
		return compareBools(a.Bool(), b.Bool()), nil
	case ak == kindTime:
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time)), nil
	default:
		return 0, fmt.Errorf("values of type %v are not comparable", a.Type())
	}
}

func compareNumbers(a reflect.Value, ak operandKind, b reflect.Value, bk operandKind) int {
	switch {
	case ak == kindFloat || bk == kindFloat:
		return compareFloats(toFloat64(a, ak), toFloat64(b, bk))
	case ak == kindDecimal || bk == kindDecimal:
		return toDecimal(a, ak).Cmp(toDecimal(b, bk))
	case ak == kindSigned && bk == kindSigned:
		return compareInt64(a.Int(), b.Int())
	case ak == kindUnsigned && bk == kindUnsigned:
		return compareUint64(a.Uint(), b.Uint())
	case ak == kindSigned:
		if a.Int() < 0 {
			return -1
		}
		return compareUint64(uint64(a.Int()), b.Uint())
	default:
		if b.Int() < 0 {
			return 1
		}
		return compareUint64(a.Uint(), uint64(b.Int()))
	}
}

func toFloat64(v reflect.Value, k operandKind) float64 {
	switch k {
	case kindSigned:
		return float64(v.Int())
	case kindUnsigned:
		return float64(v.Uint())
	case kindDecimal:
		d := v.Interface().(inf.Dec)
		f, _ := strconv.ParseFloat(d.String(), 64)
		return f
	default:
		return v.Float()
	}
}

func toDecimal(v reflect.Value, k operandKind) *inf.Dec {
	switch k {
	case kindSigned:
		return inf.NewDec(v.Int(), 0)
	case kindUnsigned:
		return new(inf.Dec).SetUnscaledBig(new(big.Int).SetUint64(v.Uint()))
	default:
		d := v.Interface().(inf.Dec)
		return &d
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
