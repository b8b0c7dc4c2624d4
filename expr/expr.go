// Package expr contains the predicate trees built by the filter engine
// and an evaluator running them against Go values.
//
// An Expr is one of Comparison or Conjunction. Both reference values of an
// entity through a Path, a chain of field steps optionally ending with, or passing
// through, a collection step.
package expr

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/datastax/entity-filter/types"
)

// Expr is a boolean expression over an entity
type Expr interface {
	isExpr()
	String() string
}

// Comparison compares the value at Target with a constant
type Comparison struct {
	Target Path
	Op     types.Operator
	Value  interface{}
}

func (Comparison) isExpr() {}

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %v", c.Target, c.Op, c.Value)
}

// Conjunction holds when both sides hold
type Conjunction struct {
	Left  Expr
	Right Expr
}

func (Conjunction) isExpr() {}

func (c Conjunction) String() string {
	return "(" + c.Left.String() + " AND " + c.Right.String() + ")"
}

// And folds the expressions left to right into nested conjunctions.
// It returns nil when no expression is given.
func And(exprs ...Expr) Expr {
	var result Expr
	for _, e := range exprs {
		if e == nil {
			continue
		}
		if result == nil {
			result = e
			continue
		}
		result = Conjunction{Left: result, Right: e}
	}
	return result
}

// Flatten returns the comparisons of a tree made only of conjunctions, left to right
func Flatten(e Expr) []Comparison {
	switch e := e.(type) {
	case Comparison:
		return []Comparison{e}
	case Conjunction:
		return append(Flatten(e.Left), Flatten(e.Right)...)
	default:
		return nil
	}
}

// Step is an element of a Path
type Step interface {
	isStep()
	// Type is the type of the value produced by the step
	Type() reflect.Type
	String() string
}

// FieldStep reads a struct field
type FieldStep struct {
	// Name is the Go field name
	Name string
	// Column is the storage name of the field
	Column string
	// Index is the field index sequence, as returned by reflect.Type.FieldByName
	Index     []int
	FieldType reflect.Type
}

func (FieldStep) isStep() {}

func (s FieldStep) Type() reflect.Type {
	return s.FieldType
}

func (s FieldStep) String() string {
	return s.Name
}

// CollectionStep applies a quantifier to the elements of a slice or array field.
// Inner is evaluated against each element.
type CollectionStep struct {
	Field      FieldStep
	Quantifier types.Quantifier
	Element    reflect.Type
	Inner      Expr
}

func (CollectionStep) isStep() {}

func (s CollectionStep) Type() reflect.Type {
	if s.Quantifier.IsBoolean() {
		return boolType
	}
	return s.Element
}

func (s CollectionStep) String() string {
	return fmt.Sprintf("[%s | %s | %s]", s.Field.Name, s.Quantifier, s.Inner)
}

var boolType = reflect.TypeOf(true)

// Path locates a value from an entity of type Root
type Path struct {
	Root  reflect.Type
	Steps []Step
}

// Type returns the type of the value located by the path
func (p Path) Type() reflect.Type {
	if len(p.Steps) == 0 {
		return p.Root
	}
	return p.Steps[len(p.Steps)-1].Type()
}

// IsSimple returns true when the path only reads fields
func (p Path) IsSimple() bool {
	for _, step := range p.Steps {
		if _, ok := step.(FieldStep); !ok {
			return false
		}
	}
	return true
}

// Columns returns the storage names of the field steps
func (p Path) Columns() []string {
	columns := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		if field, ok := step.(FieldStep); ok {
			columns = append(columns, field.Column)
		}
	}
	return columns
}

func (p Path) String() string {
	parts := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		parts[i] = step.String()
	}
	return strings.Join(parts, ".")
}
