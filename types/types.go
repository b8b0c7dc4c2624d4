// types package contains the public API types
// that are shared between the filter engine, the query hosts and REST
package types

import "strings"

// Operator is the comparison applied between an entity value and a filter value
type Operator int

const (
	Equal Operator = 1 + iota
	// EqualDate compares both sides truncated to the calendar date
	EqualDate
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
	// Contains is a null-guarded substring test, only valid for text values
	Contains
)

var operatorNames = map[Operator]string{
	Equal:              "eq",
	EqualDate:          "eqDate",
	NotEqual:           "notEq",
	GreaterThan:        "gt",
	LessThan:           "lt",
	GreaterThanOrEqual: "gte",
	LessThanOrEqual:    "lte",
	Contains:           "contains",
}

var namedOperators = map[string]Operator{
	"eq":       Equal,
	"eqDate":   EqualDate,
	"notEq":    NotEqual,
	"gt":       GreaterThan,
	"lt":       LessThan,
	"gte":      GreaterThanOrEqual,
	"lte":      LessThanOrEqual,
	"contains": Contains,
}

// SymbolOperators contains the operators available in the collection subquery
// mini-language, e.g. "[Orders | Any | Status == TargetStatus]"
var SymbolOperators = map[string]Operator{
	"==": Equal,
	">=": GreaterThanOrEqual,
	"<=": LessThanOrEqual,
	"!=": NotEqual,
}

// CqlOperators contains the CQL operator for a given operator.
// EqualDate and Contains have no single CQL operator and are translated separately.
var CqlOperators = map[Operator]string{
	Equal:              "=",
	NotEqual:           "!=",
	GreaterThan:        ">",
	LessThan:           "<",
	GreaterThanOrEqual: ">=",
	LessThanOrEqual:    "<=",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// Valid returns true if the operator is one of the declared operators
func (o Operator) Valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// IsOrdering returns true for the operators that require ordered operands
func (o Operator) IsOrdering() bool {
	switch o {
	case GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual:
		return true
	default:
		return false
	}
}

// ParseOperator returns the operator for an API name ("eq", "gte", ...)
func ParseOperator(name string) (Operator, bool) {
	op, ok := namedOperators[strings.TrimSpace(name)]
	return op, ok
}

// Direction is the sort direction of an order by clause
type Direction int

const (
	Ascending Direction = 1 + iota
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending", ignoring case.
// Any other value is rejected.
func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return 0, false
	}
}

// Quantifier is the collection test applied by a collection subquery
type Quantifier int

const (
	// Any holds when at least one element matches
	Any Quantifier = 1 + iota
	// All holds when every element matches
	All
	// First selects the first matching element, the path continues from it
	First
)

var quantifierNames = map[string]Quantifier{
	"Any":   Any,
	"All":   All,
	"First": First,
}

func (q Quantifier) String() string {
	for name, value := range quantifierNames {
		if value == q {
			return name
		}
	}
	return "unknown"
}

// IsBoolean returns true when the quantifier produces a boolean result
func (q Quantifier) IsBoolean() bool {
	return q == Any || q == All
}

func ParseQuantifier(name string) (Quantifier, bool) {
	q, ok := quantifierNames[strings.TrimSpace(name)]
	return q, ok
}

// QueryOptions holds the paging parameters of a list request
type QueryOptions struct {
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
}

// Skip returns the number of elements preceding the requested page
func (o QueryOptions) Skip() int {
	return o.PageSize * (o.PageNumber - 1)
}
