package filter

import (
	"strings"

	"github.com/datastax/entity-filter/types"
)

// CollectionToken is the structured form of a collection subquery
//
//	[Collection | Quantifier | InnerField InnerOperator ModelField]
//
// e.g. "[Orders | Any | Status == TargetStatus]" holds for the entities having at least
// one order whose Status equals the TargetStatus field of the filter model.
type CollectionToken struct {
	Collection    string
	Quantifier    types.Quantifier
	InnerField    string
	InnerOperator types.Operator
	ModelField    string
}

func (t CollectionToken) String() string {
	return "[" + t.Collection + " | " + t.Quantifier.String() + " | " +
		t.InnerField + " " + operatorSymbol(t.InnerOperator) + " " + t.ModelField + "]"
}

// operatorSymbol renders operators outside of the mini-language by name
func operatorSymbol(op types.Operator) string {
	for symbol, candidate := range types.SymbolOperators {
		if candidate == op {
			return symbol
		}
	}
	return op.String()
}

// IsCollectionToken returns true when a path segment is bracket-delimited
func IsCollectionToken(segment string) bool {
	return strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]")
}

// ParseCollectionToken parses "[Collection | Quantifier | InnerField Op ModelField]".
// Only the ==, >=, <= and != operators are accepted in the inner clause.
func ParseCollectionToken(token string) (CollectionToken, error) {
	trimmed := strings.TrimSpace(token)
	if !IsCollectionToken(trimmed) {
		return CollectionToken{}, newError(ErrTokenFormat, token, "",
			"%s is not a collection token, expected [collection | method | field operator modelField]", token)
	}

	parts := strings.Split(trimmed[1:len(trimmed)-1], "|")
	if len(parts) != 3 {
		return CollectionToken{}, newError(ErrTokenFormat, token, "",
			"%s must use the format [1 | 2 | 3] with 1 the collection name, "+
				"2 the method to apply and 3 the values to compare (ex: Foo == Bar)", token)
	}

	clause := strings.Fields(parts[2])
	if len(clause) != 3 {
		return CollectionToken{}, newError(ErrTokenFormat, token, "",
			"'%s' must have 3 parameters: the collection's field name, "+
				"the operator to apply (==, >=, <=, !=) and the model's field to compare with", strings.TrimSpace(parts[2]))
	}

	op, ok := types.SymbolOperators[clause[1]]
	if !ok {
		return CollectionToken{}, newError(ErrUnknownOperator, clause[1], "",
			"%s is not a valid operator, expected one of ==, >=, <=, !=", clause[1])
	}

	collection := strings.TrimSpace(parts[0])
	if collection == "" {
		return CollectionToken{}, newError(ErrTokenFormat, token, "", "%s has an empty collection name", token)
	}

	method := strings.TrimSpace(parts[1])
	quantifier, ok := types.ParseQuantifier(method)
	if !ok {
		return CollectionToken{}, newError(ErrUnknownQuantifier, method, "",
			"the method %s does not exist, expected Any, All or First", method)
	}

	return CollectionToken{
		Collection:    collection,
		Quantifier:    quantifier,
		InnerField:    clause[0],
		InnerOperator: op,
		ModelField:    clause[2],
	}, nil
}

// CollectionBuilder builds a CollectionToken without going through its textual form
type CollectionBuilder struct {
	token CollectionToken
}

// Collection starts a collection subquery on the named slice field, quantified with Any by default
func Collection(name string) *CollectionBuilder {
	return &CollectionBuilder{token: CollectionToken{Collection: name, Quantifier: types.Any}}
}

func (b *CollectionBuilder) Any() *CollectionBuilder {
	b.token.Quantifier = types.Any
	return b
}

func (b *CollectionBuilder) All() *CollectionBuilder {
	b.token.Quantifier = types.All
	return b
}

func (b *CollectionBuilder) First() *CollectionBuilder {
	b.token.Quantifier = types.First
	return b
}

// Where completes the token: elements match when "element.innerField op model.modelField".
// Unlike the textual form, any operator is accepted.
func (b *CollectionBuilder) Where(innerField string, op types.Operator, modelField string) CollectionToken {
	token := b.token
	token.InnerField = innerField
	token.InnerOperator = op
	token.ModelField = modelField
	return token
}
