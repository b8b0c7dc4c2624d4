package filter

import (
	"reflect"
	"strings"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/types"
)

// collectionStep builds the quantified subquery described by token on the owner struct type.
// The inner field is resolved against the element type and compared with the model field value.
func (e *Engine) collectionStep(owner reflect.Type, token CollectionToken, model ModelSource) (expr.CollectionStep, error) {
	field, ok := e.fieldStep(owner, token.Collection)
	if !ok {
		return expr.CollectionStep{}, newError(ErrPathResolution, token.Collection, typeName(owner),
			"the collection %s does not exist in %s", token.Collection, typeName(owner))
	}

	collectionType := derefType(field.FieldType)
	if collectionType.Kind() != reflect.Slice && collectionType.Kind() != reflect.Array {
		return expr.CollectionStep{}, newError(ErrInvalidCollectionType, token.Collection, typeName(field.FieldType),
			"%s is of type %s, only slices and arrays can be used as collections", token.Collection, typeName(field.FieldType))
	}
	element := collectionType.Elem()

	if !token.Quantifier.IsBoolean() && token.Quantifier != types.First {
		return expr.CollectionStep{}, newError(ErrUnknownQuantifier, token.Quantifier.String(), "",
			"%s is not a valid collection method", token.Quantifier)
	}

	inner := make([]segment, 0, 1)
	for _, name := range strings.Split(token.InnerField, ".") {
		name = strings.TrimSpace(name)
		if name == "" {
			return expr.CollectionStep{}, newError(ErrTokenFormat, token.String(), "",
				"%s has an empty inner field", token)
		}
		inner = append(inner, segment{field: name})
	}
	innerPath, err := e.resolve(element, inner, nil)
	if err != nil {
		return expr.CollectionStep{}, err
	}

	if model == nil {
		return expr.CollectionStep{}, newError(ErrUnknownModelField, token.ModelField, "",
			"%s references the model field %s but no model was given", token, token.ModelField)
	}
	value, ok := model.ModelValue(token.ModelField)
	if !ok {
		return expr.CollectionStep{}, newError(ErrUnknownModelField, token.ModelField, model.TypeName(),
			"the field %s does not exist in the model %s", token.ModelField, model.TypeName())
	}

	predicate, err := e.Apply(innerPath, token.InnerOperator, value)
	if err != nil {
		return expr.CollectionStep{}, err
	}

	return expr.CollectionStep{
		Field:      field,
		Quantifier: token.Quantifier,
		Element:    element,
		Inner:      predicate,
	}, nil
}
