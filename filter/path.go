package filter

import (
	"reflect"
	"strings"

	"github.com/datastax/entity-filter/expr"
)

// segment is a parsed path element: either a field name or a collection token
type segment struct {
	field      string
	collection *CollectionToken
}

func (s segment) String() string {
	if s.collection != nil {
		return s.collection.String()
	}
	return s.field
}

// parsePath splits path on the dots found outside of brackets and parses the collection tokens
func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, newError(ErrPathResolution, path, "", "empty path")
	}

	var parts []string
	depth, start := 0, 0
	for i, r := range path {
		switch r {
		case '[':
			depth++
			if depth > 1 {
				return nil, newError(ErrTokenFormat, path, "", "%s: collection tokens can not be nested", path)
			}
		case ']':
			depth--
			if depth < 0 {
				return nil, newError(ErrTokenFormat, path, "", "%s: unbalanced ']'", path)
			}
		case '.':
			if depth == 0 {
				parts = append(parts, path[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, newError(ErrTokenFormat, path, "", "%s: unbalanced '['", path)
	}
	parts = append(parts, path[start:])

	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			return nil, newError(ErrPathResolution, path, "", "%s contains an empty segment", path)
		case IsCollectionToken(part):
			token, err := ParseCollectionToken(part)
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{collection: &token})
		case strings.ContainsAny(part, "[]"):
			return nil, newError(ErrTokenFormat, part, "", "%s is not a valid collection token", part)
		default:
			segments = append(segments, segment{field: part})
		}
	}
	return segments, nil
}

// Resolve compiles path into a typed accessor from entities of type root.
// model supplies the values referenced by the inner clauses of collection tokens, it may be
// nil when the path has none.
func (e *Engine) Resolve(root reflect.Type, path string, model ModelSource) (expr.Path, error) {
	segments, err := parsePath(path)
	if err != nil {
		return expr.Path{}, err
	}
	return e.orDefault().resolve(root, segments, model)
}

func (e *Engine) resolve(root reflect.Type, segments []segment, model ModelSource) (expr.Path, error) {
	result := expr.Path{Root: root, Steps: make([]expr.Step, 0, len(segments))}
	current := root

	for i, s := range segments {
		owner := derefType(current)
		if owner == nil || owner.Kind() != reflect.Struct {
			return expr.Path{}, newError(ErrPathResolution, s.String(), typeName(current),
				"can not resolve %s: %s has no fields", s, typeName(current))
		}

		var step expr.Step
		if s.collection != nil {
			collection, err := e.collectionStep(owner, *s.collection, model)
			if err != nil {
				return expr.Path{}, err
			}
			if collection.Quantifier.IsBoolean() && i != len(segments)-1 {
				return expr.Path{}, newError(ErrPathResolution, s.String(), typeName(owner),
					"%s evaluates to a boolean and must be the last segment of the path", s)
			}
			step = collection
		} else {
			field, ok := e.fieldStep(owner, s.field)
			if !ok {
				return expr.Path{}, newError(ErrPathResolution, s.field, typeName(owner),
					"the field %s does not exist in %s", s.field, typeName(owner))
			}
			step = field
		}

		result.Steps = append(result.Steps, step)
		current = step.Type()
	}
	return result, nil
}

// fieldStep finds the exported field named segment, or named after the naming convention's field form of it
func (e *Engine) fieldStep(owner reflect.Type, segment string) (expr.FieldStep, bool) {
	for _, name := range []string{segment, e.naming.ToField(segment)} {
		f, ok := owner.FieldByName(name)
		if !ok || !f.IsExported() {
			continue
		}
		return expr.FieldStep{
			Name:      f.Name,
			Column:    e.naming.ToColumn(f.Name),
			Index:     f.Index,
			FieldType: f.Type,
		}, true
	}
	return expr.FieldStep{}, false
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
