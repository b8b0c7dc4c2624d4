package filter

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/datastax/entity-filter/types"
)

// TagName is the struct tag read by SchemaFromTags, e.g.
//
//	MinPrice *float64 `filter:"gte,Price"`
//	Status   *int     `filter:"eq"`
const TagName = "filter"

type binding[M any] struct {
	name     string
	accessor func(*M) interface{}
	op       types.Operator
	path     string
	segments []segment
	// params are never filtered on, they only feed collection token inner clauses
	param bool
}

// Schema binds the fields of the filter model M to entity paths and operators.
// Bindings are applied in registration order.
//
// Registration errors are kept and returned by Err, and by FromModel, so that a schema
// can be declared as a package variable.
type Schema[M any] struct {
	bindings []binding[M]
	index    map[string]int
	err      error
}

func NewSchema[M any]() *Schema[M] {
	return &Schema[M]{index: make(map[string]int)}
}

// Field binds the model field name, read by accessor, to targetPath with op.
// An empty targetPath targets the entity field of the same name.
func (s *Schema[M]) Field(name string, accessor func(*M) interface{}, op types.Operator, targetPath string) *Schema[M] {
	if targetPath == "" {
		targetPath = name
	}
	segments, err := parsePath(targetPath)
	if err != nil {
		s.fail(fmt.Errorf("field %s: %w", name, err))
		return s
	}
	return s.add(binding[M]{name: name, accessor: accessor, op: op, path: targetPath, segments: segments})
}

// FieldWhere binds the model field name to a path starting with a collection subquery,
// optionally followed by fields of the element selected by a First token.
func (s *Schema[M]) FieldWhere(name string, accessor func(*M) interface{}, op types.Operator,
	token CollectionToken, rest ...string) *Schema[M] {
	segments := []segment{{collection: &token}}
	parts := []string{token.String()}
	for _, field := range rest {
		for _, part := range strings.Split(field, ".") {
			part = strings.TrimSpace(part)
			if part == "" {
				s.fail(newError(ErrPathResolution, field, "", "field %s: empty segment in %s", name, field))
				return s
			}
			segments = append(segments, segment{field: part})
			parts = append(parts, part)
		}
	}
	return s.add(binding[M]{
		name:     name,
		accessor: accessor,
		op:       op,
		path:     strings.Join(parts, "."),
		segments: segments,
	})
}

// Param registers a model field that only serves as the right-hand side of collection token
// inner clauses. Unregistered model fields are also found by name, exported or not.
func (s *Schema[M]) Param(name string, accessor func(*M) interface{}) *Schema[M] {
	return s.add(binding[M]{name: name, accessor: accessor, param: true})
}

func (s *Schema[M]) add(b binding[M]) *Schema[M] {
	if b.accessor == nil {
		s.fail(fmt.Errorf("field %s: nil accessor", b.name))
		return s
	}
	if !b.param && !b.op.Valid() {
		s.fail(newError(ErrUnknownOperator, b.op.String(), "", "field %s: operator %d is not supported", b.name, int(b.op)))
		return s
	}
	if _, ok := s.index[b.name]; ok {
		s.fail(fmt.Errorf("field %s is registered twice", b.name))
		return s
	}
	s.index[b.name] = len(s.bindings)
	s.bindings = append(s.bindings, b)
	return s
}

func (s *Schema[M]) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first registration error
func (s *Schema[M]) Err() error {
	return s.err
}

// Fields returns the registered field names, in registration order
func (s *Schema[M]) Fields() []string {
	names := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		names[i] = b.name
	}
	return names
}

// SchemaFromTags builds a schema from the `filter:"<operator>[,<path>]"` tags of M, in declaration order.
// Operators use their API names (eq, eqDate, notEq, gt, lt, gte, lte, contains); the path defaults
// to the field name. Untagged fields are not filtered on.
func SchemaFromTags[M any]() (*Schema[M], error) {
	t := reflect.TypeOf((*M)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("filter model must be a struct, got %v", t)
	}

	s := NewSchema[M]()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("field %s: filter tags are only supported on exported fields", f.Name)
		}

		opName, targetPath := tag, f.Name
		if comma := strings.Index(tag, ","); comma >= 0 {
			opName, targetPath = tag[:comma], strings.TrimSpace(tag[comma+1:])
		}
		op, ok := types.ParseOperator(opName)
		if !ok {
			return nil, newError(ErrUnknownOperator, opName, t.String(),
				"field %s: %s is not a valid operator", f.Name, opName)
		}

		index := f.Index
		s.Field(f.Name, func(m *M) interface{} {
			return reflect.ValueOf(m).Elem().FieldByIndex(index).Interface()
		}, op, targetPath)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
