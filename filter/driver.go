package filter

import (
	"reflect"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/types"
)

// boundModel looks model fields up in the schema first, then by name on the struct
type boundModel[M any] struct {
	schema *Schema[M]
	model  *M
}

func (b boundModel[M]) ModelValue(name string) (interface{}, bool) {
	if i, ok := b.schema.index[name]; ok {
		return b.schema.bindings[i].accessor(b.model), true
	}
	return StructSource(b.model).ModelValue(name)
}

func (b boundModel[M]) TypeName() string {
	return reflect.TypeOf(b.model).Elem().String()
}

// FromModel adds one Where stage per schema field holding a value in model, in registration order.
// Fields that are nil, or text that is empty or whitespace, are skipped; a model with no value
// returns q unchanged. On error nothing is added: the returned query is nil and q is untouched.
func FromModel[T, M any](e *Engine, q query.Queryable[T], schema *Schema[M], model M) (query.Queryable[T], error) {
	e = e.orDefault()
	if err := schema.Err(); err != nil {
		return nil, err
	}

	source := boundModel[M]{schema: schema, model: &model}
	root := q.ElementType()

	predicates := make([]expr.Expr, 0, len(schema.bindings))
	for _, b := range schema.bindings {
		if b.param {
			continue
		}
		value := b.accessor(&model)
		if isAbsent(value) {
			continue
		}

		target, err := e.resolve(root, b.segments, source)
		if err != nil {
			return nil, err
		}
		predicate, err := e.predicate(target, b.op, value)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("filtering", "field", b.name, "path", b.path, "predicate", predicate.String())
		predicates = append(predicates, predicate)
	}

	for _, predicate := range predicates {
		q = q.Where(predicate)
	}
	return q, nil
}

// predicate applies op to target, or tests the quantifier result when target ends with an Any or All
// collection token and value isn't a boolean: the collection subquery is then the whole predicate.
func (e *Engine) predicate(target expr.Path, op types.Operator, value interface{}) (expr.Expr, error) {
	if len(target.Steps) > 0 {
		last, ok := target.Steps[len(target.Steps)-1].(expr.CollectionStep)
		if ok && last.Quantifier.IsBoolean() && (op == types.Equal || op == types.NotEqual) {
			if _, isBool := constant(value).(bool); !isBool {
				value = true
			}
		}
	}
	return e.Apply(target, op, value)
}

// OrderBy adds an order by stage on path. Collection tokens are not allowed in order by paths.
func OrderBy[T any](e *Engine, q query.Queryable[T], path string, direction types.Direction) (query.Queryable[T], error) {
	e = e.orDefault()
	if direction != types.Ascending && direction != types.Descending {
		return nil, newError(ErrInvalidDirection, direction.String(), "",
			"direction %d is not supported, expected ascending or descending", int(direction))
	}

	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	for _, s := range segments {
		if s.collection != nil {
			return nil, newError(ErrPathResolution, s.String(), typeName(q.ElementType()),
				"collection tokens can not be used to order by, got %s", path)
		}
	}

	key, err := e.resolve(q.ElementType(), segments, nil)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("ordering", "path", key.String(), "direction", direction.String())
	return q.OrderBy(key, direction), nil
}

// ParseDirection parses a textual direction, see types.ParseDirection
func ParseDirection(raw string) (types.Direction, error) {
	direction, ok := types.ParseDirection(raw)
	if !ok {
		return 0, newError(ErrInvalidDirection, raw, "",
			"%s is not a valid direction, expected asc, ascending, desc or descending", raw)
	}
	return direction, nil
}

// Paginate skips the pageNumber-1 preceding pages of pageSize elements and takes the next pageSize.
// Pages are numbered from 1.
func Paginate[T any](q query.Queryable[T], pageSize, pageNumber int) query.Queryable[T] {
	options := types.QueryOptions{PageSize: pageSize, PageNumber: pageNumber}
	return q.Skip(options.Skip()).Take(options.PageSize)
}
