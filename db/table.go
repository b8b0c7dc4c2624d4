package db

import (
	"context"
	"reflect"
	"strings"

	"github.com/datastax/entity-filter/config"
	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/types"
	"github.com/mitchellh/mapstructure"
)

// Table is a query over the rows of a CQL table decoded as T.
// Where predicates must compare top level fields, each one maps to a column.
type Table[T any] struct {
	db             *Db
	keyspace       string
	name           string
	naming         config.NamingConvention
	options        *QueryOptions
	allowFiltering bool
	plan           query.Plan
}

func NewTable[T any](db *Db, keyspace, name string) Table[T] {
	return Table[T]{
		db:             db,
		keyspace:       keyspace,
		name:           name,
		naming:         config.NewDefaultNaming(),
		options:        NewQueryOptions(),
		allowFiltering: true,
	}
}

// WithNaming sets the convention mapping columns to fields when decoding rows.
// It must match the convention of the engine resolving the paths.
func (t Table[T]) WithNaming(naming config.NamingConvention) Table[T] {
	t.naming = naming
	return t
}

func (t Table[T]) WithOptions(options *QueryOptions) Table[T] {
	t.options = options
	return t
}

// WithAllowFiltering controls whether filtered selects end with ALLOW FILTERING, which they do by default
func (t Table[T]) WithAllowFiltering(allow bool) Table[T] {
	t.allowFiltering = allow
	return t
}

func (t Table[T]) with(stage query.Stage) Table[T] {
	t.plan = t.plan.Append(stage)
	return t
}

func (t Table[T]) Where(predicate expr.Expr) query.Queryable[T] {
	return t.with(query.Stage{Kind: query.WhereStage, Predicate: predicate})
}

func (t Table[T]) OrderBy(key expr.Path, direction types.Direction) query.Queryable[T] {
	return t.with(query.Stage{Kind: query.OrderByStage, Key: key, Direction: direction})
}

func (t Table[T]) Skip(n int) query.Queryable[T] {
	return t.with(query.Stage{Kind: query.SkipStage, Count: n})
}

func (t Table[T]) Take(n int) query.Queryable[T] {
	return t.with(query.Stage{Kind: query.TakeStage, Count: n})
}

func (t Table[T]) ElementType() reflect.Type {
	return query.ElementType[T]()
}

func (t Table[T]) Plan() query.Plan {
	return t.plan
}

func (t Table[T]) selectInfo(s statement) *SelectInfo {
	return &SelectInfo{
		Keyspace:       t.keyspace,
		Table:          t.name,
		Where:          s.where,
		OrderBy:        s.orderBy,
		Limit:          s.rowCount(),
		AllowFiltering: t.allowFiltering,
	}
}

// Statement returns the CQL select and its bound values
func (t Table[T]) Statement() (string, []interface{}, error) {
	s, err := compile(t.plan)
	if err != nil {
		return "", nil, err
	}
	cql, values := buildSelect(t.selectInfo(s))
	return cql, values, nil
}

// ToSlice executes the query
func (t Table[T]) ToSlice(ctx context.Context) ([]T, error) {
	s, err := compile(t.plan)
	if err != nil {
		return nil, err
	}
	if s.limit == 0 {
		return []T{}, nil
	}

	rs, err := t.db.Select(ctx, t.selectInfo(s), t.options)
	if err != nil {
		return nil, err
	}

	rows := rs.Values()
	if s.skip >= len(rows) {
		return []T{}, nil
	}
	rows = rows[s.skip:]

	items := make([]T, len(rows))
	for i, row := range rows {
		if err := t.decode(row, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (t Table[T]) decode(row map[string]interface{}, item *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       types.DecodeHook(),
		WeaklyTypedInput: true,
		Result:           item,
		MatchName: func(column, field string) bool {
			return column == t.naming.ToColumn(field) || strings.EqualFold(column, field)
		},
	})
	if err != nil {
		return err
	}
	return decoder.Decode(row)
}

// ToSlice executes q, which must have been created by NewTable
func ToSlice[T any](ctx context.Context, q query.Queryable[T]) ([]T, error) {
	table, ok := q.(Table[T])
	if !ok {
		return nil, ErrNotTableQuery
	}
	return table.ToSlice(ctx)
}

var _ query.Queryable[struct{}] = Table[struct{}]{}
