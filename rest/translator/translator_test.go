package translator

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/datastax/entity-filter/config"
	"github.com/datastax/entity-filter/filter"
	"github.com/datastax/entity-filter/internal/testutil"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/query/memory"
	e "github.com/datastax/entity-filter/rest/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFilter struct {
	Status      *int       `filter:"eq"`
	Description *string    `filter:"contains"`
	Day         *time.Time `filter:"eqDate,Date"`
	MinPrice    *float64   `filter:"gte,Price"`
	Customer    *string    `filter:"eq,Customer.Name"`
}

func newTranslator(t *testing.T) *ListTranslator[*testutil.Order, orderFilter] {
	schema, err := filter.SchemaFromTags[orderFilter]()
	require.NoError(t, err)
	engine := filter.NewEngine(config.NewEngineConfig().WithDefaultPageSize(3).WithMaxPageSize(5))
	return NewListTranslator[*testutil.Order](engine, schema)
}

func orders() query.Queryable[*testutil.Order] {
	return memory.From(testutil.NewRepository().Orders)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []int
	}{
		{"default page", "", []int{1, 2, 3}},
		{"second page", "page=2", []int{4, 5, 6}},
		{"page size", "pageSize=5&page=2", []int{6, 7, 8}},
		{"equal", "status=1", []int{1, 5, 6}},
		{"blank values are ignored", "status=&description=%20", []int{1, 2, 3}},
		{"snake case key", "min_price=15&pageSize=5", []int{2, 4, 8}},
		{"case insensitive key", "MINPRICE=15&pageSize=5", []int{2, 4, 8}},
		{"date", "day=2015-12-20", []int{2, 8}},
		{"timestamp", "day=2015-12-20T10:00:00Z", []int{2, 8}},
		{"nested path", "customer=Harvey%20Butler", []int{4, 5, 6}},
		{"order by", "orderBy=price&direction=DESC", []int{8, 2, 4}},
		{"order by ascending by default", "orderBy=price", []int{3, 7, 1}},
		{"filter, order and page", "minPrice=10&orderBy=date&direction=ascending&page=2", []int{2, 8, 4}},
	}

	translator := newTranslator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			q, err := translator.Translate(orders(), values)
			require.NoError(t, err)

			result, err := memory.ToSlice(q)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, testutil.OrderIds(result))
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		status  int
		message string
	}{
		{"unknown key", "color=red", http.StatusBadRequest, "color"},
		{"not a number", "status=one", http.StatusBadRequest, "Status"},
		{"not a date", "day=yesterday", http.StatusBadRequest, "Day"},
		{"direction", "orderBy=price&direction=up", http.StatusBadRequest, "Direction must be one of"},
		{"page", "page=0", http.StatusOK, ""},
		{"negative page", "page=-1", http.StatusBadRequest, "Page"},
		{"page size too large", "pageSize=6", http.StatusBadRequest, "pageSize must be 5 or less"},
		{"unknown order by field", "orderBy=color", http.StatusBadRequest, "color"},
		{"collection order by", "orderBy=[Orders | Any | Status == Status]", http.StatusBadRequest, "order by"},
	}

	translator := newTranslator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = translator.Translate(orders(), values)
			assert.Equal(t, tt.status, e.StatusCode(err))
			if tt.message != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestTranslateSchemaError(t *testing.T) {
	type model struct {
		Status *int
	}
	schema := filter.NewSchema[model]().
		Field("Status", func(m *model) interface{} { return m.Status }, 0, "Status")

	_, err := NewListTranslator[*testutil.Order](nil, schema).Translate(orders(), url.Values{})
	assert.True(t, filter.IsUnknownOperatorError(err))
	assert.Equal(t, "unknown operator", e.NewModelError(err).InternalCode)
}
