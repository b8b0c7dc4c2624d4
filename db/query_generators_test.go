package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/datastax/entity-filter/types"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSelectGeneration(t *testing.T) {
	items := []struct {
		info   SelectInfo
		query  string
		values []interface{}
	}{
		{
			SelectInfo{Keyspace: "ks1", Table: "tbl1"},
			`SELECT * FROM "ks1"."tbl1"`,
			[]interface{}{},
		},
		{
			SelectInfo{Keyspace: "ks1", Table: "tbl1", AllowFiltering: true},
			`SELECT * FROM "ks1"."tbl1"`,
			[]interface{}{},
		},
		{
			SelectInfo{
				Keyspace: "ks1",
				Table:    "tbl1",
				Where:    []ConditionItem{{"a", "=", 1}, {"b", ">=", "z"}},
			},
			`SELECT * FROM "ks1"."tbl1" WHERE "a" = ? AND "b" >= ?`,
			[]interface{}{1, "z"},
		},
		{
			SelectInfo{
				Keyspace:       "ks1",
				Table:          "tbl1",
				Where:          []ConditionItem{{"a", "LIKE", "%v%"}},
				OrderBy:        []ColumnOrder{{"b", types.Descending}, {"c", types.Ascending}},
				Limit:          10,
				AllowFiltering: true,
			},
			`SELECT * FROM "ks1"."tbl1" WHERE "a" LIKE ? ORDER BY "b" DESC, "c" ASC LIMIT ? ALLOW FILTERING`,
			[]interface{}{"%v%", 10},
		},
	}

	dmp := diffmatchpatch.New()
	for _, item := range items {
		sessionMock := NewSessionMock()
		db := NewDbWithSession(sessionMock)

		_, err := db.Select(context.Background(), &item.info, nil)
		assert.Nil(t, err)

		query, values := buildSelect(&item.info)
		if item.query != query {
			diffs := dmp.DiffMain(item.query, query, false)
			fmt.Println(dmp.DiffPrettyText(diffs))
		}
		assert.Equal(t, item.values, values)
		sessionMock.AssertCalled(t, "ExecuteIter", item.query, mock.Anything, item.values)
		sessionMock.AssertExpectations(t)
	}
}
