package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/datastax/entity-filter/types"
)

type SelectInfo struct {
	Keyspace string
	Table    string
	Where    []ConditionItem
	OrderBy  []ColumnOrder
	// Limit is not applied when zero or negative
	Limit          int
	AllowFiltering bool
}

type ConditionItem struct {
	Column   string
	Operator string
	Value    interface{}
}

type ColumnOrder struct {
	Column string
	Order  types.Direction
}

func (db *Db) Select(ctx context.Context, info *SelectInfo, options *QueryOptions) (ResultSet, error) {
	query, values := buildSelect(info)
	return db.Execute(ctx, query, options, values...)
}

func buildSelect(info *SelectInfo) (string, []interface{}) {
	values := make([]interface{}, 0, len(info.Where)+1)
	query := fmt.Sprintf(`SELECT * FROM "%s"."%s"`, info.Keyspace, info.Table)

	if len(info.Where) > 0 {
		query += " WHERE " + buildCondition(info.Where, &values)
	}

	if len(info.OrderBy) > 0 {
		orders := make([]string, len(info.OrderBy))
		for i, order := range info.OrderBy {
			orders[i] = fmt.Sprintf(`"%s" %s`, order.Column, order.Order)
		}
		query += " ORDER BY " + strings.Join(orders, ", ")
	}

	if info.Limit > 0 {
		query += " LIMIT ?"
		values = append(values, info.Limit)
	}

	if info.AllowFiltering && len(info.Where) > 0 {
		query += " ALLOW FILTERING"
	}

	return query, values
}

func buildCondition(condition []ConditionItem, queryParameters *[]interface{}) string {
	conditionClause := ""
	for _, item := range condition {
		if conditionClause != "" {
			conditionClause += " AND "
		}

		conditionClause += fmt.Sprintf(`"%s" %s ?`, item.Column, item.Operator)
		*queryParameters = append(*queryParameters, item.Value)
	}
	return conditionClause
}
