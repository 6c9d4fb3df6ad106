package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles SELECT statements with "?" placeholders; callers
// rebind them for their driver.
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder
	Build() (string, []interface{})
}

// condition is one WHERE term; terms are joined with AND.
type condition struct {
	clause string
	args   []interface{}
}

type queryBuilder struct {
	schema     string
	table      string
	cols       []string
	conditions []condition
	orderBy    []string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{
		clause: clause,
		args:   args,
	})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) Build() (string, []interface{}) {
	table := q.table
	if q.schema != "" {
		table = q.schema + "." + q.table
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), table)

	var args []interface{}
	if len(q.conditions) > 0 {
		clauses := make([]string, len(q.conditions))
		for i, cond := range q.conditions {
			clauses[i] = cond.clause
			args = append(args, cond.args...)
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	return query, args
}
