package database

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool // For NOT conditions
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// relationSpec pairs a relation name with an optional per-relation modifier,
// e.g. limiting how many articles a group section loads.
type relationSpec struct {
	name  string
	apply func(*bun.SelectQuery) *bun.SelectQuery
}

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db        *DB
	tableName string

	wheres    []*WhereClause
	orders    []*OrderClause
	relations []relationSpec
	limitVal  *int
	offsetVal *int

	distinct  bool
	forUpdate bool

	timeout time.Duration
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db:        db,
		wheres:    []*WhereClause{},
		orders:    []*OrderClause{},
		relations: []relationSpec{},
	}
}

// Table sets the table name explicitly (used by insert/delete when the model
// type maps to more than one table)
func (q *QueryBuilder[T]) Table(name string) *QueryBuilder[T] {
	q.tableName = name
	return q
}

// Distinct adds DISTINCT to the query
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.distinct = true
	return q
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NULL",
	})
	return q
}

// WhereNotNull adds a WHERE IS NOT NULL condition
func (q *QueryBuilder[T]) WhereNotNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NOT NULL",
	})
	return q
}

// WhereILike adds a case-insensitive LIKE condition
func (q *QueryBuilder[T]) WhereILike(column, pattern string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "ILIKE",
		Value:    pattern,
	})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation specifies a relation to preload
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, relationSpec{name: name})
	return q
}

// RelationWith specifies a relation to preload with a modifier applied to the
// relation subquery (ordering, limits)
func (q *QueryBuilder[T]) RelationWith(name string, apply func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, relationSpec{name: name, apply: apply})
	return q
}

// ForUpdate adds FOR UPDATE clause (for row locking)
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// buildSelect assembles the bun select query. When forCount is true the
// relations, ordering and paging clauses are left off so the count always
// runs against the exact same predicate as the row fetch and nothing else.
func (q *QueryBuilder[T]) buildSelect(dest any, forCount bool) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)

	if q.distinct {
		query = query.Distinct()
	}

	query = applyWheres(query, q.wheres)

	if forCount {
		return query
	}

	for _, rel := range q.relations {
		if rel.apply != nil {
			query = query.Relation(rel.name, rel.apply)
		} else {
			query = query.Relation(rel.name)
		}
	}

	for _, order := range q.orders {
		query = query.OrderExpr("? ?", bun.Safe(order.Column), bun.Safe(order.Direction))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}
	if q.forUpdate {
		query = query.For("UPDATE")
	}

	return query
}

// String renders the select statement the builder would execute. Used for
// logging and for asserting predicate construction in tests.
func (q *QueryBuilder[T]) String() string {
	var model T
	return q.buildSelect(&model, false).String()
}

// applyWheres translates accumulated clauses onto any bun query type that
// supports Where (select, update and delete all share this shape via closures
// below)
func applyWheres(query *bun.SelectQuery, wheres []*WhereClause) *bun.SelectQuery {
	for _, where := range wheres {
		cond, args := whereSQL(where)
		query = query.Where(cond, args...)
	}
	return query
}

func applyWheresToUpdate(query *bun.UpdateQuery, wheres []*WhereClause) *bun.UpdateQuery {
	for _, where := range wheres {
		cond, args := whereSQL(where)
		query = query.Where(cond, args...)
	}
	return query
}

func applyWheresToDelete(query *bun.DeleteQuery, wheres []*WhereClause) *bun.DeleteQuery {
	for _, where := range wheres {
		cond, args := whereSQL(where)
		query = query.Where(cond, args...)
	}
	return query
}

// whereSQL renders a single clause to a condition fragment plus its args
func whereSQL(where *WhereClause) (string, []any) {
	if where.IsRaw {
		return where.RawSQL, where.RawArgs
	}

	switch where.Operator {
	case "IS NULL", "IS NOT NULL":
		return fmt.Sprintf("%s %s", where.Column, where.Operator), nil
	case "IN":
		values, _ := where.Value.([]any)
		cond := fmt.Sprintf("%s IN (?)", where.Column)
		if where.Negate {
			cond = "NOT (" + cond + ")"
		}
		return cond, []any{bun.In(values)}
	default:
		cond := fmt.Sprintf("%s %s ?", where.Column, where.Operator)
		if where.Negate {
			cond = "NOT (" + cond + ")"
		}
		return cond, []any{where.Value}
	}
}
