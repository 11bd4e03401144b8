package database

import (
	"database/sql"
	"testing"

	"tehnika_server/structs/tables"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newRenderDB builds a bun handle that is never dialed; the builder tests only
// render SQL, they do not execute it.
func newRenderDB(t *testing.T) *DB {
	t.Helper()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithInsecure(true)))
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*tables.ArticleCategory)(nil),
		(*tables.ArticleGroup)(nil),
		(*tables.CategoryGroup)(nil),
	)

	return &DB{db}
}

func TestBuilderRendersSimpleWhere(t *testing.T) {
	db := newRenderDB(t)

	rendered := Query[tables.Article](db).Where("a.name", "drill").String()

	require.Contains(t, rendered, "WHERE")
	require.Contains(t, rendered, "a.name = 'drill'")
}

func TestBuilderRendersILike(t *testing.T) {
	db := newRenderDB(t)

	rendered := Query[tables.Article](db).WhereILike("a.name", "%hammer%").String()

	require.Contains(t, rendered, "a.name ILIKE '%hammer%'")
}

func TestBuilderRendersRawExists(t *testing.T) {
	db := newRenderDB(t)

	rendered := Query[tables.Article](db).WhereRaw(
		"EXISTS (SELECT 1 FROM article_categories acat WHERE acat.article_id = a.id AND acat.category_id = ?)",
		"tools",
	).String()

	require.Contains(t, rendered, "EXISTS (SELECT 1 FROM article_categories acat")
	require.Contains(t, rendered, "acat.category_id = 'tools'")
}

func TestBuilderRendersOrderChain(t *testing.T) {
	db := newRenderDB(t)

	rendered := Query[tables.Article](db).
		OrderBy("created_at", DESC).
		OrderBy("id", ASC).
		String()

	require.Contains(t, rendered, "ORDER BY created_at DESC, id ASC")
}

func TestBuilderRendersLimitOffset(t *testing.T) {
	db := newRenderDB(t)

	rendered := Query[tables.Article](db).Limit(10).Offset(20).String()

	require.Contains(t, rendered, "LIMIT 10")
	require.Contains(t, rendered, "OFFSET 20")
}

func TestWhereSQLFragments(t *testing.T) {
	tests := []struct {
		name     string
		clause   *WhereClause
		wantCond string
		wantArgs int
	}{
		{
			name:     "equality",
			clause:   &WhereClause{Column: "id", Operator: "=", Value: 1},
			wantCond: "id = ?",
			wantArgs: 1,
		},
		{
			name:     "negated equality",
			clause:   &WhereClause{Column: "id", Operator: "=", Value: 1, Negate: true},
			wantCond: "NOT (id = ?)",
			wantArgs: 1,
		},
		{
			name:     "is null",
			clause:   &WhereClause{Column: "action_id", Operator: "IS NULL"},
			wantCond: "action_id IS NULL",
			wantArgs: 0,
		},
		{
			name:     "in",
			clause:   &WhereClause{Column: "id", Operator: "IN", Value: []any{1, 2}},
			wantCond: "id IN (?)",
			wantArgs: 1,
		},
		{
			name:     "raw passthrough",
			clause:   &WhereClause{IsRaw: true, RawSQL: "a = ? AND b = ?", RawArgs: []any{1, 2}},
			wantCond: "a = ? AND b = ?",
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, args := whereSQL(tt.clause)
			require.Equal(t, tt.wantCond, cond)
			require.Len(t, args, tt.wantArgs)
		})
	}
}
