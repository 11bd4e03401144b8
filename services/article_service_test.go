package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tehnika_server/database"
	"tehnika_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newRenderDB builds a bun handle that is never dialed, for rendering the SQL
// a query would execute.
func newRenderDB(t *testing.T) *database.DB {
	t.Helper()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithInsecure(true)))
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*tables.ArticleCategory)(nil),
		(*tables.ArticleGroup)(nil),
		(*tables.CategoryGroup)(nil),
	)

	return &database.DB{DB: db}
}

func TestListingFilterCategoryBeatsName(t *testing.T) {
	db := newRenderDB(t)
	as := &ArticleService{}

	opts := &ArticleListOptions{CategoryID: "tools", Name: "hammer"}
	rendered := as.applyListingFilter(database.Query[tables.Article](db), opts).String()

	require.Contains(t, rendered, "article_categories")
	require.Contains(t, rendered, "acat.category_id = 'tools'")
	require.NotContains(t, rendered, "ILIKE", "name filter must be ignored when a category is set")
	require.NotContains(t, rendered, "hammer")
}

func TestListingFilterNameAlone(t *testing.T) {
	db := newRenderDB(t)
	as := &ArticleService{}

	opts := &ArticleListOptions{Name: "hammer"}
	rendered := as.applyListingFilter(database.Query[tables.Article](db), opts).String()

	require.Contains(t, rendered, "a.name ILIKE '%hammer%'")
	require.NotContains(t, rendered, "article_categories")
}

func TestListingFilterEmpty(t *testing.T) {
	db := newRenderDB(t)
	as := &ArticleService{}

	rendered := as.applyListingFilter(database.Query[tables.Article](db), &ArticleListOptions{}).String()

	require.NotContains(t, rendered, "WHERE")
}

func TestCanonicalOrderNewestFirst(t *testing.T) {
	db := newRenderDB(t)

	rendered := applyCanonicalOrder(database.Query[tables.Article](db)).String()

	require.Contains(t, rendered, "ORDER BY created_at DESC, id ASC")
}

func TestFeaturedArticlesQuery(t *testing.T) {
	db := newRenderDB(t)

	rendered := featuredArticlesQuery(db).String()

	require.Contains(t, rendered, "ORDER BY a.base_price DESC, a.id ASC")
	require.Contains(t, rendered, "LIMIT 5")
}

// An explicitly non-positive page size must surface as an invalid-input
// failure, not be coerced to the default.
func TestGetArticlesRejectsNonPositivePageSize(t *testing.T) {
	as := &ArticleService{
		logger: gecho.NewDefaultLogger(),
		db:     newRenderDB(t),
	}

	_, err := as.GetArticles(context.Background(), &ArticleListOptions{PageSize: 0})
	require.ErrorIs(t, err, database.ErrInvalidPageSize)

	_, err = as.GetArticles(context.Background(), &ArticleListOptions{PageSize: -1})
	require.ErrorIs(t, err, database.ErrInvalidPageSize)
}

// fakeObjectDeleter stands in for the storage backend during cascade tests.
type fakeObjectDeleter struct {
	calls    []string
	failKeys map[string]bool
}

func (f *fakeObjectDeleter) DeleteObject(ctx context.Context, key string) error {
	f.calls = append(f.calls, key)
	if f.failKeys[key] {
		return errors.New("storage unavailable")
	}
	return nil
}

func imagesWithKeys(keys ...string) []tables.Image {
	images := make([]tables.Image, len(keys))
	for i, key := range keys {
		images[i].ObjectKey = key
	}
	return images
}

// Deleting an article with three images must issue exactly three storage
// deletes, and every image must land in either the removed count or the
// reconciler queue.
func TestCascadeObjectDeleteAccounting(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	ctx := context.Background()

	t.Run("all deletes succeed", func(t *testing.T) {
		deleter := &fakeObjectDeleter{}
		images := imagesWithKeys("articles/a/1.jpg", "articles/a/2.jpg", "articles/a/3.jpg")

		removed, queued := partitionObjectDeletes(ctx, deleter, logger, images)

		require.Len(t, deleter.calls, 3, "exactly one storage delete per image")
		require.Equal(t, 3, removed)
		require.Empty(t, queued)
	})

	t.Run("failed delete is queued, not dropped", func(t *testing.T) {
		deleter := &fakeObjectDeleter{failKeys: map[string]bool{"articles/a/2.jpg": true}}
		images := imagesWithKeys("articles/a/1.jpg", "articles/a/2.jpg", "articles/a/3.jpg")

		removed, queued := partitionObjectDeletes(ctx, deleter, logger, images)

		require.Len(t, deleter.calls, 3)
		require.Equal(t, 2, removed)
		require.Equal(t, []string{"articles/a/2.jpg"}, queued)
		require.Equal(t, len(images), removed+len(queued))
	})

	t.Run("no images, no calls", func(t *testing.T) {
		deleter := &fakeObjectDeleter{}

		removed, queued := partitionObjectDeletes(ctx, deleter, logger, nil)

		require.Empty(t, deleter.calls)
		require.Zero(t, removed)
		require.Empty(t, queued)
	})
}
