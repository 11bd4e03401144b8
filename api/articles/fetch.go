package articles

import (
	"errors"
	"net/http"
	"tehnika_server/database"
	"tehnika_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchArticles handles GET /articles: the paginated storefront listing with
// the optional category/name filter.
func (arm *ArticleRoutesManager) FetchArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseArticleListOptions(r)
	if err != nil {
		arm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := arm.articleService.GetArticles(ctx, opts)
	if err != nil {
		if errors.Is(err, database.ErrInvalidPageSize) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.articles.invalidPageSize"),
				gecho.Send(),
			)
			return
		}

		arm.logger.Error("Failed to fetch articles", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.articles.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

// FetchArticleByID handles GET /articles/{id}: the article detail page
func (arm *ArticleRoutesManager) FetchArticleByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.articles.invalidArticleId"),
			gecho.Send(),
		)
		return
	}

	article, err := arm.articleService.GetArticleByID(ctx, id)
	if err != nil {
		arm.logger.Error("Failed to fetch article by ID", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.articles.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	if article == nil {
		gecho.NotFound(w,
			gecho.WithMessage("error.articles.notFound"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"article": article,
		}),
		gecho.Send(),
	)
}

// SearchArticles handles GET /articles/search?name=... for the search box
func (arm *ArticleRoutesManager) SearchArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := r.URL.Query().Get("name")

	articles, err := arm.articleService.SearchArticlesByName(ctx, term)
	if err != nil {
		arm.logger.Error("Failed to search articles", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.articles.failedToSearch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"articles": articles,
		}),
		gecho.Send(),
	)
}

// FetchFeaturedArticles handles GET /articles/featured: the home page strip
// of the highest-priced articles
func (arm *ArticleRoutesManager) FetchFeaturedArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := arm.articleService.GetFeaturedArticles(ctx)
	if err != nil {
		arm.logger.Error("Failed to fetch featured articles", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.articles.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"articles": articles,
		}),
		gecho.Send(),
	)
}

// FetchArticlesByBrand handles GET /brands/{id}/articles: the brand page
func (arm *ArticleRoutesManager) FetchArticlesByBrand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.brands.invalidBrandId"),
			gecho.Send(),
		)
		return
	}

	articles, err := arm.articleService.GetArticlesByBrandID(ctx, id)
	if err != nil {
		arm.logger.Error("Failed to fetch brand articles", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.brands.failedToFetchArticles"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"articles": articles,
		}),
		gecho.Send(),
	)
}

// FetchArticlesOnAction handles GET /articles/on-action: the discounted
// articles listing
func (arm *ArticleRoutesManager) FetchArticlesOnAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageIndex, pageSize, err := handling.ParsePageParams(r, 20)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.Send(),
		)
		return
	}

	result, err := arm.articleService.GetArticlesOnAction(ctx, pageIndex, pageSize)
	if err != nil {
		arm.logger.Error("Failed to fetch articles on action", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.articles.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
