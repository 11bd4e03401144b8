package categories

import (
	"net/http"
	"tehnika_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchCategories handles GET /categories: the sidebar list with groups
func (crm *CategoryRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := crm.categoryService.GetAllCategories(ctx)
	if err != nil {
		crm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.categories.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": categories,
		}),
		gecho.Send(),
	)
}

// FetchCategoryByID handles GET /categories/{id}
func (crm *CategoryRoutesManager) FetchCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.categories.invalidCategoryId"),
			gecho.Send(),
		)
		return
	}

	category, err := crm.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		crm.logger.Error("Failed to fetch category", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.categories.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	if category == nil {
		gecho.NotFound(w,
			gecho.WithMessage("error.categories.notFound"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"category": category,
		}),
		gecho.Send(),
	)
}

// FetchCategoryArticles handles GET /categories/{id}/articles: one category's
// paginated article listing. An unknown category yields an empty page, the
// same as paging past the end.
func (crm *CategoryRoutesManager) FetchCategoryArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.categories.invalidCategoryId"),
			gecho.Send(),
		)
		return
	}

	pageIndex, pageSize, err := handling.ParsePageParams(r, 20)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.Send(),
		)
		return
	}

	result, err := crm.categoryService.GetCategoryArticles(ctx, id, pageIndex, pageSize)
	if err != nil {
		crm.logger.Error("Failed to fetch category articles", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.categories.failedToFetchArticles"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
