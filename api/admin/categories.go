package admin

import (
	"net/http"
	"tehnika_server/lib"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (ar *AdminRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.CategoryRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the category information and try again"), gecho.Send())
		return
	}

	category, err := ar.categoryService.CreateCategory(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to create category", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.WithMessage("Category created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalidCategoryId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[services.CategoryRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the category information and try again"), gecho.Send())
		return
	}

	updated, err := ar.categoryService.UpdateCategory(r.Context(), id, body)
	if err != nil {
		ar.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update category. Please try again"), gecho.Send())
		return
	}

	if updated == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Category updated successfully"), gecho.Send())
}

func (ar *AdminRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalidCategoryId"), gecho.Send())
		return
	}

	deleted, err := ar.categoryService.DeleteCategory(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete category. Please try again"), gecho.Send())
		return
	}

	if deleted == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Category deleted successfully"), gecho.Send())
}
