package admin

import (
	"errors"
	"net/http"
	"tehnika_server/database"
	"tehnika_server/handling"
	"tehnika_server/lib"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListArticles handles GET /admin/articles: the admin table view, same
// envelope and filters as the public listing
func (ar *AdminRoutesManager) ListArticles(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseArticleListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := ar.articleService.GetArticles(r.Context(), opts)
	if err != nil {
		if errors.Is(err, database.ErrInvalidPageSize) {
			gecho.BadRequest(w, gecho.WithMessage("error.articles.invalidPageSize"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to list articles", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.articles.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(result), gecho.Send())
}

func (ar *AdminRoutesManager) CreateArticle(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.CreateArticleRequest](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the article information and try again"), gecho.Send())
		return
	}

	article, err := ar.articleService.CreateArticle(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An article with this name already exists"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to create article", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create article. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(article),
		gecho.WithMessage("Article created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.articles.invalidArticleId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[services.CreateArticleRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the article information and try again"), gecho.Send())
		return
	}

	updated, err := ar.articleService.UpdateArticle(r.Context(), id, body)
	if err != nil {
		ar.logger.Error("Failed to update article", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update article. Please try again"), gecho.Send())
		return
	}

	if updated == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.articles.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Article updated successfully"), gecho.Send())
}

func (ar *AdminRoutesManager) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.articles.invalidArticleId"), gecho.Send())
		return
	}

	result, err := ar.articleService.DeleteArticle(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to delete article", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete article. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.WithMessage("Article deleted successfully"),
		gecho.Send(),
	)
}
