package actions

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchActions handles GET /actions: every sale action with banner images
func (arm *ActionRoutesManager) FetchActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actions, err := arm.actionService.GetAllActions(ctx)
	if err != nil {
		arm.logger.Error("Failed to fetch actions", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.actions.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"actions": actions,
		}),
		gecho.Send(),
	)
}

// FetchActionByID handles GET /actions/{id}
func (arm *ActionRoutesManager) FetchActionByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.actions.invalidActionId"),
			gecho.Send(),
		)
		return
	}

	action, err := arm.actionService.GetActionByID(ctx, id)
	if err != nil {
		arm.logger.Error("Failed to fetch action", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.actions.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	if action == nil {
		gecho.NotFound(w,
			gecho.WithMessage("error.actions.notFound"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"action": action,
		}),
		gecho.Send(),
	)
}

// FetchActionArticles handles GET /actions/{id}/articles: the articles linked
// to one sale action
func (arm *ActionRoutesManager) FetchActionArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.actions.invalidActionId"),
			gecho.Send(),
		)
		return
	}

	articles, err := arm.articleService.GetArticlesByActionID(ctx, id)
	if err != nil {
		arm.logger.Error("Failed to fetch action articles", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.actions.failedToFetchArticles"),
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
