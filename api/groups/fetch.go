package groups

import (
	"net/http"
	"strconv"
	"tehnika_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchGroups handles GET /groups: the full group list for navigation
func (grm *GroupRoutesManager) FetchGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := grm.groupService.GetAllGroups(ctx)
	if err != nil {
		grm.logger.Error("Failed to fetch groups", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.groups.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"groups": groups,
		}),
		gecho.Send(),
	)
}

// FetchHomePageGroups handles GET /groups/home: the infinite-scroll homepage
// feed of group sections, each pre-filled with a slice of articles.
func (grm *GroupRoutesManager) FetchHomePageGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageIndex, pageSize, err := handling.ParsePageParams(r, 10)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.Send(),
		)
		return
	}

	articlesPerGroup := 8
	if raw := r.URL.Query().Get("articles_per_group"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			articlesPerGroup = val
		}
	}

	result, err := grm.groupService.GetHomePageGroups(ctx, pageIndex, pageSize, articlesPerGroup)
	if err != nil {
		grm.logger.Error("Failed to fetch homepage groups", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.groups.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

// FetchGroupArticles handles GET /groups/{id}/articles: one group's paginated
// article listing
func (grm *GroupRoutesManager) FetchGroupArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.groups.invalidGroupId"),
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

	result, err := grm.groupService.GetGroupArticles(ctx, id, pageIndex, pageSize)
	if err != nil {
		grm.logger.Error("Failed to fetch group articles", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.groups.failedToFetchArticles"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
