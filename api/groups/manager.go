package groups

import (
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type GroupRoutesManager struct {
	logger       *gecho.Logger
	groupService *services.GroupService
}

func NewGroupRoutesManager(
	logger *gecho.Logger,
	groupService *services.GroupService,
) *GroupRoutesManager {
	return &GroupRoutesManager{
		logger:       logger,
		groupService: groupService,
	}
}

func (grm *GroupRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/groups", grm.FetchGroups)
	r.Get("/groups/home", grm.FetchHomePageGroups)
	r.Get("/groups/{id}/articles", grm.FetchGroupArticles)
}
