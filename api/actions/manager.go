package actions

import (
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ActionRoutesManager struct {
	logger         *gecho.Logger
	actionService  *services.ActionService
	articleService *services.ArticleService
}

func NewActionRoutesManager(
	logger *gecho.Logger,
	actionService *services.ActionService,
	articleService *services.ArticleService,
) *ActionRoutesManager {
	return &ActionRoutesManager{
		logger:         logger,
		actionService:  actionService,
		articleService: articleService,
	}
}

func (arm *ActionRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/actions", arm.FetchActions)
	r.Get("/actions/{id}", arm.FetchActionByID)
	r.Get("/actions/{id}/articles", arm.FetchActionArticles)
}
