package articles

import (
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ArticleRoutesManager struct {
	logger         *gecho.Logger
	articleService *services.ArticleService
}

func NewArticleRoutesManager(
	logger *gecho.Logger,
	articleService *services.ArticleService,
) *ArticleRoutesManager {
	return &ArticleRoutesManager{
		logger:         logger,
		articleService: articleService,
	}
}

func (arm *ArticleRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/articles", arm.FetchArticles)
	r.Get("/articles/search", arm.SearchArticles)
	r.Get("/articles/on-action", arm.FetchArticlesOnAction)
	r.Get("/articles/featured", arm.FetchFeaturedArticles)
	r.Get("/articles/{id}", arm.FetchArticleByID)
	r.Get("/brands/{id}/articles", arm.FetchArticlesByBrand)
}
