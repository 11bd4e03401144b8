package api

import (
	"tehnika_server/api/actions"
	"tehnika_server/api/admin"
	"tehnika_server/api/articles"
	"tehnika_server/api/auth"
	"tehnika_server/api/categories"
	"tehnika_server/api/groups"
	"tehnika_server/api/health"
	"tehnika_server/api/middleware"
	"tehnika_server/services"
	"tehnika_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	articleRoutes  *articles.ArticleRoutesManager
	actionRoutes   *actions.ActionRoutesManager
	categoryRoutes *categories.CategoryRoutesManager
	groupRoutes    *groups.GroupRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		articleRoutes:  articles.NewArticleRoutesManager(logger, sm.ArticleService),
		actionRoutes:   actions.NewActionRoutesManager(logger, sm.ActionService, sm.ArticleService),
		categoryRoutes: categories.NewCategoryRoutesManager(logger, sm.CategoryService),
		groupRoutes:    groups.NewGroupRoutesManager(logger, sm.GroupService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, cfg),
		adminRoutes: admin.NewAdminRoutesManager(
			logger,
			sm.ArticleService,
			sm.ActionService,
			sm.CategoryService,
			sm.GroupService,
			sm.ImageService,
			sm.ReconcileService,
			mw,
		),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.articleRoutes.RegisterRoutes(r)
	rm.actionRoutes.RegisterRoutes(r)
	rm.categoryRoutes.RegisterRoutes(r)
	rm.groupRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
