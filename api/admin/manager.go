package admin

import (
	"tehnika_server/api/middleware"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger           *gecho.Logger
	articleService   *services.ArticleService
	actionService    *services.ActionService
	categoryService  *services.CategoryService
	groupService     *services.GroupService
	imageService     *services.ImageService
	reconcileService *services.ReconcileService
	mw               *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	articleService *services.ArticleService,
	actionService *services.ActionService,
	categoryService *services.CategoryService,
	groupService *services.GroupService,
	imageService *services.ImageService,
	reconcileService *services.ReconcileService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:           logger,
		articleService:   articleService,
		actionService:    actionService,
		categoryService:  categoryService,
		groupService:     groupService,
		imageService:     imageService,
		reconcileService: reconcileService,
		mw:               mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)

		// Article management. Listing reuses the public storefront query so
		// the admin table pages identically.
		r.Get("/articles", ar.ListArticles)
		r.Post("/articles", ar.CreateArticle)
		r.Put("/articles/{id}", ar.UpdateArticle)
		r.Delete("/articles/{id}", ar.DeleteArticle)

		// Category management
		r.Post("/categories", ar.CreateCategory)
		r.Put("/categories/{id}", ar.UpdateCategory)
		r.Delete("/categories/{id}", ar.DeleteCategory)

		// Group management
		r.Get("/groups", ar.ListGroups)
		r.Post("/groups", ar.CreateGroup)
		r.Put("/groups/{id}", ar.UpdateGroup)
		r.Delete("/groups/{id}", ar.DeleteGroup)

		// Action management
		r.Post("/actions", ar.CreateAction)
		r.Put("/actions/{id}", ar.UpdateAction)
		r.Delete("/actions/{id}", ar.DeleteAction)

		// Image upload flow: presign, confirm, list, delete
		r.Post("/images/presign", ar.PresignImageUpload)
		r.Post("/images/{id}/confirm", ar.ConfirmImageUpload)
		r.Get("/images", ar.ListOwnerImages)
		r.Delete("/images/{id}", ar.DeleteImage)

		// Storage reconciliation queue
		r.Get("/storage/deletions", ar.ListStorageDeletions)
	})
}
