package services

import (
	"tehnika_server/database"
	"tehnika_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService      *AuthService
	EmailService     *EmailService
	CacheService     *CacheService
	HealthService    *HealthService
	StorageService   *StorageService
	ArticleService   *ArticleService
	ActionService    *ActionService
	CategoryService  *CategoryService
	GroupService     *GroupService
	ImageService     *ImageService
	ReconcileService *ReconcileService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	storageService := NewStorageService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	healthService := NewHealthService(logger, db, cacheService)
	articleService := NewArticleService(logger, db, cacheService, storageService)
	actionService := NewActionService(logger, db, cacheService, storageService)
	categoryService := NewCategoryService(logger, db, cacheService)
	groupService := NewGroupService(logger, db, storageService)
	imageService := NewImageService(logger, db, storageService)
	reconcileService := NewReconcileService(logger, cfg, db, storageService, emailService)

	return &ServiceManager{
		AuthService:      authService,
		EmailService:     emailService,
		CacheService:     cacheService,
		HealthService:    healthService,
		StorageService:   storageService,
		ArticleService:   articleService,
		ActionService:    actionService,
		CategoryService:  categoryService,
		GroupService:     groupService,
		ImageService:     imageService,
		ReconcileService: reconcileService,
	}
}
