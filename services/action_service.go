package services

import (
	"context"
	"fmt"
	"tehnika_server/database"
	"tehnika_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ActionService struct {
	logger         *gecho.Logger
	db             *database.DB
	cacheService   *CacheService
	storageService *StorageService
}

func NewActionService(logger *gecho.Logger, db *database.DB, cacheService *CacheService, storageService *StorageService) *ActionService {
	return &ActionService{
		logger:         logger,
		db:             db,
		cacheService:   cacheService,
		storageService: storageService,
	}
}

// GetAllActions lists every sale action with its banner images
func (as *ActionService) GetAllActions(ctx context.Context) ([]tables.Action, error) {
	query := database.Query[tables.Action](as.db).Relation("Images")
	query = applyCanonicalOrder(query)

	actions, err := query.All(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch actions", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch actions: %w", err)
	}

	for i := range actions {
		signImageURLs(ctx, as.logger, as.storageService, actions[i].Images)
	}

	return actions, nil
}

// GetActionByID returns one action with its images and linked articles, or
// nil, nil when no such action exists
func (as *ActionService) GetActionByID(ctx context.Context, id uuid.UUID) (*tables.Action, error) {
	action, err := database.Query[tables.Action](as.db).
		Where("act.id", id).
		Relation("Images").
		Relation("Articles").
		Relation("Articles.Images").
		First(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch action", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to fetch action: %w", err)
	}
	if action == nil {
		return nil, nil
	}

	signImageURLs(ctx, as.logger, as.storageService, action.Images)
	for i := range action.Articles {
		signImageURLs(ctx, as.logger, as.storageService, action.Articles[i].Images)
	}

	return action, nil
}

// ActionRequest carries a full action payload. ArticleIDs is the complete set
// of articles the action applies to; links are replaced wholesale.
type ActionRequest struct {
	Title       string      `json:"title" validate:"required"`
	Discount    int         `json:"discount" validate:"required,gt=0,lte=100"`
	Description string      `json:"description"`
	Date        *time.Time  `json:"date,omitempty"`
	ArticleIDs  []uuid.UUID `json:"article_ids"`
}

func (as *ActionService) CreateAction(ctx context.Context, req *ActionRequest) (*tables.Action, error) {
	action := &tables.Action{
		ID:          uuid.New(),
		Title:       req.Title,
		Discount:    req.Discount,
		Description: req.Description,
		Date:        req.Date,
		CreatedAt:   time.Now(),
	}

	err := database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(action).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}
		return relinkActionArticles(ctx, tx, action.ID, req.ArticleIDs)
	})
	if err != nil {
		as.logger.Error("Failed to create action", gecho.Field("error", err), gecho.Field("title", req.Title))
		return nil, err
	}

	as.invalidateListings()
	return action, nil
}

// UpdateAction overwrites an action's fields and re-links its article set
func (as *ActionService) UpdateAction(ctx context.Context, actionID uuid.UUID, req *ActionRequest) (int, error) {
	var updated int64

	err := database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*tables.Action)(nil)).
			Set("title = ?", req.Title).
			Set("discount = ?", req.Discount).
			Set("description = ?", req.Description).
			Set("date = ?", req.Date).
			Where("id = ?", actionID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update action: %w", err)
		}

		updated, _ = res.RowsAffected()
		if updated == 0 {
			return nil
		}

		return relinkActionArticles(ctx, tx, actionID, req.ArticleIDs)
	})
	if err != nil {
		as.logger.Error("Failed to update action", gecho.Field("error", err), gecho.Field("action_id", actionID))
		return 0, err
	}

	as.invalidateListings()
	return int(updated), nil
}

// DeleteAction removes an action, unlinks its articles and cleans up its
// banner images. Failed object deletes are queued for the reconciler.
func (as *ActionService) DeleteAction(ctx context.Context, actionID uuid.UUID) (int, error) {
	images, err := database.Query[tables.Image](as.db).Where("action_id", actionID).All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch action images: %w", err)
	}

	for _, img := range images {
		removeObjectOrQueue(ctx, as.db, as.storageService, as.logger, img.ObjectKey)
	}

	var deleted int64

	err = database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.Article)(nil)).
			Set("action_id = NULL").
			Where("action_id = ?", actionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to unlink articles: %w", err)
		}

		if _, err := tx.NewDelete().Model((*tables.Image)(nil)).Where("action_id = ?", actionID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete image rows: %w", err)
		}

		res, err := tx.NewDelete().Model((*tables.Action)(nil)).Where("id = ?", actionID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete action: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		as.logger.Error("Failed to delete action", gecho.Field("error", err), gecho.Field("action_id", actionID))
		return 0, err
	}

	as.invalidateListings()
	return int(deleted), nil
}

// relinkActionArticles makes the given set the complete membership of the
// action: everything else is unlinked first.
func relinkActionArticles(ctx context.Context, tx bun.Tx, actionID uuid.UUID, articleIDs []uuid.UUID) error {
	if _, err := tx.NewUpdate().
		Model((*tables.Article)(nil)).
		Set("action_id = NULL").
		Where("action_id = ?", actionID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to unlink articles: %w", err)
	}

	if len(articleIDs) == 0 {
		return nil
	}

	if _, err := tx.NewUpdate().
		Model((*tables.Article)(nil)).
		Set("action_id = ?", actionID).
		Where("id IN (?)", bun.In(articleIDs)).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to link articles: %w", err)
	}

	return nil
}

// invalidateListings drops article listing caches, since discount linkage
// shows up inside listed articles
func (as *ActionService) invalidateListings() {
	go func() {
		if err := as.cacheService.DeletePattern("articles:*"); err != nil {
			as.logger.Warn("Failed to invalidate listing caches", gecho.Field("error", err))
		}
	}()
}
