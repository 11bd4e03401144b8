package services

import (
	"context"
	"fmt"
	"tehnika_server/database"
	"tehnika_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CategoryService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCategoryService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CategoryService {
	return &CategoryService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetAllCategories returns every category with its groups, for the sidebar.
// The full list is small and cached as one unit.
func (cs *CategoryService) GetAllCategories(ctx context.Context) ([]tables.Category, error) {
	cached, err := cs.cacheService.GetCategoryList()
	if err != nil {
		cs.logger.Warn("Failed to get categories from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	query := database.Query[tables.Category](cs.db).Relation("Groups")
	query = applyCanonicalOrder(query)

	categories, err := query.All(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	go func() {
		if err := cs.cacheService.SetCategoryList(categories); err != nil {
			cs.logger.Warn("Failed to cache categories", gecho.Field("error", err))
		}
	}()

	return categories, nil
}

// GetCategoryByID returns one category with its groups, or nil, nil
func (cs *CategoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*tables.Category, error) {
	category, err := database.Query[tables.Category](cs.db).
		Where("c.id", id).
		Relation("Groups").
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch category", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return category, nil
}

// GetCategoryArticles lists a category's articles, paginated in canonical
// order. An unknown category yields an empty envelope, not an error.
func (cs *CategoryService) GetCategoryArticles(ctx context.Context, categoryID uuid.UUID, pageIndex, pageSize int) (*database.PageEnvelope[tables.Article], error) {
	if pageSize < 1 {
		pageSize = 20
	}

	query := database.Query[tables.Article](cs.db).
		WhereRaw(
			"EXISTS (SELECT 1 FROM article_categories acat WHERE acat.article_id = a.id AND acat.category_id = ?)",
			categoryID,
		).
		Relation("Images").
		Relation("Action").
		Relation("Brand")

	query = applyCanonicalOrder(query)

	result, err := database.Paginate(query, ctx, pageIndex, pageSize)
	if err != nil {
		cs.logger.Error("Failed to fetch category articles", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return nil, fmt.Errorf("failed to fetch category articles: %w", err)
	}

	return result, nil
}

type CategoryRequest struct {
	Name     string      `json:"name" validate:"required"`
	GroupIDs []uuid.UUID `json:"group_ids"`
}

func (cs *CategoryService) CreateCategory(ctx context.Context, req *CategoryRequest) (*tables.Category, error) {
	category := &tables.Category{
		ID:   uuid.New(),
		Name: req.Name,
	}

	err := database.Transaction(cs.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(category).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
		return insertCategoryGroupLinks(ctx, tx, category.ID, req.GroupIDs)
	})
	if err != nil {
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, err
	}

	cs.invalidate()
	return category, nil
}

// UpdateCategory renames a category and replaces its group links wholesale
func (cs *CategoryService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *CategoryRequest) (int, error) {
	var updated int64

	err := database.Transaction(cs.db, ctx, func(tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*tables.Category)(nil)).
			Set("name = ?", req.Name).
			Where("id = ?", categoryID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}

		updated, _ = res.RowsAffected()
		if updated == 0 {
			return nil
		}

		if _, err := tx.NewDelete().Model((*tables.CategoryGroup)(nil)).Where("category_id = ?", categoryID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete group links: %w", err)
		}
		return insertCategoryGroupLinks(ctx, tx, categoryID, req.GroupIDs)
	})
	if err != nil {
		cs.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return 0, err
	}

	cs.invalidate()
	return int(updated), nil
}

// DeleteCategory removes a category and its join rows. Articles themselves
// are untouched; they just lose the category link.
func (cs *CategoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var deleted int64

	err := database.Transaction(cs.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*tables.ArticleCategory)(nil)).Where("category_id = ?", categoryID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete article links: %w", err)
		}
		if _, err := tx.NewDelete().Model((*tables.CategoryGroup)(nil)).Where("category_id = ?", categoryID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete group links: %w", err)
		}

		res, err := tx.NewDelete().Model((*tables.Category)(nil)).Where("id = ?", categoryID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return 0, err
	}

	cs.invalidate()
	return int(deleted), nil
}

func insertCategoryGroupLinks(ctx context.Context, tx bun.Tx, categoryID uuid.UUID, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return nil
	}

	links := make([]tables.CategoryGroup, 0, len(groupIDs))
	for _, grpID := range groupIDs {
		links = append(links, tables.CategoryGroup{CategoryID: categoryID, GroupID: grpID})
	}
	if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert group links: %w", err)
	}
	return nil
}

func (cs *CategoryService) invalidate() {
	go func() {
		if err := cs.cacheService.InvalidateCategories(); err != nil {
			cs.logger.Warn("Failed to invalidate category cache", gecho.Field("error", err))
		}
	}()
}
