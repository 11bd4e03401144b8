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

type GroupService struct {
	logger         *gecho.Logger
	db             *database.DB
	storageService *StorageService
}

func NewGroupService(logger *gecho.Logger, db *database.DB, storageService *StorageService) *GroupService {
	return &GroupService{
		logger:         logger,
		db:             db,
		storageService: storageService,
	}
}

// GetAllGroups lists every group, for the admin table
func (gs *GroupService) GetAllGroups(ctx context.Context) ([]tables.Group, error) {
	query := database.Query[tables.Group](gs.db)
	query = applyCanonicalOrder(query)

	groups, err := query.All(ctx)
	if err != nil {
		gs.logger.Error("Failed to fetch groups", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	return groups, nil
}

// GetHomePageGroups pages through groups that actually contain articles and
// fills each with its first slice of articles. Empty groups never reach the
// homepage.
func (gs *GroupService) GetHomePageGroups(ctx context.Context, pageIndex, pageSize, articlesPerGroup int) (*database.PageEnvelope[tables.Group], error) {
	if pageSize < 1 {
		pageSize = 10
	}
	if articlesPerGroup < 1 {
		articlesPerGroup = 8
	}

	query := database.Query[tables.Group](gs.db).
		WhereRaw("EXISTS (SELECT 1 FROM article_groups agr WHERE agr.group_id = g.id)")
	query = applyCanonicalOrder(query)

	result, err := database.Paginate(query, ctx, pageIndex, pageSize)
	if err != nil {
		gs.logger.Error("Failed to fetch homepage groups", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch homepage groups: %w", err)
	}

	// One extra query per group on the page. Page sizes here are small and
	// the per-group article limit makes a single joined query awkward.
	for i := range result.Items {
		articles, err := gs.groupArticlesQuery(result.Items[i].ID).
			Limit(articlesPerGroup).
			All(ctx)
		if err != nil {
			gs.logger.Error("Failed to fetch group articles",
				gecho.Field("group_id", result.Items[i].ID),
				gecho.Field("error", err),
			)
			return nil, fmt.Errorf("failed to fetch group articles: %w", err)
		}
		gs.signArticles(ctx, articles)
		result.Items[i].Articles = articles
	}

	return result, nil
}

// GetGroupArticles lists one group's articles, paginated in canonical order.
// An unknown group yields an empty envelope, not an error.
func (gs *GroupService) GetGroupArticles(ctx context.Context, groupID uuid.UUID, pageIndex, pageSize int) (*database.PageEnvelope[tables.Article], error) {
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := database.Paginate(gs.groupArticlesQuery(groupID), ctx, pageIndex, pageSize)
	if err != nil {
		gs.logger.Error("Failed to fetch group articles", gecho.Field("error", err), gecho.Field("group_id", groupID))
		return nil, fmt.Errorf("failed to fetch group articles: %w", err)
	}

	gs.signArticles(ctx, result.Items)
	return result, nil
}

func (gs *GroupService) groupArticlesQuery(groupID uuid.UUID) *database.QueryBuilder[tables.Article] {
	query := database.Query[tables.Article](gs.db).
		WhereRaw(
			"EXISTS (SELECT 1 FROM article_groups agr WHERE agr.article_id = a.id AND agr.group_id = ?)",
			groupID,
		).
		Relation("Images").
		Relation("Action")

	return applyCanonicalOrder(query)
}

func (gs *GroupService) signArticles(ctx context.Context, articles []tables.Article) {
	for i := range articles {
		signImageURLs(ctx, gs.logger, gs.storageService, articles[i].Images)
	}
}

type GroupRequest struct {
	Name string `json:"name" validate:"required"`
}

func (gs *GroupService) CreateGroup(ctx context.Context, req *GroupRequest) (*tables.Group, error) {
	group := &tables.Group{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if _, err := database.Query[tables.Group](gs.db).Insert(ctx, group); err != nil {
		gs.logger.Error("Failed to create group", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, err
	}

	return group, nil
}

func (gs *GroupService) UpdateGroup(ctx context.Context, groupID uuid.UUID, req *GroupRequest) (int, error) {
	updated, err := database.UpdateByID[tables.Group](gs.db, ctx, groupID, map[string]any{"name": req.Name})
	if err != nil {
		gs.logger.Error("Failed to update group", gecho.Field("error", err), gecho.Field("group_id", groupID))
		return 0, err
	}
	return updated, nil
}

// DeleteGroup removes a group and its join rows; member articles are untouched
func (gs *GroupService) DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	var deleted int64

	err := database.Transaction(gs.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*tables.ArticleGroup)(nil)).Where("group_id = ?", groupID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete article links: %w", err)
		}
		if _, err := tx.NewDelete().Model((*tables.CategoryGroup)(nil)).Where("group_id = ?", groupID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete category links: %w", err)
		}

		res, err := tx.NewDelete().Model((*tables.Group)(nil)).Where("id = ?", groupID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		gs.logger.Error("Failed to delete group", gecho.Field("error", err), gecho.Field("group_id", groupID))
		return 0, err
	}

	return int(deleted), nil
}
