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

type ArticleService struct {
	logger         *gecho.Logger
	db             *database.DB
	cacheService   *CacheService
	storageService *StorageService
}

func NewArticleService(logger *gecho.Logger, db *database.DB, cacheService *CacheService, storageService *StorageService) *ArticleService {
	return &ArticleService{
		logger:         logger,
		db:             db,
		cacheService:   cacheService,
		storageService: storageService,
	}
}

// ArticleListOptions contains filtering and pagination options for article listings
type ArticleListOptions struct {
	// Pagination (0-based page index)
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`

	// Filters. When both are set the category filter wins and the name filter
	// is ignored; the two never combine.
	CategoryID string `json:"category,omitempty"`
	Name       string `json:"name,omitempty"`

	// Performance
	Timeout time.Duration `json:"-"` // Query timeout (not exposed in JSON)
}

// ArticleDeleteResult reports what a cascade delete touched
type ArticleDeleteResult struct {
	ArticleID      uuid.UUID `json:"article_id"`
	ImagesRemoved  int       `json:"images_removed"`
	DeletesQueued  int       `json:"deletes_queued"`
	AttributesGone int       `json:"attributes_gone"`
}

// GetArticles retrieves articles with filtering and pagination. This backs
// both the storefront listing and the admin table view.
func (as *ArticleService) GetArticles(ctx context.Context, opts *ArticleListOptions) (*database.PageEnvelope[tables.Article], error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ArticleListOptions{PageSize: 20}
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	queryCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	query := database.Query[tables.Article](as.db).
		Relation("Images").
		Relation("Action").
		Relation("Brand").
		Relation("Categories")

	query = as.applyListingFilter(query, opts)
	query = applyCanonicalOrder(query)

	result, err := database.Paginate(query, queryCtx, opts.PageIndex, opts.PageSize)
	if err != nil {
		as.logger.Error("Failed to fetch articles",
			gecho.Field("error", err),
			gecho.Field("page_index", opts.PageIndex),
			gecho.Field("page_size", opts.PageSize),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}

	as.signArticleImages(queryCtx, result.Items)

	as.logger.Debug("Articles fetched successfully",
		gecho.Field("count", len(result.Items)),
		gecho.Field("page_index", result.PageIndex),
		gecho.Field("page_count", result.PageCount),
		gecho.Field("duration", time.Since(startTime)),
	)

	return result, nil
}

// GetArticlesOnAction lists articles currently attached to any sale action
func (as *ArticleService) GetArticlesOnAction(ctx context.Context, pageIndex, pageSize int) (*database.PageEnvelope[tables.Article], error) {
	query := database.Query[tables.Article](as.db).
		WhereNotNull("a.action_id").
		Relation("Images").
		Relation("Action").
		Relation("Brand")

	query = applyCanonicalOrder(query)

	result, err := database.Paginate(query, ctx, pageIndex, pageSize)
	if err != nil {
		as.logger.Error("Failed to fetch articles on action", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch articles on action: %w", err)
	}

	as.signArticleImages(ctx, result.Items)
	return result, nil
}

// GetArticleByID retrieves a single article with its full detail graph.
// Returns nil, nil when no such article exists.
func (as *ArticleService) GetArticleByID(ctx context.Context, id uuid.UUID) (*tables.Article, error) {
	startTime := time.Now()

	// Try to get from cache first
	cached, err := as.cacheService.GetArticleByID(id)
	if err != nil {
		as.logger.Warn("Failed to get article from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cached != nil {
		as.logger.Debug("Article retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		// Signed URLs in the cached copy may have expired; re-sign from keys
		as.signArticleImages(ctx, []tables.Article{*cached})
		return cached, nil
	}

	// Cache miss - fetch from database
	article, err := database.Query[tables.Article](as.db).
		Where("a.id", id).
		Relation("Images").
		Relation("Action").
		Relation("Brand").
		Relation("Attributes").
		Relation("Groups").
		Relation("Categories").
		Relation("Categories.Groups").
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch article by ID",
			gecho.Field("id", id),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	if article == nil {
		return nil, nil
	}

	as.signArticleImages(ctx, []tables.Article{*article})

	// Cache the article asynchronously
	go func() {
		if err := as.cacheService.SetArticleByID(article); err != nil {
			as.logger.Warn("Failed to cache article", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	as.logger.Debug("Article fetched by ID",
		gecho.Field("id", id),
		gecho.Field("duration", time.Since(startTime)),
	)
	return article, nil
}

// SearchArticlesByName returns articles whose name contains the term,
// case-insensitively. An empty term yields an empty result, never an error.
func (as *ArticleService) SearchArticlesByName(ctx context.Context, term string) ([]tables.Article, error) {
	if term == "" {
		return []tables.Article{}, nil
	}

	query := database.Query[tables.Article](as.db).
		WhereILike("a.name", "%"+term+"%").
		Relation("Images").
		Relation("Action").
		Limit(25)

	query = applyCanonicalOrder(query)

	articles, err := query.All(ctx)
	if err != nil {
		as.logger.Error("Failed to search articles", gecho.Field("term", term), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	as.signArticleImages(ctx, articles)
	return articles, nil
}

const featuredArticleCount = 5

// featuredArticlesQuery selects the storefront's featured strip: the highest
// priced articles with their images and any running action.
func featuredArticlesQuery(db *database.DB) *database.QueryBuilder[tables.Article] {
	return database.Query[tables.Article](db).
		Relation("Images").
		Relation("Action").
		OrderBy("a.base_price", database.DESC).
		OrderBy("a.id", database.ASC).
		Limit(featuredArticleCount)
}

// GetFeaturedArticles returns the featured strip for the home page
func (as *ArticleService) GetFeaturedArticles(ctx context.Context) ([]tables.Article, error) {
	articles, err := featuredArticlesQuery(as.db).All(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch featured articles", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch featured articles: %w", err)
	}

	as.signArticleImages(ctx, articles)
	return articles, nil
}

// GetArticlesByActionID lists all articles linked to one sale action
func (as *ArticleService) GetArticlesByActionID(ctx context.Context, actionID uuid.UUID) ([]tables.Article, error) {
	query := database.Query[tables.Article](as.db).
		Where("a.action_id", actionID).
		Relation("Images").
		Relation("Action").
		Relation("Brand")

	query = applyCanonicalOrder(query)

	articles, err := query.All(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch articles by action", gecho.Field("action_id", actionID), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch articles by action: %w", err)
	}

	as.signArticleImages(ctx, articles)
	return articles, nil
}

// GetArticlesByBrandID lists all articles of one brand
func (as *ArticleService) GetArticlesByBrandID(ctx context.Context, brandID uuid.UUID) ([]tables.Article, error) {
	query := database.Query[tables.Article](as.db).
		Where("a.brand_id", brandID).
		Relation("Images").
		Relation("Action").
		Relation("Brand")

	query = applyCanonicalOrder(query)

	articles, err := query.All(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch articles by brand", gecho.Field("brand_id", brandID), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch articles by brand: %w", err)
	}

	as.signArticleImages(ctx, articles)
	return articles, nil
}

// applyListingFilter applies the storefront filter. Category beats name: when
// a category is given any name term is ignored so the two never combine.
func (as *ArticleService) applyListingFilter(query *database.QueryBuilder[tables.Article], opts *ArticleListOptions) *database.QueryBuilder[tables.Article] {
	if opts.CategoryID != "" {
		return query.WhereRaw(
			"EXISTS (SELECT 1 FROM article_categories acat WHERE acat.article_id = a.id AND acat.category_id = ?)",
			opts.CategoryID,
		)
	}

	if opts.Name != "" {
		return query.WhereILike("a.name", "%"+opts.Name+"%")
	}

	return query
}

// applyCanonicalOrder sorts newest-first with ID as tiebreaker. Every listing
// uses this ordering so pages never shuffle rows between fetches.
// objectDeleter is the slice of the storage service a cascade delete needs.
type objectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// partitionObjectDeletes attempts one storage delete per image and splits the
// outcome: removed counts successful deletes, queuedKeys are the object keys
// that must go onto the reconciler queue. Every image lands in exactly one of
// the two buckets.
func partitionObjectDeletes(ctx context.Context, storage objectDeleter, logger *gecho.Logger, images []tables.Image) (removed int, queuedKeys []string) {
	for _, img := range images {
		if err := storage.DeleteObject(ctx, img.ObjectKey); err != nil {
			logger.Warn("Object delete failed, queueing for reconciler",
				gecho.Field("object_key", img.ObjectKey),
				gecho.Field("error", err),
			)
			queuedKeys = append(queuedKeys, img.ObjectKey)
			continue
		}
		removed++
	}
	return removed, queuedKeys
}

func applyCanonicalOrder[T any](query *database.QueryBuilder[T]) *database.QueryBuilder[T] {
	return query.
		OrderBy("created_at", database.DESC).
		OrderBy("id", database.ASC)
}

// signArticleImages resolves access URLs for every image hanging off the
// given articles. Failures degrade to an empty URL, never an error.
func (as *ArticleService) signArticleImages(ctx context.Context, articles []tables.Article) {
	for i := range articles {
		signImageURLs(ctx, as.logger, as.storageService, articles[i].Images)
		if articles[i].Action != nil {
			signImageURLs(ctx, as.logger, as.storageService, articles[i].Action.Images)
		}
	}
}

// CreateArticleRequest carries a full article payload. Attributes, category
// links and group links are written alongside the row in one transaction.
type CreateArticleRequest struct {
	Name             string      `json:"name" validate:"required"`
	Description      string      `json:"description" validate:"required"`
	ShortDescription string      `json:"short_description"`
	BasePrice        uint64      `json:"base_price" validate:"required"`
	Warranty         string      `json:"warranty"`
	BrandID          *uuid.UUID  `json:"brand_id,omitempty"`
	ActionID         *uuid.UUID  `json:"action_id,omitempty"`
	Attributes       []tables.Attribute `json:"attributes" validate:"dive"`
	CategoryIDs      []uuid.UUID `json:"category_ids"`
	GroupIDs         []uuid.UUID `json:"group_ids"`
}

func (as *ArticleService) CreateArticle(ctx context.Context, req *CreateArticleRequest) (*tables.Article, error) {
	startTime := time.Now()

	article := &tables.Article{
		ID:               uuid.New(),
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		BasePrice:        req.BasePrice,
		Warranty:         req.Warranty,
		BrandID:          req.BrandID,
		ActionID:         req.ActionID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	err := database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(article).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}

		if err := insertAttributes(ctx, tx, article.ID, req.Attributes); err != nil {
			return err
		}

		if err := replaceArticleLinks(ctx, tx, article.ID, req.CategoryIDs, req.GroupIDs, false); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		as.logger.Error("Failed to create article",
			gecho.Field("error", err),
			gecho.Field("article_name", req.Name),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, err
	}

	as.invalidateArticleCaches(article.ID)

	as.logger.Info("Article created successfully",
		gecho.Field("id", article.ID),
		gecho.Field("duration", time.Since(startTime)),
	)

	return as.GetArticleByID(ctx, article.ID)
}

// UpdateArticle overwrites an article's fields and replaces its attributes and
// links wholesale. Returns the row count touched (0 means no such article).
func (as *ArticleService) UpdateArticle(ctx context.Context, articleID uuid.UUID, req *CreateArticleRequest) (int, error) {
	var updated int64

	err := database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*tables.Article)(nil)).
			Set("name = ?", req.Name).
			Set("description = ?", req.Description).
			Set("short_description = ?", req.ShortDescription).
			Set("base_price = ?", req.BasePrice).
			Set("warranty = ?", req.Warranty).
			Set("brand_id = ?", req.BrandID).
			Set("action_id = ?", req.ActionID).
			Set("updated_at = now()").
			Where("id = ?", articleID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update article: %w", err)
		}

		updated, _ = res.RowsAffected()
		if updated == 0 {
			return nil
		}

		// Attributes are replaced wholesale
		if _, err := tx.NewDelete().Model((*tables.Attribute)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete existing attributes: %w", err)
		}
		if err := insertAttributes(ctx, tx, articleID, req.Attributes); err != nil {
			return err
		}

		return replaceArticleLinks(ctx, tx, articleID, req.CategoryIDs, req.GroupIDs, true)
	})
	if err != nil {
		as.logger.Error("Failed to update article", gecho.Field("error", err), gecho.Field("article_id", articleID))
		return 0, err
	}

	as.invalidateArticleCaches(articleID)
	return int(updated), nil
}

// DeleteArticle removes an article and everything hanging off it: join rows,
// attributes, stored objects and image rows, in that order. Object deletes
// that fail are queued for the reconciler instead of failing the request.
func (as *ArticleService) DeleteArticle(ctx context.Context, articleID uuid.UUID) (*ArticleDeleteResult, error) {
	startTime := time.Now()

	images, err := database.Query[tables.Image](as.db).Where("article_id", articleID).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article images: %w", err)
	}

	result := &ArticleDeleteResult{ArticleID: articleID}

	// Best-effort object deletes before the rows go away; failures are queued
	// inside the transaction below so they survive either way.
	removed, queuedKeys := partitionObjectDeletes(ctx, as.storageService, as.logger, images)
	result.ImagesRemoved = removed

	err = database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		for _, key := range queuedKeys {
			deletion := &tables.StorageDeletion{
				ID:        uuid.New(),
				ObjectKey: key,
				Attempts:  1,
				CreatedAt: time.Now(),
			}
			if _, err := tx.NewInsert().Model(deletion).Exec(ctx); err != nil {
				return fmt.Errorf("failed to queue storage deletion: %w", err)
			}
		}

		if _, err := tx.NewDelete().Model((*tables.ArticleCategory)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete category links: %w", err)
		}
		if _, err := tx.NewDelete().Model((*tables.ArticleGroup)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete group links: %w", err)
		}

		res, err := tx.NewDelete().Model((*tables.Attribute)(nil)).Where("article_id = ?", articleID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete attributes: %w", err)
		}
		attrs, _ := res.RowsAffected()
		result.AttributesGone = int(attrs)

		if _, err := tx.NewDelete().Model((*tables.Image)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete image rows: %w", err)
		}

		if _, err := tx.NewDelete().Model((*tables.Article)(nil)).Where("id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete article: %w", err)
		}

		return nil
	})
	if err != nil {
		as.logger.Error("Failed to delete article", gecho.Field("error", err), gecho.Field("article_id", articleID))
		return nil, err
	}

	result.DeletesQueued = len(queuedKeys)

	as.invalidateArticleCaches(articleID)

	as.logger.Info("Article deleted",
		gecho.Field("article_id", articleID),
		gecho.Field("images_removed", result.ImagesRemoved),
		gecho.Field("deletes_queued", result.DeletesQueued),
		gecho.Field("duration", time.Since(startTime)),
	)

	return result, nil
}

func insertAttributes(ctx context.Context, tx bun.Tx, articleID uuid.UUID, attributes []tables.Attribute) error {
	if len(attributes) == 0 {
		return nil
	}

	for i := range attributes {
		if attributes[i].ID == uuid.Nil {
			attributes[i].ID = uuid.New()
		}
		attributes[i].ArticleID = articleID
	}

	if _, err := tx.NewInsert().Model(&attributes).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert attributes: %w", err)
	}
	return nil
}

// replaceArticleLinks rewrites the category and group join rows for one
// article. With replace set, existing links are removed first.
func replaceArticleLinks(ctx context.Context, tx bun.Tx, articleID uuid.UUID, categoryIDs, groupIDs []uuid.UUID, replace bool) error {
	if replace {
		if _, err := tx.NewDelete().Model((*tables.ArticleCategory)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete category links: %w", err)
		}
		if _, err := tx.NewDelete().Model((*tables.ArticleGroup)(nil)).Where("article_id = ?", articleID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete group links: %w", err)
		}
	}

	if len(categoryIDs) > 0 {
		links := make([]tables.ArticleCategory, 0, len(categoryIDs))
		for _, catID := range categoryIDs {
			links = append(links, tables.ArticleCategory{ArticleID: articleID, CategoryID: catID})
		}
		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert category links: %w", err)
		}
	}

	if len(groupIDs) > 0 {
		links := make([]tables.ArticleGroup, 0, len(groupIDs))
		for _, grpID := range groupIDs {
			links = append(links, tables.ArticleGroup{ArticleID: articleID, GroupID: grpID})
		}
		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert group links: %w", err)
		}
	}

	return nil
}

func (as *ArticleService) invalidateArticleCaches(articleID uuid.UUID) {
	go func() {
		if err := as.cacheService.InvalidateArticle(articleID); err != nil {
			as.logger.Warn("Failed to invalidate article caches",
				gecho.Field("error", err),
				gecho.Field("article_id", articleID),
			)
		}
	}()
}
