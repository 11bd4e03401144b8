package services

import (
	"context"
	"errors"
	"fmt"
	"tehnika_server/database"
	"tehnika_server/lib"
	"tehnika_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// MaxImagesPerOwner caps how many images (pending plus committed) one article
// or action may carry. Enforced here, at presign time, not in the client.
const MaxImagesPerOwner = 8

var (
	ErrImageLimitReached = errors.New("image limit reached for this owner")
	ErrImageOwner        = errors.New("image must belong to exactly one of article or action")
)

// ImageService implements the two-phase upload flow: presign creates a
// pending row alongside the upload policy, confirm flips it to committed once
// the client reports the upload done. Pending rows that are never confirmed
// are reaped by the reconciler.
type ImageService struct {
	logger         *gecho.Logger
	db             *database.DB
	storageService *StorageService
}

func NewImageService(logger *gecho.Logger, db *database.DB, storageService *StorageService) *ImageService {
	return &ImageService{
		logger:         logger,
		db:             db,
		storageService: storageService,
	}
}

// PresignUploadRequest asks for an upload slot on one owner. Exactly one of
// ArticleID and ActionID must be set.
type PresignUploadRequest struct {
	ArticleID   *uuid.UUID `json:"article_id,omitempty"`
	ActionID    *uuid.UUID `json:"action_id,omitempty"`
	Filename    string     `json:"filename" validate:"required"`
	ContentType string     `json:"content_type" validate:"required"`
}

// PresignUploadResult pairs the upload policy with the pending image row the
// client must confirm after uploading.
type PresignUploadResult struct {
	Image  *tables.Image    `json:"image"`
	Upload *PresignedUpload `json:"upload"`
}

// PresignUpload checks the owner's image budget, reserves a pending row and
// returns the presigned POST policy for the client to upload against.
func (is *ImageService) PresignUpload(ctx context.Context, req *PresignUploadRequest) (*PresignUploadResult, error) {
	ownerCol, ownerID, prefix, err := resolveImageOwner(req.ArticleID, req.ActionID)
	if err != nil {
		return nil, err
	}

	// Pending rows count against the cap too, otherwise parallel presigns
	// could overshoot it before any upload is confirmed.
	count, err := database.Query[tables.Image](is.db).Where(ownerCol, ownerID).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count owner images: %w", err)
	}
	if count >= MaxImagesPerOwner {
		return nil, ErrImageLimitReached
	}

	key := lib.GenerateObjectKey(prefix, ownerID, req.Filename)

	upload, err := is.storageService.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}

	image := &tables.Image{
		ID:        uuid.New(),
		ObjectKey: key,
		ArticleID: req.ArticleID,
		ActionID:  req.ActionID,
		Status:    tables.ImagePending,
		CreatedAt: time.Now(),
	}

	if _, err := database.Query[tables.Image](is.db).Insert(ctx, image); err != nil {
		is.logger.Error("Failed to insert pending image row", gecho.Field("error", err), gecho.Field("object_key", key))
		return nil, fmt.Errorf("failed to reserve image slot: %w", err)
	}

	is.logger.Debug("Upload presigned",
		gecho.Field("image_id", image.ID),
		gecho.Field("object_key", key),
	)

	return &PresignUploadResult{Image: image, Upload: upload}, nil
}

// ConfirmUpload flips a pending image to committed. Returns nil, nil when no
// pending row matches, which covers both unknown IDs and double confirms of
// rows the reconciler already reaped.
func (is *ImageService) ConfirmUpload(ctx context.Context, imageID uuid.UUID) (*tables.Image, error) {
	updated, err := database.Query[tables.Image](is.db).
		Where("id", imageID).
		Where("status", tables.ImagePending).
		Update(ctx, map[string]any{"status": tables.ImageCommitted})
	if err != nil {
		is.logger.Error("Failed to confirm upload", gecho.Field("error", err), gecho.Field("image_id", imageID))
		return nil, fmt.Errorf("failed to confirm upload: %w", err)
	}
	if updated == 0 {
		return nil, nil
	}

	image, err := database.FindByID[tables.Image](is.db, ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch confirmed image: %w", err)
	}

	if image != nil {
		signImageURLs(ctx, is.logger, is.storageService, []tables.Image{*image})
		if len(image.URL) == 0 {
			// keep going; the URL can be re-requested via the list endpoint
			is.logger.Warn("Confirmed image has no signed URL", gecho.Field("image_id", imageID))
		}
	}

	return image, nil
}

// GetOwnerImages lists the committed images of one owner with signed URLs
func (is *ImageService) GetOwnerImages(ctx context.Context, articleID, actionID *uuid.UUID) ([]tables.Image, error) {
	ownerCol, ownerID, _, err := resolveImageOwner(articleID, actionID)
	if err != nil {
		return nil, err
	}

	images, err := database.Query[tables.Image](is.db).
		Where(ownerCol, ownerID).
		Where("status", tables.ImageCommitted).
		OrderBy("created_at", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owner images: %w", err)
	}

	signImageURLs(ctx, is.logger, is.storageService, images)
	return images, nil
}

// DeleteImage removes one image: object first, row after. A failed object
// delete is queued for the reconciler and the row still goes away.
func (is *ImageService) DeleteImage(ctx context.Context, imageID uuid.UUID) (bool, error) {
	image, err := database.FindByID[tables.Image](is.db, ctx, imageID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch image: %w", err)
	}
	if image == nil {
		return false, nil
	}

	removeObjectOrQueue(ctx, is.db, is.storageService, is.logger, image.ObjectKey)

	if _, err := database.DeleteByID[tables.Image](is.db, ctx, imageID); err != nil {
		return false, fmt.Errorf("failed to delete image row: %w", err)
	}

	return true, nil
}

// resolveImageOwner validates the exactly-one-owner rule and returns the
// filter column, owner ID and object key prefix for that owner kind.
func resolveImageOwner(articleID, actionID *uuid.UUID) (string, uuid.UUID, string, error) {
	switch {
	case articleID != nil && actionID == nil:
		return "article_id", *articleID, "articles", nil
	case actionID != nil && articleID == nil:
		return "action_id", *actionID, "actions", nil
	default:
		return "", uuid.Nil, "", ErrImageOwner
	}
}

// signImageURLs fills the transient URL field on each image from its object
// key. Signing failures log and leave the URL empty rather than failing the
// whole response.
func signImageURLs(ctx context.Context, logger *gecho.Logger, storage *StorageService, images []tables.Image) {
	for i := range images {
		url, err := storage.SignAccessURL(ctx, images[i].ObjectKey)
		if err != nil {
			logger.Warn("Failed to sign image URL",
				gecho.Field("object_key", images[i].ObjectKey),
				gecho.Field("error", err),
			)
			continue
		}
		images[i].URL = url
	}
}

// removeObjectOrQueue tries a storage delete and, on failure, queues the key
// so the reconciler retries it. Reports whether the key was queued.
func removeObjectOrQueue(ctx context.Context, db *database.DB, storage *StorageService, logger *gecho.Logger, key string) bool {
	err := storage.DeleteObject(ctx, key)
	if err == nil {
		return false
	}

	logger.Warn("Object delete failed, queueing for reconciler",
		gecho.Field("object_key", key),
		gecho.Field("error", err),
	)

	deletion := &tables.StorageDeletion{
		ID:        uuid.New(),
		ObjectKey: key,
		Attempts:  1,
		LastError: err.Error(),
		CreatedAt: time.Now(),
	}
	if _, insErr := database.Query[tables.StorageDeletion](db).Insert(ctx, deletion); insErr != nil {
		logger.Error("Failed to queue storage deletion",
			gecho.Field("object_key", key),
			gecho.Field("error", insErr),
		)
	}
	return true
}
