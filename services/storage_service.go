package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"tehnika_server/config"
	"tehnika_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	storageClient *minio.Client
	storageOnce   sync.Once
)

// StorageService talks to the S3-compatible object store. Upload bytes never
// pass through this server: clients receive a presigned POST policy and talk
// to the store directly. Access URLs are signed per request from the object
// key and never persisted.
type StorageService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *minio.Client
}

func NewStorageService(logger *gecho.Logger, cfg *structs.Config) *StorageService {
	return &StorageService{
		logger: logger,
		cfg:    cfg,
		client: getStorageClient(),
	}
}

func getStorageClient() *minio.Client {
	storageOnce.Do(func() {
		cfg := config.GetConfig()
		logger := config.GetLogger()

		client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
			Region: cfg.Storage.Region,
		})
		if err != nil {
			logger.Fatal("Failed to initialize object storage client", gecho.Field("error", err))
		}
		storageClient = client
	})
	return storageClient
}

// PresignedUpload describes a direct client-to-storage upload: the client
// POSTs the form fields plus the file bytes to the upload URL.
type PresignedUpload struct {
	UploadURL  string            `json:"upload_url"`
	FormFields map[string]string `json:"form_fields"`
}

// PresignUpload issues a presigned POST policy for the given object key
func (ss *StorageService) PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	st := ss.cfg.Storage

	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(st.Bucket); err != nil {
		return nil, fmt.Errorf("failed to build upload policy: %w", err)
	}
	if err := policy.SetKey(key); err != nil {
		return nil, fmt.Errorf("failed to build upload policy: %w", err)
	}
	if err := policy.SetExpires(time.Now().UTC().Add(st.UploadExpiry)); err != nil {
		return nil, fmt.Errorf("failed to build upload policy: %w", err)
	}
	if err := policy.SetContentType(contentType); err != nil {
		return nil, fmt.Errorf("failed to build upload policy: %w", err)
	}
	if err := policy.SetContentLengthRange(1, st.MaxObjectMB*1024*1024); err != nil {
		return nil, fmt.Errorf("failed to build upload policy: %w", err)
	}

	uploadURL, formData, err := ss.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		ss.logger.Error("Failed to presign upload", gecho.Field("error", err), gecho.Field("key", key))
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL:  uploadURL.String(),
		FormFields: formData,
	}, nil
}

// SignAccessURL returns a time-limited GET URL for an object key
func (ss *StorageService) SignAccessURL(ctx context.Context, key string) (string, error) {
	signed, err := ss.client.PresignedGetObject(ctx, ss.cfg.Storage.Bucket, key, ss.cfg.Storage.AccessExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to sign access URL: %w", err)
	}
	return signed.String(), nil
}

// DeleteObject removes an object from the store
func (ss *StorageService) DeleteObject(ctx context.Context, key string) error {
	if err := ss.client.RemoveObject(ctx, ss.cfg.Storage.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
