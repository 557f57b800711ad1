package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	mediaBucket = "cloud-drop-media"
	rawBucket   = "cloud-drop-raw"
)

// MinioStore implements ObjectStore against MinIO (or any
// S3-compatible endpoint).
type MinioStore struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, bucket := range []string{mediaBucket, rawBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			log.Printf("Created bucket: %s", bucket)
		}
	}

	return &MinioStore{client: client, endpoint: cfg.Endpoint, useSSL: cfg.UseSSL}, nil
}

func (m *MinioStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*UploadResult, error) {
	resourceType := ClassifyContentType(contentType)
	bucket := bucketFor(resourceType)

	_, err := m.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		URL:          m.objectURL(bucket, key),
		PublicID:     key,
		ResourceType: resourceType,
	}, nil
}

// Destroy removes publicID from the bucket matching resourceType.
// RemoveObject is a silent no-op on missing keys, so the object is
// stat'ed first to surface ErrObjectNotFound for the caller's
// compensating retry.
func (m *MinioStore) Destroy(ctx context.Context, publicID, resourceType string) error {
	bucket := bucketFor(resourceType)

	_, err := m.client.StatObject(ctx, bucket, publicID, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrObjectNotFound
		}
		return fmt.Errorf("failed to stat object: %w", err)
	}

	if err := m.client.RemoveObject(ctx, bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

func (m *MinioStore) objectURL(bucket, key string) string {
	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, bucket, key)
}

func bucketFor(resourceType string) string {
	if resourceType == ResourceMedia {
		return mediaBucket
	}
	return rawBucket
}
