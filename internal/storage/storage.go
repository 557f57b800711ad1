// Package storage abstracts the remote object store holding file
// bytes. The MinIO implementation works with any S3-compatible
// provider.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Resource classes. The store keeps media (image/video/audio) and
// everything else in separate buckets, so a destroy must name the
// class the object was filed under.
const (
	ResourceMedia = "media"
	ResourceRaw   = "raw"
)

// ErrObjectNotFound reports that no object exists under the given
// public id and resource type. Callers use it to drive the
// compensating destroy retry under the alternate class.
var ErrObjectNotFound = errors.New("object not found")

// UploadResult is the store's confirmation of a successful write.
type UploadResult struct {
	// URL is the direct retrieval URL clients download from.
	URL string
	// PublicID is the store's internal object identifier, needed to
	// destroy the object later.
	PublicID string
	// ResourceType is the class the object was filed under.
	ResourceType string
}

type ObjectStore interface {
	// Upload writes size bytes from r under key, classified by
	// contentType, and returns the store's confirmation.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*UploadResult, error)
	// Destroy removes the object identified by publicID within the
	// given resource type. Returns ErrObjectNotFound when nothing is
	// stored there.
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// AlternateResourceType returns the other classification, for the
// single compensating destroy retry.
func AlternateResourceType(resourceType string) string {
	if resourceType == ResourceMedia {
		return ResourceRaw
	}
	return ResourceMedia
}

// ClassifyContentType buckets a MIME type the way the store files
// uploads: image, video and audio are media, the rest is raw.
func ClassifyContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"),
		strings.HasPrefix(contentType, "video/"),
		strings.HasPrefix(contentType, "audio/"):
		return ResourceMedia
	default:
		return ResourceRaw
	}
}
