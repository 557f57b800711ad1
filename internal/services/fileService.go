package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"github.com/clouddrop/server/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog is the persisted file-metadata store.
type Catalog interface {
	Insert(ctx context.Context, file models.File) error
	FindByID(ctx context.Context, id string) (models.File, error)
	List(ctx context.Context) ([]models.File, error)
	Delete(ctx context.Context, id string) error
}

// UploadInput carries one file payload from the transport layer.
type UploadInput struct {
	Name     string
	MimeType string
	Size     int64
	Data     io.Reader
}

// FileService is the upload/delete pipeline in front of the object
// store and the catalog. No per-user scoping: every authenticated user
// sees the same flat namespace.
type FileService struct {
	objects storage.ObjectStore
	catalog Catalog
	maxSize int64
}

func NewFileService(objects storage.ObjectStore, catalog Catalog, maxSize int64) *FileService {
	return &FileService{objects: objects, catalog: catalog, maxSize: maxSize}
}

// Upload buffers the payload, writes it to the object store and only
// then records the metadata, so a store failure never leaves an
// orphaned catalog entry.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (models.File, error) {
	if in.Data == nil || in.Name == "" {
		return models.File{}, apperr.New(apperr.BadRequest, "No file uploaded")
	}
	if in.Size > s.maxSize {
		return models.File{}, apperr.New(apperr.BadRequest, "File exceeds the maximum upload size")
	}

	// The cap is re-checked on the buffered bytes; the declared
	// multipart size is client-controlled.
	data, err := io.ReadAll(io.LimitReader(in.Data, s.maxSize+1))
	if err != nil {
		return models.File{}, apperr.Wrap(apperr.Internal, "Failed to read file", err)
	}
	if int64(len(data)) > s.maxSize {
		return models.File{}, apperr.New(apperr.BadRequest, "File exceeds the maximum upload size")
	}

	key := deriveStorageKey(in.Name)

	// The store classifies by sniffed content, not by the
	// client-supplied header.
	detected := mimetype.Detect(data).String()

	res, err := s.objects.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), detected)
	if err != nil {
		return models.File{}, apperr.Wrap(apperr.UploadFailed, "Failed to upload file to storage", err)
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = detected
	}

	file := models.File{
		ID:           primitive.NewObjectID(),
		OriginalName: in.Name,
		FileName:     key,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		URL:          res.URL,
		PublicID:     res.PublicID,
		ResourceType: res.ResourceType,
		CreatedAt:    time.Now(),
	}

	if err := s.catalog.Insert(ctx, file); err != nil {
		// Best-effort cleanup of the now-orphaned object.
		go func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if derr := s.objects.Destroy(cleanupCtx, res.PublicID, res.ResourceType); derr != nil {
				log.Printf("orphaned object %s not cleaned up: %v", res.PublicID, derr)
			}
		}()
		return models.File{}, err
	}

	return file, nil
}

// Delete destroys the remote object, then removes the catalog record.
// The record survives any destroy failure: metadata is never dropped
// for an object that may still be billed and stored.
func (s *FileService) Delete(ctx context.Context, id string) error {
	file, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return err
	}

	resourceType := file.ResourceType
	if resourceType == "" {
		// Records written before the type was stored.
		resourceType = storage.ResourceRaw
	}

	err = s.objects.Destroy(ctx, file.PublicID, resourceType)
	if errors.Is(err, storage.ErrObjectNotFound) {
		// Compensating retry under the alternate class; missing under
		// both means the object is already gone.
		err = s.objects.Destroy(ctx, file.PublicID, storage.AlternateResourceType(resourceType))
		if errors.Is(err, storage.ErrObjectNotFound) {
			err = nil
		}
	}
	if err != nil {
		return apperr.Wrap(apperr.DeleteFailed, "Failed to delete file from storage", err)
	}

	return s.catalog.Delete(ctx, id)
}

// List returns every record, newest first.
func (s *FileService) List(ctx context.Context) ([]models.File, error) {
	return s.catalog.List(ctx)
}

func (s *FileService) GetByID(ctx context.Context, id string) (models.File, error) {
	return s.catalog.FindByID(ctx, id)
}

// deriveStorageKey strips the last extension segment; a name without
// one (or a leading-dot name) is used as-is.
func deriveStorageKey(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
