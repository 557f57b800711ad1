package db

import (
	"context"
	"errors"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Files is the Mongo-backed file catalog.
type Files struct {
	col *mongo.Collection
}

func NewFiles(database *mongo.Database) *Files {
	return &Files{col: database.Collection("files")}
}

func (f *Files) Insert(ctx context.Context, file models.File) error {
	if _, err := f.col.InsertOne(ctx, file); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to save file metadata", err)
	}
	return nil
}

func (f *Files) FindByID(ctx context.Context, id string) (models.File, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.File{}, apperr.New(apperr.NotFound, "File not found")
	}

	var file models.File
	err = f.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.File{}, apperr.New(apperr.NotFound, "File not found")
	}
	if err != nil {
		return models.File{}, apperr.Wrap(apperr.Internal, "Failed to look up file", err)
	}
	return file, nil
}

// List returns every record, newest first. Full-scan semantics; fine
// at this scale, no pagination.
func (f *Files) List(ctx context.Context) ([]models.File, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := f.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve files", err)
	}
	defer cursor.Close(ctx)

	files := []models.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to decode file metadata", err)
	}
	return files, nil
}

func (f *Files) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "File not found")
	}

	res, err := f.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete file metadata", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "File not found")
	}
	return nil
}
