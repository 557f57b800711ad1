package db

import (
	"context"
	"errors"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Users is the Mongo-backed credential store.
type Users struct {
	col *mongo.Collection
}

func NewUsers(database *mongo.Database) *Users {
	return &Users{col: database.Collection("users")}
}

func (u *Users) Create(ctx context.Context, user models.User) error {
	_, err := u.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Conflict, "User already exists with this email")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}
	return nil
}

// FindByEmail returns the user including the password hash. Login is
// its only caller; nothing else may see the hash.
func (u *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := u.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "Failed to look up user", err)
	}
	return user, nil
}

func (u *Users) FindByID(ctx context.Context, id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, apperr.New(apperr.NotFound, "User not found")
	}

	var user models.User
	err = u.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "Failed to look up user", err)
	}
	return user, nil
}
