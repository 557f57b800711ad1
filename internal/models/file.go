package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File describes one uploaded object. The URL is the only thing a
// client needs to fetch the bytes; downloads go straight to the
// object store and are never proxied through this service.
type File struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalName string             `bson:"original_name" json:"originalName"`
	FileName     string             `bson:"file_name" json:"fileName"`
	MimeType     string             `bson:"mime_type" json:"mimeType"`
	Size         int64              `bson:"size" json:"size"`
	URL          string             `bson:"url" json:"url"`
	PublicID     string             `bson:"public_id" json:"publicId"`
	ResourceType string             `bson:"resource_type" json:"resourceType"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
