package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a user-owned label with a display color. Tasks point at
// it by id only; deleting a category leaves those references dangling
// and readers resolve them as uncategorized.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name" validate:"required,max=30"`
	Color     string             `bson:"color" json:"color" validate:"required,hexcolor"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CreateCategoryRequest is for creating a new category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=30"`
	Color string `json:"color" validate:"required,hexcolor"`
}
