package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeleteCategoryRejectsMalformedID(t *testing.T) {
	s := &CategoryService{}
	err := s.DeleteCategory(context.Background(), "not-an-object-id", primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrValidation)
}
