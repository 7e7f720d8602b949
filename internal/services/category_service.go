package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fbraintech-stack/weekboard/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService provides methods for category-related operations
type CategoryService struct {
	categoriesCollection *mongo.Collection
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(db *mongo.Database) *CategoryService {
	return &CategoryService{
		categoriesCollection: db.Collection("categories"),
	}
}

// CreateCategory creates a new category owned by the user
func (s *CategoryService) CreateCategory(ctx context.Context, userID primitive.ObjectID, req *models.CreateCategoryRequest) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	category := &models.Category{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	if _, err := s.categoriesCollection.InsertOne(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all of the user's categories ordered by creation time
func (s *CategoryService) ListCategories(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.categoriesCollection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes a category. Tasks referencing it keep their
// now-dangling reference; readers render them as uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid category ID format", ErrValidation)
	}

	res, err := s.categoriesCollection.DeleteOne(ctx, bson.M{"_id": objID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
