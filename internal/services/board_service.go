package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fbraintech-stack/weekboard/internal/models"
)

// BoardService provides aggregate metrics over one week of the board
type BoardService struct {
	tasksCollection *mongo.Collection
}

// NewBoardService creates a new BoardService
func NewBoardService(db *mongo.Database) *BoardService {
	return &BoardService{
		tasksCollection: db.Collection("tasks"),
	}
}

// GetWeekSummary counts the user's tasks for one week, broken down by
// type and by rollover provenance. Fully-completed is computed with an
// expression match because it depends on the per-task day set.
func (s *BoardService) GetWeekSummary(ctx context.Context, userID primitive.ObjectID, weekYear string) (*models.WeekSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	summary := &models.WeekSummary{WeekYear: weekYear}
	base := bson.M{"user_id": userID, "week_year": weekYear}

	total, err := s.tasksCollection.CountDocuments(ctx, base)
	if err != nil {
		return nil, err
	}
	summary.TotalTasks = total

	byType := []struct {
		taskType models.TaskType
		dest     *int64
	}{
		{models.TypeRecurrent, &summary.Recurrent},
		{models.TypeOneOff, &summary.OneOff},
		{models.TypeScheduled, &summary.Scheduled},
	}
	for _, c := range byType {
		query := bson.M{"user_id": userID, "week_year": weekYear, "type": c.taskType}
		count, err := s.tasksCollection.CountDocuments(ctx, query)
		if err != nil {
			return nil, err
		}
		*c.dest = count
	}

	carried, err := s.tasksCollection.CountDocuments(ctx, bson.M{
		"user_id": userID, "week_year": weekYear, "carry_over": true,
	})
	if err != nil {
		return nil, err
	}
	summary.CarriedOver = carried

	// A task counts as fully completed when its day set is non-empty
	// and every assigned day appears in completed_days.
	completed, err := s.tasksCollection.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"week_year": weekYear,
		"days.0":    bson.M{"$exists": true},
		"$expr": bson.M{
			"$setIsSubset": bson.A{"$days", "$completed_days"},
		},
	})
	if err != nil {
		return nil, err
	}
	summary.FullyCompleted = completed

	return summary, nil
}
