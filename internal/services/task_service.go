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
	"github.com/fbraintech-stack/weekboard/internal/week"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrValidation marks input errors that must be rejected before
	// anything is written; handlers map it to a 400.
	ErrValidation = errors.New("validation failed")
)

const scheduledDateLayout = "2006-01-02"

// TaskService provides methods for task-related operations. It also
// implements RolloverStore, backing the weekly rollover with the same
// tasks collection plus a rollovers claim collection.
type TaskService struct {
	tasksCollection      *mongo.Collection
	categoriesCollection *mongo.Collection
	rolloversCollection  *mongo.Collection
}

// NewTaskService creates a new TaskService
func NewTaskService(db *mongo.Database) *TaskService {
	return &TaskService{
		tasksCollection:      db.Collection("tasks"),
		categoriesCollection: db.Collection("categories"),
		rolloversCollection:  db.Collection("rollovers"),
	}
}

// CreateTask validates and creates a new task for the given week.
// Scheduled tasks derive their single day from the pinned date;
// recurrent and one-off tasks must carry at least one day and no date.
func (s *TaskService) CreateTask(ctx context.Context, userID primitive.ObjectID, req *models.CreateTaskRequest, weekYear string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	task := &models.Task{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Title:         req.Title,
		Type:          models.TaskType(req.Type),
		Days:          req.Days,
		CompletedDays: []week.DayOfWeek{},
		WeekYear:      weekYear,
		CarryOver:     false,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	switch task.Type {
	case models.TypeScheduled:
		if req.ScheduledDate == nil || *req.ScheduledDate == "" {
			return nil, fmt.Errorf("%w: scheduled tasks require a scheduled_date", ErrValidation)
		}
		date, err := time.Parse(scheduledDateLayout, *req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled_date must be formatted as %s", ErrValidation, scheduledDateLayout)
		}
		task.ScheduledDate = &date
		// The day set of a scheduled task is always the weekday of its date.
		task.Days = []week.DayOfWeek{week.DayOf(date)}
	case models.TypeRecurrent, models.TypeOneOff:
		if len(req.Days) == 0 {
			return nil, fmt.Errorf("%w: select at least one day", ErrValidation)
		}
		if req.ScheduledDate != nil && *req.ScheduledDate != "" {
			return nil, fmt.Errorf("%w: only scheduled tasks may carry a scheduled_date", ErrValidation)
		}
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := s.resolveCategory(ctx, userID, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		task.CategoryID = categoryID
	}

	if _, err := s.tasksCollection.InsertOne(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// resolveCategory checks that the referenced category exists and is
// owned by the user before a task is allowed to point at it.
func (s *TaskService) resolveCategory(ctx context.Context, userID primitive.ObjectID, idHex string) (*primitive.ObjectID, error) {
	categoryID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category ID format", ErrValidation)
	}
	err = s.categoriesCollection.FindOne(ctx, bson.M{"_id": categoryID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: category does not exist", ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	return &categoryID, nil
}

// GetTaskByID retrieves a task by its ID, scoped to its owner
func (s *TaskService) GetTaskByID(ctx context.Context, id string, userID primitive.ObjectID) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid task ID format", ErrValidation)
	}
	return s.getOwnedTask(ctx, objID, userID)
}

// getOwnedTask filters by owner in the query itself, so another
// user's task is indistinguishable from a missing one.
func (s *TaskService) getOwnedTask(ctx context.Context, id, userID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.tasksCollection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListWeekBoard returns everything the board renders for one week: the
// week's own (non-scheduled) tasks plus every scheduled task, in one
// query, ordered by creation time. Scheduled tasks are matched by date
// on the client side, so they are always included regardless of their
// stored week tag.
func (s *TaskService) ListWeekBoard(ctx context.Context, userID primitive.ObjectID, weekYear string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{
		"user_id": userID,
		"$or": []bson.M{
			{"week_year": weekYear, "type": bson.M{"$ne": models.TypeScheduled}},
			{"type": models.TypeScheduled},
		},
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.tasksCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask applies a partial update to an existing task. The
// current row is loaded first so the type/date/day coherence rules can
// run against the state the update would leave behind, not just the
// fields it touches.
func (s *TaskService) UpdateTask(ctx context.Context, id string, userID primitive.ObjectID, update *models.UpdateTaskRequest) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid task ID format", ErrValidation)
	}

	task, err := s.getOwnedTask(ctx, objID, userID)
	if err != nil {
		return nil, err
	}

	setDoc, err := buildTaskUpdate(task, update)
	if err != nil {
		return nil, err
	}

	if update.CategoryID != nil {
		if *update.CategoryID == "" {
			setDoc["category_id"] = nil
		} else {
			categoryID, err := s.resolveCategory(ctx, userID, *update.CategoryID)
			if err != nil {
				return nil, err
			}
			setDoc["category_id"] = categoryID
		}
	}

	if _, err := s.tasksCollection.UpdateByID(ctx, task.ID, bson.M{"$set": setDoc}); err != nil {
		return nil, err
	}
	return s.getOwnedTask(ctx, objID, userID)
}

// buildTaskUpdate computes the $set document for applying update to
// task, holding the resulting row to the same invariants CreateTask
// enforces: non-empty title, scheduled tasks pinned to a date with the
// day set derived from it, weekly tasks with at least one day and no
// date.
func buildTaskUpdate(task *models.Task, update *models.UpdateTaskRequest) (bson.M, error) {
	setDoc := bson.M{"updated_at": time.Now()}

	if update.Title != nil {
		// omitempty on the pointer tag skips the length rules for "",
		// so the non-empty rule lives here.
		if *update.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		setDoc["title"] = *update.Title
	}
	if update.StartTime != nil {
		setDoc["start_time"] = *update.StartTime
	}
	if update.EndTime != nil {
		setDoc["end_time"] = *update.EndTime
	}

	newType := task.Type
	if update.Type != nil {
		newType = models.TaskType(*update.Type)
		setDoc["type"] = newType
	}

	days := task.Days
	if update.Days != nil {
		if len(*update.Days) == 0 {
			return nil, fmt.Errorf("%w: select at least one day", ErrValidation)
		}
		days = *update.Days
		setDoc["days"] = days
		// Changing the day set may strand completion marks outside it.
		setDoc["completed_days"] = []week.DayOfWeek{}
	}

	scheduledDate := task.ScheduledDate
	if update.ScheduledDate != nil {
		if *update.ScheduledDate == "" {
			scheduledDate = nil
		} else {
			date, err := time.Parse(scheduledDateLayout, *update.ScheduledDate)
			if err != nil {
				return nil, fmt.Errorf("%w: scheduled_date must be formatted as %s", ErrValidation, scheduledDateLayout)
			}
			scheduledDate = &date
		}
	}

	switch newType {
	case models.TypeScheduled:
		if scheduledDate == nil {
			return nil, fmt.Errorf("%w: scheduled tasks require a scheduled_date", ErrValidation)
		}
		if update.Type != nil || update.ScheduledDate != nil || update.Days != nil {
			setDoc["scheduled_date"] = *scheduledDate
			// The day set of a scheduled task is always the weekday of its date.
			setDoc["days"] = []week.DayOfWeek{week.DayOf(*scheduledDate)}
			setDoc["completed_days"] = []week.DayOfWeek{}
		}
	case models.TypeRecurrent, models.TypeOneOff:
		if update.ScheduledDate != nil && *update.ScheduledDate != "" {
			return nil, fmt.Errorf("%w: only scheduled tasks may carry a scheduled_date", ErrValidation)
		}
		if len(days) == 0 {
			return nil, fmt.Errorf("%w: select at least one day", ErrValidation)
		}
		if task.ScheduledDate != nil {
			// A former pin has no meaning once the task joins the weekly cycle.
			setDoc["scheduled_date"] = nil
		}
	}

	return setDoc, nil
}

// ToggleCompletion marks a single day of the task done or not done.
// The day must belong to the task's assigned day set, which keeps
// completed_days a subset of days.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string, userID primitive.ObjectID, req *models.ToggleCompletionRequest) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	task, err := s.GetTaskByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !task.HasDay(req.Day) {
		return nil, fmt.Errorf("%w: day %d is not scheduled for this task", ErrValidation, req.Day)
	}

	var updateDoc bson.M
	if req.Completed {
		updateDoc = bson.M{
			"$addToSet": bson.M{"completed_days": req.Day},
			"$set":      bson.M{"updated_at": time.Now()},
		}
	} else {
		updateDoc = bson.M{
			"$pull": bson.M{"completed_days": req.Day},
			"$set":  bson.M{"updated_at": time.Now()},
		}
	}

	if _, err := s.tasksCollection.UpdateByID(ctx, task.ID, updateDoc); err != nil {
		return nil, err
	}
	return s.GetTaskByID(ctx, id, userID)
}

// ReassignDay moves a one-off task from one day column to another
// (the drag-and-drop path). Recurrent and scheduled tasks keep their
// day sets fixed; editing is the way to change those.
func (s *TaskService) ReassignDay(ctx context.Context, id string, userID primitive.ObjectID, req *models.ReassignDayRequest) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	task, err := s.GetTaskByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task.Type != models.TypeOneOff {
		return nil, fmt.Errorf("%w: only one-off tasks can be moved between days", ErrValidation)
	}
	if !task.HasDay(req.From) {
		return nil, fmt.Errorf("%w: task is not scheduled on day %d", ErrValidation, req.From)
	}
	if req.From == req.To {
		return task, nil
	}

	days := make([]week.DayOfWeek, 0, len(task.Days))
	for _, d := range task.Days {
		if d == req.From {
			continue
		}
		days = append(days, d)
	}
	if !task.HasDay(req.To) {
		days = append(days, req.To)
	}

	updateDoc := bson.M{
		"$set":  bson.M{"days": days, "updated_at": time.Now()},
		"$pull": bson.M{"completed_days": req.From},
	}
	if _, err := s.tasksCollection.UpdateByID(ctx, task.ID, updateDoc); err != nil {
		return nil, err
	}
	return s.GetTaskByID(ctx, id, userID)
}

// DeleteTask deletes a task by its ID
func (s *TaskService) DeleteTask(ctx context.Context, id string, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid task ID format", ErrValidation)
	}

	res, err := s.tasksCollection.DeleteOne(ctx, bson.M{"_id": objID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// HasWeekTasks implements RolloverStore
func (s *TaskService) HasWeekTasks(ctx context.Context, userID primitive.ObjectID, weekYear string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{
		"user_id":   userID,
		"week_year": weekYear,
		"type":      bson.M{"$ne": models.TypeScheduled},
	}
	err := s.tasksCollection.FindOne(ctx, query).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TasksForWeek implements RolloverStore
func (s *TaskService) TasksForWeek(ctx context.Context, userID primitive.ObjectID, weekYear string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.tasksCollection.Find(ctx, bson.M{"user_id": userID, "week_year": weekYear})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ClaimRollover implements RolloverStore. The unique index on
// (user_id, week_year) makes the insert the single-flight gate: under
// concurrent sessions exactly one insert succeeds and the rest see a
// duplicate key error.
func (s *TaskService) ClaimRollover(ctx context.Context, userID primitive.ObjectID, weekYear string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.rolloversCollection.InsertOne(ctx, bson.M{
		"user_id":    userID,
		"week_year":  weekYear,
		"created_at": time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrRolloverClaimed
	}
	return err
}

// InsertDrafts implements RolloverStore
func (s *TaskService) InsertDrafts(ctx context.Context, drafts []models.TaskDraft) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	tasks := make([]models.Task, 0, len(drafts))
	docs := make([]interface{}, 0, len(drafts))
	for _, d := range drafts {
		task := models.Task{
			ID:            primitive.NewObjectID(),
			UserID:        d.UserID,
			CategoryID:    d.CategoryID,
			Title:         d.Title,
			Type:          d.Type,
			Days:          d.Days,
			CompletedDays: d.CompletedDays,
			WeekYear:      d.WeekYear,
			CarryOver:     d.CarryOver,
			ScheduledDate: d.ScheduledDate,
			StartTime:     d.StartTime,
			EndTime:       d.EndTime,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		tasks = append(tasks, task)
		docs = append(docs, task)
	}

	if _, err := s.tasksCollection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return tasks, nil
}
