package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

// ErrRolloverClaimed is returned by RolloverStore.ClaimRollover when
// another session already claimed the (user, week) slot. The
// orchestrator treats it as "someone else did the work", not a failure.
var ErrRolloverClaimed = errors.New("rollover already claimed for this week")

// RolloverStore is the slice of the task store the orchestrator needs.
// TaskService implements it against MongoDB; tests substitute a mock.
type RolloverStore interface {
	// HasWeekTasks reports whether the user already has at least one
	// non-scheduled task in the given week.
	HasWeekTasks(ctx context.Context, userID primitive.ObjectID, weekYear string) (bool, error)
	// TasksForWeek returns all of the user's tasks tagged with weekYear.
	TasksForWeek(ctx context.Context, userID primitive.ObjectID, weekYear string) ([]models.Task, error)
	// ClaimRollover records that this session performs the rollover for
	// (user, weekYear). Exactly one concurrent caller succeeds; the
	// rest get ErrRolloverClaimed.
	ClaimRollover(ctx context.Context, userID primitive.ObjectID, weekYear string) error
	// InsertDrafts appends the drafts as persisted task rows.
	InsertDrafts(ctx context.Context, drafts []models.TaskDraft) ([]models.Task, error)
}

// RolloverService runs the week transition at most once per user per
// week. It is invoked on every session start and is a no-op whenever
// the current week is already populated.
type RolloverService struct {
	store RolloverStore
	now   func() time.Time
}

// NewRolloverService creates a new RolloverService
func NewRolloverService(store RolloverStore) *RolloverService {
	return &RolloverService{
		store: store,
		now:   time.Now,
	}
}

// RunRolloverIfNeeded checks whether the user's current week is still
// empty and, if so, rolls the previous week's tasks forward. A nil
// summary with nil error means nothing needed doing: the week already
// has tasks, the user has no history, or a concurrent session got
// there first.
//
// The previous week's rows are never touched; they stay behind as
// history and simply stop being queried as current. A failed insert
// leaves the current week empty, so the next invocation retries the
// whole thing.
func (s *RolloverService) RunRolloverIfNeeded(ctx context.Context, userID primitive.ObjectID) (*models.RolloverSummary, error) {
	now := s.now()
	currentWeek := week.IdentifierOf(now)
	previousWeek := week.PreviousIdentifier(now)

	hasTasks, err := s.store.HasWeekTasks(ctx, userID, currentWeek)
	if err != nil {
		return nil, err
	}
	if hasTasks {
		// Already rolled over, or the user created tasks manually.
		return nil, nil
	}

	prevTasks, err := s.store.TasksForWeek(ctx, userID, previousWeek)
	if err != nil {
		return nil, err
	}
	if len(prevTasks) == 0 {
		return nil, nil
	}

	if err := s.store.ClaimRollover(ctx, userID, currentWeek); err != nil {
		if errors.Is(err, ErrRolloverClaimed) {
			return nil, nil
		}
		return nil, err
	}

	drafts, summary := ComputeRollover(prevTasks, currentWeek)
	if len(drafts) > 0 {
		if _, err := s.store.InsertDrafts(ctx, drafts); err != nil {
			return nil, err
		}
	}

	return &summary, nil
}
