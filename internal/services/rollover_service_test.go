package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

type mockRolloverStore struct {
	mock.Mock
}

func (m *mockRolloverStore) HasWeekTasks(ctx context.Context, userID primitive.ObjectID, weekYear string) (bool, error) {
	args := m.Called(ctx, userID, weekYear)
	return args.Bool(0), args.Error(1)
}

func (m *mockRolloverStore) TasksForWeek(ctx context.Context, userID primitive.ObjectID, weekYear string) ([]models.Task, error) {
	args := m.Called(ctx, userID, weekYear)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRolloverStore) ClaimRollover(ctx context.Context, userID primitive.ObjectID, weekYear string) error {
	args := m.Called(ctx, userID, weekYear)
	return args.Error(0)
}

func (m *mockRolloverStore) InsertDrafts(ctx context.Context, drafts []models.TaskDraft) ([]models.Task, error) {
	args := m.Called(ctx, drafts)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

// Wednesday 2026-03-04: current week 2026-W10, previous 2026-W09.
var testNow = time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)

func newTestRolloverService(store RolloverStore) *RolloverService {
	s := NewRolloverService(store)
	s.now = func() time.Time { return testNow }
	return s
}

func TestRunRolloverIfNeeded(t *testing.T) {
	userID := primitive.NewObjectID()

	prevTasks := []models.Task{
		{UserID: userID, Title: "gym", Type: models.TypeRecurrent,
			Days: []week.DayOfWeek{week.Monday, week.Thursday}, WeekYear: "2026-W09"},
		{UserID: userID, Title: "file taxes", Type: models.TypeOneOff,
			Days: []week.DayOfWeek{week.Tuesday}, WeekYear: "2026-W09"},
	}

	store := new(mockRolloverStore)
	store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, nil)
	store.On("TasksForWeek", mock.Anything, userID, "2026-W09").Return(prevTasks, nil)
	store.On("ClaimRollover", mock.Anything, userID, "2026-W10").Return(nil)
	store.On("InsertDrafts", mock.Anything, mock.MatchedBy(func(drafts []models.TaskDraft) bool {
		return len(drafts) == 2
	})).Return([]models.Task{}, nil)

	summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, &models.RolloverSummary{RecurrentReset: 1, CarryOver: 1}, summary)
	store.AssertExpectations(t)
}

func TestRunRolloverIfNeededWeekAlreadyPopulated(t *testing.T) {
	userID := primitive.NewObjectID()

	store := new(mockRolloverStore)
	store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(true, nil)

	svc := newTestRolloverService(store)

	// Redundant invocations stay no-ops with zero writes.
	for i := 0; i < 2; i++ {
		summary, err := svc.RunRolloverIfNeeded(context.Background(), userID)
		require.NoError(t, err)
		assert.Nil(t, summary)
	}
	store.AssertNotCalled(t, "TasksForWeek", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "ClaimRollover", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertDrafts", mock.Anything, mock.Anything)
}

func TestRunRolloverIfNeededFreshUser(t *testing.T) {
	userID := primitive.NewObjectID()

	store := new(mockRolloverStore)
	store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, nil)
	store.On("TasksForWeek", mock.Anything, userID, "2026-W09").Return([]models.Task{}, nil)

	summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)

	require.NoError(t, err)
	assert.Nil(t, summary)
	store.AssertNotCalled(t, "ClaimRollover", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertDrafts", mock.Anything, mock.Anything)
}

func TestRunRolloverIfNeededLosesClaimRace(t *testing.T) {
	userID := primitive.NewObjectID()

	prevTasks := []models.Task{
		{UserID: userID, Title: "gym", Type: models.TypeRecurrent,
			Days: []week.DayOfWeek{week.Monday}, WeekYear: "2026-W09"},
	}

	store := new(mockRolloverStore)
	store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, nil)
	store.On("TasksForWeek", mock.Anything, userID, "2026-W09").Return(prevTasks, nil)
	store.On("ClaimRollover", mock.Anything, userID, "2026-W10").Return(ErrRolloverClaimed)

	summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)

	// Losing the race is benign: another session did the work.
	require.NoError(t, err)
	assert.Nil(t, summary)
	store.AssertNotCalled(t, "InsertDrafts", mock.Anything, mock.Anything)
}

func TestRunRolloverIfNeededOnlyRemovals(t *testing.T) {
	userID := primitive.NewObjectID()

	// Every one-off is done: nothing to insert, but the summary still reports it.
	prevTasks := []models.Task{
		{UserID: userID, Title: "done", Type: models.TypeOneOff,
			Days:          []week.DayOfWeek{week.Monday},
			CompletedDays: []week.DayOfWeek{week.Monday},
			WeekYear:      "2026-W09"},
	}

	store := new(mockRolloverStore)
	store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, nil)
	store.On("TasksForWeek", mock.Anything, userID, "2026-W09").Return(prevTasks, nil)
	store.On("ClaimRollover", mock.Anything, userID, "2026-W10").Return(nil)

	summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, &models.RolloverSummary{Removed: 1}, summary)
	store.AssertNotCalled(t, "InsertDrafts", mock.Anything, mock.Anything)
}

func TestRunRolloverIfNeededStoreErrors(t *testing.T) {
	userID := primitive.NewObjectID()
	storeErr := errors.New("connection reset")

	t.Run("read failure propagates", func(t *testing.T) {
		store := new(mockRolloverStore)
		store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, storeErr)

		summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, summary)
	})

	t.Run("write failure propagates", func(t *testing.T) {
		prevTasks := []models.Task{
			{UserID: userID, Title: "gym", Type: models.TypeRecurrent,
				Days: []week.DayOfWeek{week.Monday}, WeekYear: "2026-W09"},
		}
		store := new(mockRolloverStore)
		store.On("HasWeekTasks", mock.Anything, userID, "2026-W10").Return(false, nil)
		store.On("TasksForWeek", mock.Anything, userID, "2026-W09").Return(prevTasks, nil)
		store.On("ClaimRollover", mock.Anything, userID, "2026-W10").Return(nil)
		store.On("InsertDrafts", mock.Anything, mock.Anything).Return(nil, storeErr)

		summary, err := newTestRolloverService(store).RunRolloverIfNeeded(context.Background(), userID)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, summary)
	})
}
