package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/fbraintech-stack/weekboard/internal/middleware"
	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/services"
	"github.com/fbraintech-stack/weekboard/internal/utils"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

// TaskHandler handles task related HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(ts *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: ts,
		validator:   validator.New(),
	}
}

// respondTaskError maps service errors onto HTTP statuses
func respondTaskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// CreateTask handles creating a new task for the current week
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	weekYear := week.IdentifierOf(time.Now())
	task, err := h.taskService.CreateTask(r.Context(), authContext.UserID, &req, weekYear)
	if err != nil {
		respondTaskError(w, err, "Failed to create task")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, task)
}

// GetTasks handles the board read path: the requested (default
// current) week's tasks plus every scheduled task, in one response.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	weekYear := r.URL.Query().Get("week")
	if weekYear == "" {
		weekYear = week.IdentifierOf(time.Now())
	}

	tasks, err := h.taskService.ListWeekBoard(r.Context(), authContext.UserID, weekYear)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.TaskListResponse{
		WeekYear: weekYear,
		Tasks:    tasks,
	})
}

// GetTaskByID handles retrieving a single task by ID
func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), taskID, authContext.UserID)
	if err != nil {
		respondTaskError(w, err, "Failed to retrieve task")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, task)
}

// UpdateTask handles updating an existing task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, authContext.UserID, &req)
	if err != nil {
		respondTaskError(w, err, "Failed to update task")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, task)
}

// ToggleCompletion handles marking one day of a task done or not done
func (h *TaskHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	var req models.ToggleCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	task, err := h.taskService.ToggleCompletion(r.Context(), taskID, authContext.UserID, &req)
	if err != nil {
		respondTaskError(w, err, "Failed to toggle completion")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, task)
}

// ReassignDay handles moving a one-off task to a different day
func (h *TaskHandler) ReassignDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	var req models.ReassignDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	task, err := h.taskService.ReassignDay(r.Context(), taskID, authContext.UserID, &req)
	if err != nil {
		respondTaskError(w, err, "Failed to reassign task day")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, task)
}

// DeleteTask handles deleting a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, authContext.UserID); err != nil {
		respondTaskError(w, err, "Failed to delete task")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
