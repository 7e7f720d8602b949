package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/fbraintech-stack/weekboard/internal/middleware"
	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/services"
	"github.com/fbraintech-stack/weekboard/internal/utils"
)

// CategoryHandler handles category related HTTP requests
type CategoryHandler struct {
	categoryService *services.CategoryService
	validator       *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(cs *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: cs,
		validator:       validator.New(),
	}
}

// CreateCategory handles creating a new category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
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

	category, err := h.categoryService.CreateCategory(r.Context(), authContext.UserID, &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

// GetCategories handles listing the user's categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), authContext.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// DeleteCategory handles deleting a category
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID := vars["id"]

	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID, authContext.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
