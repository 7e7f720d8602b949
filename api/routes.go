package api

import (
	"github.com/gorilla/mux"

	"github.com/fbraintech-stack/weekboard/internal/handlers"
	"github.com/fbraintech-stack/weekboard/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	router *mux.Router,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	categoryHandler *handlers.CategoryHandler,
	boardHandler *handlers.BoardHandler,
) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Authentication routes (public)
	v1.HandleFunc("/auth/register", authHandler.RegisterUser).Methods("POST")
	v1.HandleFunc("/auth/login", authHandler.LoginUser).Methods("POST")

	// Week/calendar info (public, pure calendar arithmetic)
	v1.HandleFunc("/week", boardHandler.GetWeekInfo).Methods("GET")

	// Task routes (protected)
	v1.HandleFunc("/tasks", authMiddleware.JWTAuth(taskHandler.CreateTask)).Methods("POST")
	v1.HandleFunc("/tasks", authMiddleware.JWTAuth(taskHandler.GetTasks)).Methods("GET")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.GetTaskByID)).Methods("GET")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.UpdateTask)).Methods("PUT")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.DeleteTask)).Methods("DELETE")
	v1.HandleFunc("/tasks/{id}/completion", authMiddleware.JWTAuth(taskHandler.ToggleCompletion)).Methods("POST")
	v1.HandleFunc("/tasks/{id}/day", authMiddleware.JWTAuth(taskHandler.ReassignDay)).Methods("POST")

	// Category routes (protected)
	v1.HandleFunc("/categories", authMiddleware.JWTAuth(categoryHandler.CreateCategory)).Methods("POST")
	v1.HandleFunc("/categories", authMiddleware.JWTAuth(categoryHandler.GetCategories)).Methods("GET")
	v1.HandleFunc("/categories/{id}", authMiddleware.JWTAuth(categoryHandler.DeleteCategory)).Methods("DELETE")

	// Board routes (protected)
	v1.HandleFunc("/rollover", authMiddleware.JWTAuth(boardHandler.RunRollover)).Methods("POST")
	v1.HandleFunc("/board/summary", authMiddleware.JWTAuth(boardHandler.GetWeekSummary)).Methods("GET")
}
