package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fbraintech-stack/weekboard/api"
	"github.com/fbraintech-stack/weekboard/internal/config"
	"github.com/fbraintech-stack/weekboard/internal/database"
	"github.com/fbraintech-stack/weekboard/internal/handlers"
	"github.com/fbraintech-stack/weekboard/internal/middleware"
	"github.com/fbraintech-stack/weekboard/internal/services"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// 2. Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer func() {
		if err = client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.DBName)

	// 3. Ensure indexes (incl. the unique rollover claim index)
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Error ensuring database indexes: %v", err)
	}

	// 4. Initialize services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, []byte(cfg.JWTSecret))
	taskService := services.NewTaskService(db)
	categoryService := services.NewCategoryService(db)
	rolloverService := services.NewRolloverService(taskService)
	boardService := services.NewBoardService(db)

	// 5. Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	boardHandler := handlers.NewBoardHandler(rolloverService, boardService)

	// 6. Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.JWTSecret))

	// 7. Setup router
	router := mux.NewRouter()
	api.SetupRoutes(router, authMiddleware, authHandler, taskHandler, categoryHandler, boardHandler)

	c := cors.AllowAll()
	handlerWithCORS := c.Handler(router)

	// 8. Start HTTP server
	log.Printf("Server starting on port %s", cfg.Port)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlerWithCORS,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.Port, err)
	}
}
