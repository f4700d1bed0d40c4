package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"learnnote/internal/auth"
	"learnnote/internal/config"
	"learnnote/internal/handler"
	"learnnote/internal/middleware"
	"learnnote/internal/repository/postgres"
	"learnnote/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Bring the schema up to date before accepting traffic
	if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	topicRepo := postgres.NewTopicRepository(repoConfig)
	resourceRepo := postgres.NewResourceRepository(repoConfig)

	// Token issuer doubles as the middleware's verifier
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	// Create services
	userService := service.NewUserService(userRepo, logger)
	authService := service.NewAuthService(userRepo, issuer, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	topicService := service.NewTopicService(topicRepo, resourceRepo, folderRepo, logger)
	resourceService := service.NewResourceService(resourceRepo, topicRepo, logger)

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(userService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	topicHandler := handler.NewTopicHandler(topicService, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, logger)
	metaHandler := handler.NewMetaHandler(logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Account and auth routes
	mux.HandleFunc("POST /api/users", userHandler.CreateUser)
	mux.HandleFunc("PUT /api/users/topic-order", userHandler.UpdateTopicOrder)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Topic routes
	mux.HandleFunc("GET /api/topics", topicHandler.ListTopics)
	mux.HandleFunc("GET /api/topics/{id}", topicHandler.GetTopic)
	mux.HandleFunc("POST /api/topics", topicHandler.CreateTopic)
	mux.HandleFunc("PUT /api/topics/{id}", topicHandler.UpdateTopic)
	mux.HandleFunc("DELETE /api/topics/{id}", topicHandler.DeleteTopic)

	// Resource routes
	mux.HandleFunc("GET /api/resources", resourceHandler.ListResources)
	mux.HandleFunc("GET /api/resources/{id}", resourceHandler.GetResource)
	mux.HandleFunc("POST /api/resources", resourceHandler.CreateResource)
	mux.HandleFunc("PUT /api/resources/{id}", resourceHandler.UpdateResource)
	mux.HandleFunc("DELETE /api/resources/{id}", resourceHandler.DeleteResource)

	// Page-title lookup for resource forms
	mux.HandleFunc("GET /api/meta", metaHandler.PageTitle)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLog → Recovery → Auth → Routes
	root = middleware.Auth(issuer)(root)
	root = middleware.Recovery(logger)(root)
	root = middleware.RequestLog(logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
