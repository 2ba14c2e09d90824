package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"io.winapps.traveljournal/internal/auth"
	"io.winapps.traveljournal/internal/config"
	"io.winapps.traveljournal/internal/db"
	"io.winapps.traveljournal/internal/handlers"
	"io.winapps.traveljournal/internal/logger"
	"io.winapps.traveljournal/internal/middleware"
	"io.winapps.traveljournal/internal/repository"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer postgresDB.Close()

	// Initialize Redis if configured; caching is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = db.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer redisClient.Close()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize repositories
	users := repository.NewUserRepository(postgresDB)
	entries := repository.NewEntryRepository(postgresDB)
	photos := repository.NewPhotoRepository(postgresDB)
	tags := repository.NewTagRepository(postgresDB)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, tokens, redisClient, zlog)
	entryHandler := handlers.NewEntryHandler(entries, redisClient, zlog)
	photoHandler := handlers.NewPhotoHandler(entries, photos, zlog)
	tagHandler := handlers.NewTagHandler(entries, tags, zlog)

	// Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(zlog))
	router.Use(middleware.RecoveryMiddleware(zlog))

	// Add CORS middleware for browser clients
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// Define routes
	api := router.Group("/api")
	{
		usersGroup := api.Group("/users")
		{
			usersGroup.POST("/register", authHandler.Register)
			usersGroup.POST("/login", authHandler.Login)
			usersGroup.POST("/reset-password", authHandler.ResetPassword)
			usersGroup.GET("/profile", requireAuth, authHandler.Profile)
		}

		entriesGroup := api.Group("/entries")
		{
			entriesGroup.GET("", optionalAuth, entryHandler.ListEntries)
			entriesGroup.POST("", optionalAuth, entryHandler.CreateEntry)
			entriesGroup.GET("/:id", optionalAuth, entryHandler.GetEntry)
			entriesGroup.PUT("/:id", optionalAuth, entryHandler.UpdateEntry)
			entriesGroup.DELETE("/:id", optionalAuth, entryHandler.DeleteEntry)

			entriesGroup.GET("/:id/photos", requireAuth, photoHandler.ListPhotos)
			entriesGroup.POST("/:id/photos", requireAuth, photoHandler.AddPhoto)
			entriesGroup.DELETE("/:id/photos/:photo_id", requireAuth, photoHandler.DeletePhoto)

			entriesGroup.GET("/:id/tags", optionalAuth, tagHandler.ListEntryTags)
			entriesGroup.POST("/:id/tags", requireAuth, tagHandler.AttachTag)
			entriesGroup.DELETE("/:id/tags/:tag_id", requireAuth, tagHandler.DetachTag)
		}

		tagsGroup := api.Group("/tags")
		{
			tagsGroup.GET("", optionalAuth, tagHandler.ListTags)
			tagsGroup.POST("", requireAuth, tagHandler.CreateTag)
			tagsGroup.DELETE("/:id", requireAuth, tagHandler.DeleteTag)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		zlog.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	// Give a 5 second timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info("server exited")
}
