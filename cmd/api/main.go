package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-catalog-api/config"
	_ "job-catalog-api/docs" // Important for Swagger
	v1 "job-catalog-api/internal/delivery/http/v1"
	"job-catalog-api/internal/repository/postgres"
	"job-catalog-api/internal/usecase"
	"job-catalog-api/pkg/database"
	"job-catalog-api/pkg/logger"
	"job-catalog-api/pkg/redis"
	"job-catalog-api/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Catalog API
// @version         1.0
// @description     CRUD catalog of job postings backed by PostgreSQL.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job catalog", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolOptions{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Log.Info("Database connection established")

	if cfg.DBAutoSchema {
		if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to prepare schema", "error", err)
			os.Exit(1)
		}
	}

	// 4. Optional Redis for shared rate-limit counters
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Setup Repositories and UseCases
	jobRepo := postgres.NewJobRepository(dbPool)
	jobUC := usecase.NewJobUsecase(jobRepo, validation.New())
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:    jobUC,
		HealthUC: healthUC,
		Redis:    redisClient,
		Config:   cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
