package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-forms/config"
	_ "go-portfolio-forms/docs" // Important for Swagger
	v1 "go-portfolio-forms/internal/delivery/http/v1"
	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/internal/repository/postgres"
	"go-portfolio-forms/internal/usecase"
	"go-portfolio-forms/pkg/database"
	"go-portfolio-forms/pkg/idempotency"
	"go-portfolio-forms/pkg/imaging"
	"go-portfolio-forms/pkg/logger"
	"go-portfolio-forms/pkg/redis"
	"go-portfolio-forms/pkg/storage"
	"go-portfolio-forms/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Forms API
// @version         1.0
// @description     Contact and gallery upload form actions for the portfolio site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Dir: cfg.LogDir}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Infow("Starting portfolio forms service", "port", cfg.Port, "db_driver", cfg.DBDriver, "storage", cfg.StorageBackend)

	ctx := context.Background()

	// 3. Setup Database
	contactRepo, dbPing, closeDB, err := setupContactRepository(ctx, cfg)
	if err != nil {
		logger.Log.Errorw("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	// 4. Setup Redis (optional)
	var redisPing usecase.Pinger
	guardTTL := time.Duration(cfg.IdempotencyTTLSeconds) * time.Second
	var guard idempotency.Guard = idempotency.NewMemoryGuard(guardTTL)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warnw("Redis unavailable, using in-memory fallback", "error", err)
		} else {
			guard = idempotency.NewRedisGuard(redis.Client(), "idem:", guardTTL)
			redisPing = redis.HealthCheck
			defer redis.Close()
		}
	}

	// 5. Setup Artifact Store
	store, err := setupImageStore(ctx, cfg)
	if err != nil {
		logger.Log.Errorw("Failed to set up image storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	validate := validation.NewValidate()
	contactUC := usecase.NewContactUsecase(
		contactRepo,
		validation.New(validate, domain.ContactSchema()),
		guard,
	)
	galleryUC := usecase.NewGalleryUsecase(
		validation.New(validate, domain.GallerySchema()),
		usecase.NewWebPProcessor(imaging.NewProcessor(
			domain.ThumbnailWidth, domain.ThumbnailHeight, cfg.ImageQuality, cfg.MaxImagePixels,
		)),
		store,
		usecase.GalleryOptions{Overwrite: cfg.GalleryOverwrite},
	)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": dbPing,
		"redis":    redisPing,
	})

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		GalleryUC: galleryUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorw("Listen failed", "error", err)
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
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// setupContactRepository opens the configured driver and returns the
// repository, a health check and a close func.
func setupContactRepository(ctx context.Context, cfg *config.Config) (domain.ContactRepository, usecase.Pinger, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if cfg.DBDriver == "pq" {
		db, err := database.NewSQLConnection(connectCtx, cfg.DBUrl)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewContactSQLRepository(db), db.PingContext, func() { db.Close() }, nil
	}

	pool, err := database.NewPostgresConnection(connectCtx, cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, err
	}
	return postgres.NewContactRepository(pool), pool.Ping, pool.Close, nil
}

func setupImageStore(ctx context.Context, cfg *config.Config) (domain.ImageStore, error) {
	if cfg.StorageBackend != "s3" {
		return storage.NewLocalStore(cfg.ThumbnailDir)
	}

	client, err := storage.NewS3Client(ctx, storage.S3Config{
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Prefix:          cfg.S3Prefix,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
}
