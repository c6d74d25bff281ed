package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/handlers"
	"github.com/eduviet/exam-service/internal/importer"
	"github.com/eduviet/exam-service/internal/middleware"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/repositories/jsonfile"
	"github.com/eduviet/exam-service/internal/repositories/memstore"
	"github.com/eduviet/exam-service/internal/repositories/redisstore"
	"github.com/eduviet/exam-service/internal/services"
	"github.com/eduviet/exam-service/internal/storage"
	"github.com/eduviet/exam-service/internal/utils"
	"github.com/eduviet/exam-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open data store: %v", err)
	}

	// Attempt timers prefer redis so they survive restarts and are shared
	// across instances; without redis a single instance falls back to
	// process memory.
	var attempts repositories.AttemptRepository
	if client, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, keeping attempt timers in memory", "error", err)
		attempts = memstore.NewAttemptRepository()
	} else {
		attempts = redisstore.NewAttemptRepository(client)
	}

	publisher, err := config.LoadEventConfig().CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	var completer services.Completer
	if cfg.AIAPIKey != "" {
		completer = services.NewOpenAICompleter(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	} else {
		logger.Warn("AI_API_KEY not set, result analysis uses the fallback summary")
	}

	serviceManager := services.NewServiceManager(services.ManagerConfig{
		Catalog:                 jsonfile.NewCatalogRepository(store),
		Results:                 jsonfile.NewResultRepository(store),
		Attempts:                attempts,
		Publisher:               publisher,
		Completer:               completer,
		Logger:                  logger,
		Validator:               utils.NewValidator(),
		DefaultTimeLimitMinutes: cfg.DefaultTimeLimitMinutes,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		serviceManager,
		importer.New(store, logger),
		middleware.NewCasdoorAuthenticator(cfg),
		logger,
	)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting exam service",
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"environment", cfg.Environment)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
