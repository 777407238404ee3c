package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taskboard/config"
	"taskboard/internal/api"
	"taskboard/internal/db"
	"taskboard/internal/events"
	"taskboard/internal/redis"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

func main() {
	// 1. Load config (.env first, then config.yaml + env overrides)
	_ = godotenv.Load()
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// 2. Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Fatal("Schema initialization failed", zap.Error(err))
	}

	// 3. Init Redis-backed sessions
	redisClient := redis.NewRedisClient(cfg.Redis)
	sessionStore := session.NewRedisStore(redisClient)
	sessions := session.NewManager(sessionStore, time.Duration(cfg.Session.TTLHours)*time.Hour, logger)

	// 4. Init event publisher (no-op when MQ is not configured)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.MQ.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.MQ.URL)
		if err != nil {
			logger.Fatal("MQ initialization failed", zap.Error(err))
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	// 5. Init repositories
	accountRepo := repository.NewAccountRepository(dbConn, logger)
	taskRepo := repository.NewTaskRepository(dbConn, logger)

	// 6. Init services
	accountService := service.NewAccountService(accountRepo, logger)
	taskService := service.NewTaskService(taskRepo, publisher, logger)

	// 7. Init handlers
	pageHandler := api.NewPageHandler(accountService, taskService, sessions, logger)
	apiHandler := api.NewAPIHandler(accountService, taskService, cfg.JWT.Secret, logger)

	// 8. Init router
	router := api.NewRouter(pageHandler, apiHandler, sessions, cfg.JWT.Secret, cfg.Server.Templates)

	// 9. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
