package main

import (
	"context"
	"log"
	"time"

	"lesson-booking/cmd"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/wire"
	"lesson-booking/pkg/database"
	"lesson-booking/pkg/lock"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply pending migrations
	migrator, err := database.NewMigrator(db, config.Database.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	logger.Info("Migrations applied")

	// Single-instance deployments fall back to the in-process locker
	var locker lock.Locker
	if config.Redis.Addr != "" {
		redisLocker, err := lock.NewRedisLocker(config.Redis.Addr)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisLocker.Close()
		locker = redisLocker

		logger.Info("Using redis locker", zap.String("addr", config.Redis.Addr))
	} else {
		locker = lock.NewMemoryLocker()

		logger.Info("Using in-memory locker")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Sweep expired sessions in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := repos.Session.CleanExpiredSessions(context.Background()); err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}()

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, locker, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
