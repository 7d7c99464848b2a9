// Package main is the entry point for the todo-system API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdesk/todo-system/internal/api"
	mongodb "github.com/taskdesk/todo-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdesk/todo-system/internal/infrastructure/db/redis"
	"github.com/taskdesk/todo-system/internal/infrastructure/queue"
	"github.com/taskdesk/todo-system/internal/pkg/config"
	"github.com/taskdesk/todo-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "todo-api",
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	todos := mongodb.NewTodoRepository(db)
	if err := todos.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create todo indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	// --- Audit trail ---
	// The dispatcher outlives the signal context: events recorded while echo
	// drains in-flight requests must still be persisted, so workers run until
	// the explicit Stop below.
	audit := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(db), log)
	audit.Start(context.Background())

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Mongo:        db,
		Redis:        rdb,
		Config:       cfg,
		LoginLimiter: limiter,
		Audit:        audit,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting todo-system API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := e.Shutdown(shutdownCtx)

	// Drain buffered audit events only after the server stops accepting work.
	audit.Stop()

	if shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
