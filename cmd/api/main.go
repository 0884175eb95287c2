package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sociogram/social-api/internal/api"
	"github.com/sociogram/social-api/internal/infrastructure/assets"
	mongodb "github.com/sociogram/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sociogram/social-api/internal/infrastructure/db/redis"
	"github.com/sociogram/social-api/internal/pkg/config"
	"github.com/sociogram/social-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title          Sociogram API
// @version        1.0
// @description    Social networking backend: accounts, posts, follows and notifications.
// @BasePath       /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	assetStore, err := assets.NewCloudinaryStore(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary initialisation failed")
	}

	e := api.NewRouter(db, redisClient, assetStore, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewPostRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewNotificationRepository(db).EnsureIndexes(ctx)
}
