package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "blogapi/docs"
	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	api "blogapi/internal/http"
	"blogapi/internal/http/handlers"
	rl "blogapi/internal/http/rate_limiter"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

// @title Blog API
// @version 1.0
// @description REST API for a blog: registration, authentication, profiles, subscriptions and posts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(context.Background(), database, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	userRepo := repo.NewPostgresUserRepository(database)
	handlers.SetUserRepo(userRepo)
	handlers.SetPostRepo(repo.NewPostgresPostRepository(database))

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("could not connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		handlers.SetPostCache(cache.New(rdb, logger))
		logger.Info("post cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	if err := seedAdmin(cfg, userRepo); err != nil {
		logger.Fatal("could not seed admin user", zap.Error(err))
	}

	go rl.StartVisitorCleanupLoop()

	r := api.NewRouter()
	logger.Info("server running",
		zap.String("project", cfg.ProjectName),
		zap.String("port", cfg.Port),
	)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// seedAdmin creates the configured admin account on first start.
func seedAdmin(cfg *config.Config, users repo.UserRepository) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := users.GetByUsername(cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = users.Create(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hashed,
		IsActive:     true,
	})
	return err
}
