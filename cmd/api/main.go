package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mergington/high-school/activities-service/internal/adapters/handler"
	"github.com/mergington/high-school/activities-service/internal/adapters/messaging"
	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/adapters/repository"
	"github.com/mergington/high-school/activities-service/internal/config"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
	"github.com/mergington/high-school/activities-service/internal/core/services"
	"github.com/mergington/high-school/activities-service/internal/logging"
	"github.com/mergington/high-school/activities-service/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.CheckFunc{}

	var userRepo ports.UserRepository
	switch cfg.UserBackend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := repository.NewSQLUserRepository(db)
		if err := repo.EnsureSchema(ctx, repository.SeedUsers()); err != nil {
			slog.Error("failed to prepare users table", "error", err)
			os.Exit(1)
		}
		userRepo = repo
		checks["database"] = db.PingContext
		slog.Info("Using PostgreSQL user store")
	default:
		userRepo = repository.NewMemoryUserRepository(repository.SeedUsers())
	}

	var sessionRepo ports.SessionRepository
	switch cfg.SessionBackend {
	case config.BackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		sessionRepo = repository.NewRedisSessionRepository(redisClient, cfg.SessionTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		slog.Info("Authenticated with Redis successfully")
	default:
		sessionRepo = repository.NewMemorySessionRepository(cfg.SessionTTL)
	}

	var publisher ports.EventPublisher = messaging.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.EventQueueName)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer broker.Close()

		publisher = broker
		checks["rabbitmq"] = func(context.Context) error {
			if broker.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
		slog.Info("Publishing events to RabbitMQ", "queue", cfg.EventQueueName)
	}

	activityRepo := repository.NewMemoryActivityRepository(repository.SeedActivities())

	router := server.NewRouter(server.Options{
		Auth:           services.NewAuthService(userRepo, sessionRepo),
		Enrollment:     services.NewEnrollmentService(activityRepo, publisher, logger.With("component", "enrollment")),
		Accounts:       services.NewAccountService(userRepo, publisher, logger.With("component", "accounts")),
		Metrics:        metrics.New(),
		Logger:         logger,
		Version:        cfg.AppVersion,
		Checks:         checks,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
