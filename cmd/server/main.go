package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/PWDEJOB/pwde-job-api/internal/adapter/httpserver"
	"github.com/PWDEJOB/pwde-job-api/internal/adapter/metrics"
	"github.com/PWDEJOB/pwde-job-api/internal/adapter/postgres"
	"github.com/PWDEJOB/pwde-job-api/internal/adapter/push"
	"github.com/PWDEJOB/pwde-job-api/internal/adapter/redis"
	"github.com/PWDEJOB/pwde-job-api/internal/app"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	"github.com/PWDEJOB/pwde-job-api/internal/platform/config"
	"github.com/PWDEJOB/pwde-job-api/internal/platform/logging"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	matchMetrics := metrics.NewMatchMetrics(registry)
	notifyMetrics := metrics.NewNotifyMetrics(registry)

	employeeRepo := postgres.NewEmployeeRepo(pool)
	employerRepo := postgres.NewEmployerRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	applicationRepo := postgres.NewApplicationRepo(pool)
	impressionRepo := postgres.NewImpressionRepo(pool)
	declinedRepo := postgres.NewDeclinedRepo(pool)
	notificationRepo := postgres.NewNotificationRepo(pool)
	pushTokenRepo := postgres.NewPushTokenRepo(pool)

	sessionStore := redis.NewSessionStore(redisClient)
	expoClient := push.NewExpoClient(cfg.ExpoPushURL, cfg.PushTimeout)
	notifier := app.NewNotifier(notificationRepo, pushTokenRepo, expoClient, cfg.PushTimeout, clock, notifyMetrics)

	appSvc := app.NewService(
		employeeRepo, employerRepo, jobRepo,
		applicationRepo, impressionRepo, declinedRepo, notificationRepo,
		sessionStore, notifier, clock, matchMetrics,
		app.Options{
			Policy:                   domain.CandidatePolicy(cfg.MatchPolicy),
			EmployerSignupDailyLimit: cfg.EmployerSignupDailyLimit,
		},
	)

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := httpserver.NewServer(cfg, appSvc, httpMetrics, metrics.Handler(registry), healthChecks)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
