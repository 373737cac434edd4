package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingolens/internal/cache"
	"lingolens/internal/config"
	"lingolens/internal/handler"
	"lingolens/internal/jobs"
	"lingolens/internal/metrics"
	"lingolens/internal/middleware"
	"lingolens/internal/repository/postgres"
	"lingolens/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting LingoLens progression server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize metrics
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Initialize cache with configured TTLs
	c := cache.New(
		cache.WithTTL(cache.CategoryProfile, cfg.Cache.ProfileTTL),
		cache.WithTTL(cache.CategoryStats, cfg.Cache.StatsTTL),
		cache.WithTTL(cache.CategoryAchievements, cfg.Cache.AchievementsTTL),
		cache.WithTTL(cache.CategoryLeaderboard, cfg.Cache.LeaderboardTTL),
		cache.WithRecorder(m),
	)

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	achievementRepo := postgres.NewAchievementRepo(db)
	wordRepo := postgres.NewWordRepo(db)
	quizRepo := postgres.NewQuizRepo(db)
	xpRepo := postgres.NewXPRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	// Initialize services
	authService := service.NewAuthService(sessionRepo, profileRepo)
	levelingService := service.NewLevelingService(profileRepo, xpRepo, logger)
	streakService := service.NewStreakService(profileRepo, cfg.Location(), logger)
	statsService := service.NewStatsService(wordRepo, quizRepo, profileRepo, streakService, c, logger)
	achievementService := service.NewAchievementService(achievementRepo, statsService, levelingService, c, m, logger)
	achievementService.SetCheckInterval(cfg.AchievementThrottle)
	leaderboardService := service.NewLeaderboardService(profileRepo, c, logger)

	// Initialize router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	h := handler.NewHandler(
		authService,
		levelingService,
		streakService,
		achievementService,
		statsService,
		leaderboardService,
		logger,
	)
	h.Routes(r)

	logger.Info("Routes registered")

	// Start background jobs
	scheduler := jobs.New(c, leaderboardService, logger)
	scheduler.Start(cfg.Jobs.CacheSweepInterval, cfg.Jobs.LeaderboardRefreshInterval)
	defer scheduler.Stop()

	// Start HTTP server in background
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
