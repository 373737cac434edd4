package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr            string
	Timezone            string
	AchievementThrottle time.Duration
	Database            DatabaseConfig
	Cache               CacheConfig
	Jobs                JobsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// CacheConfig holds per-category cache TTLs
type CacheConfig struct {
	ProfileTTL      time.Duration
	StatsTTL        time.Duration
	AchievementsTTL time.Duration
	LeaderboardTTL  time.Duration
}

// JobsConfig holds background job intervals
type JobsConfig struct {
	CacheSweepInterval         time.Duration
	LeaderboardRefreshInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		Timezone:            getEnv("TIMEZONE", "UTC"),
		AchievementThrottle: getEnvSeconds("ACHIEVEMENT_CHECK_INTERVAL_SECONDS", 30),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lingolens"),
			User:     getEnv("DB_USER", "lingolens"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Cache: CacheConfig{
			ProfileTTL:      getEnvSeconds("CACHE_PROFILE_TTL_SECONDS", 30),
			StatsTTL:        getEnvSeconds("CACHE_STATS_TTL_SECONDS", 60),
			AchievementsTTL: getEnvSeconds("CACHE_ACHIEVEMENTS_TTL_SECONDS", 300),
			LeaderboardTTL:  getEnvSeconds("CACHE_LEADERBOARD_TTL_SECONDS", 120),
		},
		Jobs: JobsConfig{
			CacheSweepInterval:         getEnvSeconds("JOB_CACHE_SWEEP_SECONDS", 3600),
			LeaderboardRefreshInterval: getEnvSeconds("JOB_LEADERBOARD_REFRESH_SECONDS", 120),
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// Location returns the timezone used for calendar-day streak arithmetic
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
