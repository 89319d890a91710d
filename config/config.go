package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string

	// Warehouse (Postgres) configuration. An empty DBHost disables the
	// warehouse adapter entirely; the file adapter then becomes primary.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (login rate limiting). Empty host disables it.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Record pipeline configuration
	DataFile     string
	S3Bucket     string
	S3Key        string
	IdentityFile string
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	FetchLimit   int
}

// LoadConfig creates a new Config instance from environment variables. In
// development a .env file in the working directory is merged in first.
func LoadConfig() (*Config, error) {
	if IsDevelopment() {
		// Missing .env is fine; env vars alone are a valid setup.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "fanpulse"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		// Matches the dashboard's historical 8 hour session lifetime.
		TokenTTL: getDuration("TOKEN_TTL", 8*time.Hour),

		DataFile:     getEnv("DATA_FILE", "data/fan_feedback.csv"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		S3Key:        os.Getenv("S3_EXPORT_KEY"),
		IdentityFile: os.Getenv("IDENTITY_FILE"),
		CacheTTL:     getDuration("CACHE_TTL", 60*time.Second),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchLimit:   getInt("FETCH_LIMIT", 1000),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
