package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	AutoMigrate       bool
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// StorageDir is where uploaded room photos and their thumbnails live.
	StorageDir     string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	// PricingConcurrency bounds how many room types a search prices at once.
	PricingConcurrency int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error

	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	// Apply embedded migrations on startup (default: off)
	cfg.AutoMigrate = getEnv("AUTO_MIGRATE", "false") == "true"

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.StorageDir = getEnv("STORAGE_DIR", "./data/uploads")

	// Upload limit in bytes (default: 5 MiB)
	maxUpload, err := getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	cfg.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg.PricingConcurrency, err = getEnvAsInt("PRICING_CONCURRENCY", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_CONCURRENCY: %w", err)
	}
	if cfg.PricingConcurrency < 1 {
		return nil, fmt.Errorf("invalid PRICING_CONCURRENCY: must be at least 1")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
