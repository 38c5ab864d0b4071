package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/joho/godotenv"
)

// Ledger storage backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	PublicURL   string
	CORSOrigins []string
	Env         string

	// Ledger
	LedgerBackend  string
	LedgerKey      string
	LedgerDataDir  string
	CategoriesFile string

	// Database backends
	DatabaseURL  string
	SQLiteDBPath string

	// S3 Storage
	S3 S3Config

	// AMQP event publishing (optional)
	AMQPURL      string
	AMQPExchange string

	// Write rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		PublicURL:      getEnv("PUBLIC_URL", ""),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "http://localhost:19006"), ","),
		Env:            getEnv("ENV", "development"),
		LedgerBackend:  getEnv("LEDGER_BACKEND", BackendFile),
		LedgerKey:      getEnv("LEDGER_KEY", domain.DefaultLedgerKey),
		LedgerDataDir:  getEnv("LEDGER_DATA_DIR", "./data"),
		CategoriesFile: getEnv("CATEGORIES_FILE", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/gofinance.db"),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "gofinance-ledger"),
			Prefix:          getEnv("S3_PREFIX", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "gofinance"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + cfg.Port
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// APIBaseURL is the externally reachable root of the versioned API
func (c *Config) APIBaseURL() string {
	return c.PublicURL + "/api/v1"
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.LedgerKey) == "" {
		return fmt.Errorf("LEDGER_KEY cannot be empty")
	}
	switch c.LedgerBackend {
	case BackendMemory:
	case BackendFile:
		if c.LedgerDataDir == "" {
			return fmt.Errorf("LEDGER_DATA_DIR is required for the file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLITE_DB_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND %q: must be one of memory, file, sqlite, postgres, s3", c.LedgerBackend)
	}
	if c.AMQPURL != "" && c.AMQPExchange == "" {
		return fmt.Errorf("AMQP_EXCHANGE is required when AMQP_URL is set")
	}
	if c.RateLimitPerMinute < 1 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
