package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the Postgres price store, the two external APIs and the
// price ingestion job.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=stockstats
//	SOCIAL_BASE_URL=http://localhost:9001
//	SENTIMENT_BASE_URL=http://localhost:9002
//	INGEST_CRON=0 30 22 * * 1-5
type Config struct {
	Server    ServerConfig   // HTTP server configuration
	Postgres  PostgresConfig // PostgreSQL connection settings
	Social    APIConfig      // Social feed API
	Sentiment APIConfig      // Sentiment classification API
	Ingest    IngestConfig   // Daily price file ingestion
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout     time.Duration // Deadline attached to every request context
	RateLimitPerMinute int           // Requests allowed per client IP per minute
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - AutoMigrate: apply embedded goose migrations on startup.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
	URL         string
}

// APIConfig describes an external HTTP collaborator.
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// IngestConfig drives the price ingestion job and its scheduler.
type IngestConfig struct {
	Dir  string // Directory holding YYYY-MM-DD_PRICES.txt files
	Days int    // Business days to (re)load per run
	Cron string // Six-field cron spec (with seconds) for --mode schedule
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stockstats")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_AUTO_MIGRATE", true)

	viper.SetDefault("SOCIAL_BASE_URL", "http://localhost:9001")
	viper.SetDefault("SOCIAL_API_TOKEN", "")
	viper.SetDefault("SENTIMENT_BASE_URL", "http://localhost:9002")
	viper.SetDefault("SENTIMENT_API_TOKEN", "")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "5s")

	viper.SetDefault("INGEST_DIR", "./data/input")
	viper.SetDefault("INGEST_DAYS", 5)
	viper.SetDefault("INGEST_CRON", "0 30 22 * * 1-5")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	clientTimeout := viper.GetDuration("HTTP_CLIENT_TIMEOUT")

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:        viper.GetString("POSTGRES_HOST"),
			Port:        viper.GetInt("POSTGRES_PORT"),
			User:        viper.GetString("POSTGRES_USER"),
			Password:    viper.GetString("POSTGRES_PASSWORD"),
			DBName:      viper.GetString("POSTGRES_DB"),
			SSLMode:     viper.GetString("POSTGRES_SSLMODE"),
			AutoMigrate: viper.GetBool("POSTGRES_AUTO_MIGRATE"),
		},
		Social: APIConfig{
			BaseURL: viper.GetString("SOCIAL_BASE_URL"),
			Token:   viper.GetString("SOCIAL_API_TOKEN"),
			Timeout: clientTimeout,
		},
		Sentiment: APIConfig{
			BaseURL: viper.GetString("SENTIMENT_BASE_URL"),
			Token:   viper.GetString("SENTIMENT_API_TOKEN"),
			Timeout: clientTimeout,
		},
		Ingest: IngestConfig{
			Dir:  viper.GetString("INGEST_DIR"),
			Days: viper.GetInt("INGEST_DAYS"),
			Cron: viper.GetString("INGEST_CRON"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// missingKeys lists the required variables that are empty in AppConfig.
func missingKeys() []string {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Social.BaseURL == "" {
		missing = append(missing, "SOCIAL_BASE_URL")
	}
	if AppConfig.Sentiment.BaseURL == "" {
		missing = append(missing, "SENTIMENT_BASE_URL")
	}
	if AppConfig.Social.Timeout <= 0 {
		missing = append(missing, "HTTP_CLIENT_TIMEOUT")
	}

	return missing
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	if missing := missingKeys(); len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}
