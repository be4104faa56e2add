package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Store      StoreConfig
	Postgres   PostgresConfig
	MongoDB    MongoDBConfig
	Sheets     SheetsConfig
	Alerts     AlertsConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// StoreConfig selects the entity store driver.
type StoreConfig struct {
	Driver string
}

// PostgresConfig holds the entity store connection settings.
type PostgresConfig struct {
	URL            string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	ConnectRetries int
	RetryDelay     time.Duration
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value connection string.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", c.Host, c.Port, c.User, c.DBName, c.SSLMode)
	if c.Password != "" {
		dsn += " password=" + c.Password
	}
	return dsn
}

// MongoDBConfig holds settings for the validation report archive.
// The archive is disabled when URI is empty.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// Enabled reports whether the archive should be wired.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// SheetsConfig contains configuration required to export violations to Google Sheets.
// Export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether sheet export should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// AlertsConfig configures the infeasibility webhook.
// Alerts are disabled when WebhookURL is empty.
type AlertsConfig struct {
	WebhookURL string
	Token      string
	Timeout    time.Duration
}

// Enabled reports whether alerts should be sent.
func (c AlertsConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// ValidationConfig holds scheduler-related settings.
type ValidationConfig struct {
	CronSchedule string
	Timezone     string
	// DaysAhead is how far in the future the scheduled run validates.
	DaysAhead int
	Timeout   time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: getenvWithDefault("STORE_DRIVER", StoreDriverPostgres),
		},
		Postgres: PostgresConfig{
			URL:            os.Getenv("DATABASE_URL"),
			Host:           getenvWithDefault("DATABASE_HOST", "db"),
			Port:           getenvInt("DATABASE_PORT", 5432),
			User:           getenvWithDefault("DATABASE_USER", "root"),
			Password:       os.Getenv("DATABASE_PASSWORD"),
			DBName:         getenvWithDefault("DATABASE_NAME", "frostbyte_logistics"),
			SSLMode:        getenvWithDefault("DATABASE_SSLMODE", "disable"),
			MaxConns:       int32(getenvInt("DATABASE_MAX_CONNS", 10)),
			ConnectRetries: getenvInt("DATABASE_CONNECT_RETRIES", 5),
			RetryDelay:     getenvDuration("DATABASE_RETRY_DELAY", time.Second),
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGODB_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "frostbyte"),
			Collection: getenvWithDefault("MONGODB_REPORTS_COLLECTION", "validation_reports"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "Violations!A:F"),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
			Token:      os.Getenv("ALERT_WEBHOOK_TOKEN"),
			Timeout:    getenvDuration("ALERT_WEBHOOK_TIMEOUT", 15*time.Second),
		},
		Validation: ValidationConfig{
			CronSchedule: getenvWithDefault("VALIDATION_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			DaysAhead:    getenvInt("VALIDATION_DAYS_AHEAD", 1),
			Timeout:      getenvDuration("VALIDATION_TIMEOUT", 2*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Postgres.URL == "" && c.Postgres.Host == "" {
			return errors.New("DATABASE_URL or DATABASE_HOST must be provided")
		}
		if c.Postgres.MaxConns <= 0 {
			return errors.New("DATABASE_MAX_CONNS must be positive")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_REPORT_ID is set")
	}

	if c.Validation.CronSchedule == "" {
		return errors.New("VALIDATION_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Validation.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Validation.Timezone, err)
	}

	if c.Validation.DaysAhead < 0 {
		return errors.New("VALIDATION_DAYS_AHEAD must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
