package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Document  DocumentConfig
	Auth      AuthConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Notify    NotifyConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
	Env  string
}

// DocumentConfig controls PDF letterheads and money formatting.
type DocumentConfig struct {
	OrgName        string
	CurrencySymbol string
	Locale         string
}

// AuthConfig holds the demo credential and session settings.
type AuthConfig struct {
	JWTSecret    string
	DemoPassword string
	SessionTTL   time.Duration
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver   string
	SeedDemo bool
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// NotifyConfig configures the outbound notification webhook.
type NotifyConfig struct {
	WebhookURL string
	Token      string
}

// SheetsConfig contains configuration required to append to the purchase order register.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the register is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// SchedulerConfig holds cron settings.
type SchedulerConfig struct {
	EnquiryExpiryCron string
	DigestCron        string
	Timezone          string
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
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("AUTH_SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_SESSION_TTL is invalid: %w", err)
	}

	seed, err := strconv.ParseBool(getenvWithDefault("SEED_DEMO_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DEMO_DATA is invalid: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
			Env:  getenvWithDefault("APP_ENV", "production"),
		},
		Document: DocumentConfig{
			OrgName:        getenvWithDefault("ORG_NAME", "University"),
			CurrencySymbol: getenvWithDefault("DOC_CURRENCY_SYMBOL", "Rs."),
			Locale:         getenvWithDefault("DOC_LOCALE", "en-IN"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
			DemoPassword: getenvWithDefault("AUTH_DEMO_PASSWORD", "password"),
			SessionTTL:   ttl,
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getenvWithDefault("STORAGE_DRIVER", StorageMemory)),
			SeedDemo: seed,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "procurement"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Token:      os.Getenv("NOTIFY_WEBHOOK_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REGISTER_ID"),
		},
		Scheduler: SchedulerConfig{
			EnquiryExpiryCron: getenvWithDefault("ENQUIRY_EXPIRY_CRON", "*/15 * * * *"),
			DigestCron:        getenvWithDefault("DIGEST_CRON", "0 9 * * 1-5"),
			Timezone:          getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
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

	switch {
	case c.Auth.JWTSecret == "":
		return errors.New("AUTH_JWT_SECRET must be provided")
	case c.Auth.DemoPassword == "":
		return errors.New("AUTH_DEMO_PASSWORD must not be empty")
	case c.Auth.SessionTTL <= 0:
		return errors.New("AUTH_SESSION_TTL must be positive")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_REGISTER_ID must be provided together")
	}

	if c.Scheduler.EnquiryExpiryCron == "" {
		return errors.New("ENQUIRY_EXPIRY_CRON must be provided")
	}

	if c.Scheduler.DigestCron == "" {
		return errors.New("DIGEST_CRON must be provided")
	}

	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
