package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	Archive ArchiveConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig points at the external session verification service. When the
// base URL is empty the server falls back to header-based caller identity,
// which is only meant for local development.
type AuthConfig struct {
	BaseURL string
}

// Enabled reports whether session verification is configured.
func (c AuthConfig) Enabled() bool {
	return c.BaseURL != ""
}

// ArchiveConfig drives the scheduled export of finished supply reports to
// the Google Sheets feeding log.
type ArchiveConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	CronSchedule    string
	Timezone        string
}

// Enabled reports whether the archive export is configured.
func (c ArchiveConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "petcare"),
		},
		Auth: AuthConfig{
			BaseURL: os.Getenv("AUTH_BASE_URL"),
		},
		Archive: ArchiveConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ARCHIVE_ID"),
			CronSchedule:    getenvWithDefault("ARCHIVE_CRON_SCHEDULE", "0 21 * * 0"),
			Timezone:        getenvWithDefault("TIMEZONE", "UTC"),
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
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Archive.Enabled() {
		if c.Archive.CronSchedule == "" {
			return errors.New("ARCHIVE_CRON_SCHEDULE must be provided")
		}
		if c.Archive.Timezone == "" {
			return errors.New("TIMEZONE must be provided")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
