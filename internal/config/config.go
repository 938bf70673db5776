package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Digest  DigestConfig
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

// SheetsConfig contains configuration for the Google Sheets report export.
// The export is disabled when CredentialsPath is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// DigestConfig holds settings for the scheduled tester digest. The digest is
// disabled when WebhookURL is empty.
type DigestConfig struct {
	WebhookURL   string
	CronSchedule string
	HorizonDays  int
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

	horizonDays, err := strconv.Atoi(getenvWithDefault("DIGEST_HORIZON_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("DIGEST_HORIZON_DAYS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "precast_tracker"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "ConcreteReport!A:U"),
		},
		Digest: DigestConfig{
			WebhookURL:   os.Getenv("DIGEST_WEBHOOK_URL"),
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 6 * * *"),
			HorizonDays:  horizonDays,
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

	// Sheets export is optional, but half a configuration is a mistake.
	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when sheets credentials are set")
	}
	if c.Sheets.CredentialsPath == "" && c.Sheets.SpreadsheetID != "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when a report sheet is set")
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}
	if c.Digest.HorizonDays <= 0 {
		return errors.New("DIGEST_HORIZON_DAYS must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
