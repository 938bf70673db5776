package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "precast_tracker", cfg.MongoDB.DBName)
	assert.Equal(t, "ConcreteReport!A:U", cfg.Sheets.ReportRange)
	assert.Equal(t, "0 6 * * *", cfg.Digest.CronSchedule)
	assert.Equal(t, 7, cfg.Digest.HorizonDays)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MONGODB_DB_NAME", "precast_test")
	t.Setenv("DIGEST_HORIZON_DAYS", "14")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "precast_test", cfg.MongoDB.DBName)
	assert.Equal(t, 14, cfg.Digest.HorizonDays)
}

func TestLoadRejectsBadHorizon(t *testing.T) {
	t.Setenv("DIGEST_HORIZON_DAYS", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "DIGEST_HORIZON_DAYS")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "precast_tracker"},
			Digest:  DigestConfig{CronSchedule: "0 6 * * *", HorizonDays: 7},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.MongoDB.URI = ""
	assert.ErrorContains(t, cfg.Validate(), "MONGODB_URI")

	cfg = base()
	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.ErrorContains(t, cfg.Validate(), "GOOGLE_SHEET_REPORT_ID")

	cfg = base()
	cfg.Sheets.SpreadsheetID = "sheet-id"
	assert.ErrorContains(t, cfg.Validate(), "GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg = base()
	cfg.Digest.HorizonDays = 0
	assert.ErrorContains(t, cfg.Validate(), "DIGEST_HORIZON_DAYS")
}
