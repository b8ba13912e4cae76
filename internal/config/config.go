// Package config loads the application configuration through viper.
package config

import (
	"fmt"
	"time"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/ledger"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	TelegramToken      string
	GeminiAPIKey       string
	GeminiModel        string
	SpreadsheetID      string
	ServiceAccountPath string
	DBPath             string
	OwnerID            int64

	// CleanupDelay is how long committed-transaction chatter stays before
	// the sweep removes it.
	CleanupDelay time.Duration
	// BatchCommitDelay is the pause between batch appends, a courtesy to
	// the sheet API's rate limits.
	BatchCommitDelay time.Duration
}

// Load reads the configuration from viper (config file and CATATDUIT_*
// environment variables are set up by the command layer).
func Load() (Config, error) {
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("db.path", "catatduit.db")
	viper.SetDefault("cleanup.delay", 5*time.Second)
	viper.SetDefault("batch.commit_delay", 500*time.Millisecond)

	cfg := Config{
		TelegramToken:      viper.GetString("telegram.token"),
		GeminiAPIKey:       viper.GetString("gemini.api_key"),
		GeminiModel:        viper.GetString("gemini.model"),
		SpreadsheetID:      viper.GetString("sheets.spreadsheet_id"),
		ServiceAccountPath: viper.GetString("sheets.service_account_path"),
		DBPath:             viper.GetString("db.path"),
		OwnerID:            viper.GetInt64("owner.id"),
		CleanupDelay:       viper.GetDuration("cleanup.delay"),
		BatchCommitDelay:   viper.GetDuration("batch.commit_delay"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required setting is present.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, name)
	}

	if c.TelegramToken == "" {
		return missing("telegram.token")
	}
	if c.GeminiAPIKey == "" {
		return missing("gemini.api_key")
	}
	if c.SpreadsheetID == "" {
		return missing("sheets.spreadsheet_id")
	}
	if c.ServiceAccountPath == "" {
		return missing("sheets.service_account_path")
	}
	if c.OwnerID == 0 {
		return missing("owner.id")
	}
	return nil
}

// LedgerConfig derives the sheets row-store configuration.
func (c Config) LedgerConfig() ledger.Config {
	lc := ledger.DefaultConfig()
	lc.SpreadsheetID = c.SpreadsheetID
	lc.ServiceAccountPath = c.ServiceAccountPath
	return lc
}
