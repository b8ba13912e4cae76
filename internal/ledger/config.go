package ledger

import (
	"fmt"
	"time"
)

// Config holds the configuration for the Google Sheets row store.
type Config struct {
	ServiceAccountPath string
	SpreadsheetID      string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ServiceAccountPath == "" {
		return fmt.Errorf("no service account path configured")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("no spreadsheet id configured")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}
	return nil
}

// URL returns the browser link to the spreadsheet.
func (c Config) URL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", c.SpreadsheetID)
}
