// Package sheets exports match results to a Google Sheets spreadsheet.
package sheets

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tradewise-kr/buyerscout/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "Buyer Candidates",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// LoadConfig reads the sheets configuration from viper (config file keys
// under "sheets", or BUYERSCOUT_SHEETS_* environment variables).
func LoadConfig() (Config, error) {
	c := DefaultConfig()

	c.ClientID = viper.GetString("sheets.client_id")
	c.ClientSecret = viper.GetString("sheets.client_secret")
	c.RefreshToken = viper.GetString("sheets.refresh_token")
	c.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	c.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
		c.SpreadsheetName = name
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: missing Google Sheets authentication: provide either a service account path or OAuth2 credentials", common.ErrMissingConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or a service account", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
