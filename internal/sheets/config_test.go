package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tradewise-kr/buyerscout/internal/common"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "service account only",
			mutate: func(c *Config) { c.ServiceAccountPath = "/etc/sa.json" },
		},
		{
			name: "oauth only",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name:    "no auth",
			mutate:  func(c *Config) {},
			wantErr: "missing Google Sheets authentication",
		},
		{
			name: "partial oauth",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
			},
			wantErr: "missing Google Sheets authentication",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
				c.ServiceAccountPath = "/etc/sa.json"
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "negative retry attempts",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/sa.json"
				c.RetryAttempts = -1
			},
			wantErr: "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateSentinels(t *testing.T) {
	missing := DefaultConfig()
	assert.ErrorIs(t, missing.Validate(), common.ErrMissingConfig)

	both := DefaultConfig()
	both.ClientID = "id"
	both.ClientSecret = "secret"
	both.RefreshToken = "token"
	both.ServiceAccountPath = "/etc/sa.json"
	assert.ErrorIs(t, both.Validate(), common.ErrInvalidConfig)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Buyer Candidates", cfg.SpreadsheetName)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
}
