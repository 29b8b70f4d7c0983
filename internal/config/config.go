// Package config provides configuration loading and defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tradewise-kr/buyerscout/internal/common"
)

// Source describes one buyer dataset: a logical name, the CSV filename to
// discover on disk, and the ranking weight its records receive. Weights
// reflect trust and freshness of the dataset and are never shown to users.
type Source struct {
	Name     string `mapstructure:"name"`
	Filename string `mapstructure:"filename"`
	Weight   int    `mapstructure:"weight"`
}

// Config is the application configuration.
type Config struct {
	DatabasePath string        `mapstructure:"database_path"`
	DataDirs     []string      `mapstructure:"data_dirs"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	MaxResults   int           `mapstructure:"max_results"`
	Sources      []Source      `mapstructure:"sources"`
}

// DefaultSources lists the bundled public buyer datasets. The filenames are
// the originals as published by each portal, Korean and all; discovery
// handles the Unicode normalization differences.
func DefaultSources() []Source {
	return []Source{
		{Name: "kotra_overseas_buyers_20240829", Filename: "대한무역투자진흥공사_해외바이어 현황_20240829.csv", Weight: 4},
		{Name: "pps_procurement_vendors_20250821", Filename: "조달청_해외조달_업체물품_20250821.csv", Weight: 3},
		{Name: "kosme_buyers_by_country_20250711", Filename: "중소벤처기업진흥공단_온라인수출플랫폼에 등록된 국가별 해외바이어 수_20250711.csv", Weight: 0},
		{Name: "kosme_purchase_offers_20241231", Filename: "중소벤처기업진흥공단_해외바이어 구매오퍼 정보_20241231.csv", Weight: 6},
		{Name: "kosme_inquiries_20241230", Filename: "중소벤처기업진흥공단_해외바이어 인콰이어리 신청_20241230.csv", Weight: 6},
		{Name: "ksure_cosmetics_buyers_20200812", Filename: "한국무역보험공사_화장품 바이어 정보_20200812.csv", Weight: 2},
	}
}

// Load builds the configuration from viper, applying defaults for anything
// the config file and environment leave unset.
func Load() (*Config, error) {
	viper.SetDefault("database_path", "~/.local/share/buyerscout/buyers.db")
	viper.SetDefault("data_dirs", []string{".", "data", "datasets"})
	viper.SetDefault("cache_ttl", time.Hour)
	viper.SetDefault("max_results", 60)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}

	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	for i, dir := range cfg.DataDirs {
		cfg.DataDirs[i] = ExpandPath(dir)
	}

	if cfg.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: max_results must be positive, got %d", common.ErrInvalidConfig, cfg.MaxResults)
	}

	return &cfg, nil
}

// SourceWeights returns the per-source ranking weight table.
func (c *Config) SourceWeights() map[string]int {
	weights := make(map[string]int, len(c.Sources))
	for _, s := range c.Sources {
		weights[s.Name] = s.Weight
	}
	return weights
}

// FindSource returns the source with the given logical name.
func (c *Config) FindSource(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}
