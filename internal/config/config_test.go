package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewise-kr/buyerscout/internal/common"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()

	require.Len(t, sources, 6)
	names := make(map[string]bool, len(sources))
	for _, s := range sources {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Filename)
		assert.False(t, names[s.Name], "duplicate source name %s", s.Name)
		names[s.Name] = true
	}
}

func TestLoadRejectsNonPositiveMaxResults(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("max_results", -1)

	_, err := Load()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSourceWeights(t *testing.T) {
	cfg := &Config{Sources: []Source{
		{Name: "kotra", Weight: 4},
		{Name: "buykorea", Weight: 6},
		{Name: "noise", Weight: 0},
	}}

	weights := cfg.SourceWeights()

	assert.Equal(t, map[string]int{"kotra": 4, "buykorea": 6, "noise": 0}, weights)
}

func TestFindSource(t *testing.T) {
	cfg := &Config{Sources: DefaultSources()}

	src, ok := cfg.FindSource("kotra_overseas_buyers_20240829")
	require.True(t, ok)
	assert.Equal(t, 4, src.Weight)

	_, ok = cfg.FindSource("unknown")
	assert.False(t, ok)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/.local/share/buyerscout", filepath.Join(home, ".local/share/buyerscout")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestExpandPathEnvVars(t *testing.T) {
	t.Setenv("BUYERSCOUT_TEST_DIR", "/srv/data")

	assert.Equal(t, "/srv/data/buyers", ExpandPath("$BUYERSCOUT_TEST_DIR/buyers"))
}
