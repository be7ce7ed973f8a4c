package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/internal/game"
	"github.com/lox/holdemtree/poker"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Game.SmallBlind)
	assert.Equal(t, 100, cfg.Game.BigBlind)
	assert.Equal(t, 10000, cfg.Game.Stack)
	assert.Equal(t, "split", cfg.Game.TiePolicy)
	assert.Equal(t, 1000, cfg.Abstraction.LossyTrials)
	assert.Equal(t, "parallel", cfg.Abstraction.Strategy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Resources.RankTable)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "holdemtree.hcl")
	src := `
game {
  small_blind = 5
  big_blind   = 10
  stack       = 1000
  tie_policy  = "reset"
  seed        = 99
  deck_ranks  = [10, 11, 12, 13, 14]
}

abstraction {
  lossy_trials = 250
  strategy     = "sequential"
  workers      = 2
  max_duration = "150ms"
}

resources {
  rank_table = "/tmp/ranks.bin"
}

log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	policy, err := cfg.TiePolicy()
	require.NoError(t, err)
	assert.Equal(t, game.TiePolicyReset, policy)

	strategy, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Equal(t, equity.Sequential, strategy)

	d, err := cfg.MaxDuration()
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d)

	ranks, err := cfg.DeckRanks()
	require.NoError(t, err)
	assert.Equal(t, []poker.Rank{poker.Ten, poker.Jack, poker.Queen, poker.King, poker.Ace}, ranks)

	gc, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, gc.SmallBlind)
	assert.Equal(t, 10, gc.BigBlind)
	assert.Equal(t, 1000, gc.Stack)
	assert.Equal(t, int64(99), gc.Seed)

	opts, err := cfg.EquityOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	assert.Equal(t, "/tmp/ranks.bin", cfg.Resources.RankTable)
	assert.Empty(t, cfg.Resources.CanonicalHands)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseDefaultsPartialBlocks(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`game { big_blind = 40 }`), "partial.hcl")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Game.SmallBlind)
	assert.Equal(t, 40, cfg.Game.BigBlind)
	assert.Error(t, cfg.Validate(), "big blind below small blind")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte(`game {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`unknown = 1`), "unknown.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tie policy", func(c *Config) { c.Game.TiePolicy = "chop" }},
		{"strategy", func(c *Config) { c.Abstraction.Strategy = "gpu" }},
		{"duration", func(c *Config) { c.Abstraction.MaxDuration = "soon" }},
		{"negative duration", func(c *Config) { c.Abstraction.MaxDuration = "-1s" }},
		{"rank range", func(c *Config) { c.Game.DeckRanks = []int{1, 2, 3} }},
		{"rank repeated", func(c *Config) { c.Game.DeckRanks = []int{14, 14, 13} }},
		{"tiny deck", func(c *Config) { c.Game.DeckRanks = []int{14, 13} }},
		{"workers", func(c *Config) { c.Abstraction.Workers = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"stack", func(c *Config) { c.Game.Stack = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
