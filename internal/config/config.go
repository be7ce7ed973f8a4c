// Package config loads the HCL configuration shared by the holdemtree commands.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/internal/game"
	"github.com/lox/holdemtree/poker"
)

// Config is the complete configuration file.
type Config struct {
	Game        *GameSettings        `hcl:"game,block"`
	Abstraction *AbstractionSettings `hcl:"abstraction,block"`
	Resources   *ResourceSettings    `hcl:"resources,block"`
	LogLevel    string               `hcl:"log_level,optional"`
}

// GameSettings configures each dealt hand.
type GameSettings struct {
	SmallBlind int    `hcl:"small_blind,optional"`
	BigBlind   int    `hcl:"big_blind,optional"`
	Stack      int    `hcl:"stack,optional"`
	TiePolicy  string `hcl:"tie_policy,optional"`
	Seed       int64  `hcl:"seed,optional"`
	DeckRanks  []int  `hcl:"deck_ranks,optional"`
}

// AbstractionSettings configures equity estimation behind postflop buckets.
type AbstractionSettings struct {
	LossyTrials int    `hcl:"lossy_trials,optional"`
	Strategy    string `hcl:"strategy,optional"`
	Workers     int    `hcl:"workers,optional"`
	MaxDuration string `hcl:"max_duration,optional"`
}

// ResourceSettings points at reference data files. Empty paths mean the rank table is
// generated in-process and the embedded canonical hand list is used.
type ResourceSettings struct {
	RankTable      string `hcl:"rank_table,optional"`
	CanonicalHands string `hcl:"canonical_hands,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse reads configuration from HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in every value the file left out.
func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Abstraction == nil {
		c.Abstraction = &AbstractionSettings{}
	}
	if c.Resources == nil {
		c.Resources = &ResourceSettings{}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Game.SmallBlind == 0 {
		c.Game.SmallBlind = 50
	}
	if c.Game.BigBlind == 0 {
		c.Game.BigBlind = c.Game.SmallBlind * 2
	}
	if c.Game.Stack == 0 {
		c.Game.Stack = c.Game.BigBlind * 100
	}
	if c.Game.TiePolicy == "" {
		c.Game.TiePolicy = "split"
	}

	if c.Abstraction.LossyTrials == 0 {
		c.Abstraction.LossyTrials = 1000
	}
	if c.Abstraction.Strategy == "" {
		c.Abstraction.Strategy = "parallel"
	}
	if c.Abstraction.MaxDuration == "" {
		c.Abstraction.MaxDuration = "0s"
	}
}

// Validate checks values that decoding alone cannot.
func (c *Config) Validate() error {
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("game: small blind must be positive")
	}
	if c.Game.BigBlind < c.Game.SmallBlind {
		return fmt.Errorf("game: big blind must be at least the small blind")
	}
	if c.Game.Stack < c.Game.BigBlind {
		return fmt.Errorf("game: stack must cover the big blind")
	}
	if _, err := c.TiePolicy(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := c.DeckRanks(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Abstraction.LossyTrials < 0 {
		return fmt.Errorf("abstraction: lossy_trials must be positive")
	}
	if c.Abstraction.Workers < 0 {
		return fmt.Errorf("abstraction: workers must not be negative")
	}
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("abstraction: %w", err)
	}
	if _, err := c.MaxDuration(); err != nil {
		return fmt.Errorf("abstraction: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// TiePolicy parses game.tie_policy.
func (c *Config) TiePolicy() (game.TiePolicy, error) {
	return game.ParseTiePolicy(c.Game.TiePolicy)
}

// Strategy parses abstraction.strategy.
func (c *Config) Strategy() (equity.Strategy, error) {
	return equity.ParseStrategy(c.Abstraction.Strategy)
}

// MaxDuration parses abstraction.max_duration.
func (c *Config) MaxDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Abstraction.MaxDuration)
	if err != nil {
		return 0, fmt.Errorf("%w: max_duration %q", poker.ErrInvalidInput, c.Abstraction.MaxDuration)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: max_duration must not be negative", poker.ErrInvalidInput)
	}
	return d, nil
}

// DeckRanks converts game.deck_ranks (2..14) to ranks. Empty means the full deck.
func (c *Config) DeckRanks() ([]poker.Rank, error) {
	ranks := make([]poker.Rank, 0, len(c.Game.DeckRanks))
	seen := map[int]bool{}
	for _, r := range c.Game.DeckRanks {
		if r < int(poker.Two) || r > int(poker.Ace) {
			return nil, fmt.Errorf("%w: deck rank %d out of range 2..14", poker.ErrInvalidInput, r)
		}
		if seen[r] {
			return nil, fmt.Errorf("%w: deck rank %d repeated", poker.ErrInvalidInput, r)
		}
		seen[r] = true
		ranks = append(ranks, poker.Rank(r))
	}
	if len(ranks) > 0 && len(ranks)*4 < 9 {
		return nil, fmt.Errorf("%w: a deck of %d ranks cannot deal a hand", poker.ErrInvalidInput, len(ranks))
	}
	return ranks, nil
}

// EquityOptions translates the abstraction block into estimator options.
func (c *Config) EquityOptions() ([]equity.Option, error) {
	strategy, err := c.Strategy()
	if err != nil {
		return nil, err
	}
	maxDuration, err := c.MaxDuration()
	if err != nil {
		return nil, err
	}
	ranks, err := c.DeckRanks()
	if err != nil {
		return nil, err
	}
	universe, err := poker.Universe(ranks)
	if err != nil {
		return nil, err
	}
	return []equity.Option{
		equity.WithStrategy(strategy),
		equity.WithWorkers(c.Abstraction.Workers),
		equity.WithMaxDuration(maxDuration),
		equity.WithUniverse(universe),
	}, nil
}

// GameConfig translates the game block. The caller supplies evaluator, abstractor
// and logger.
func (c *Config) GameConfig() (game.Config, error) {
	policy, err := c.TiePolicy()
	if err != nil {
		return game.Config{}, err
	}
	ranks, err := c.DeckRanks()
	if err != nil {
		return game.Config{}, err
	}
	cfg := game.DefaultConfig()
	cfg.SmallBlind = c.Game.SmallBlind
	cfg.BigBlind = c.Game.BigBlind
	cfg.Stack = c.Game.Stack
	cfg.TiePolicy = policy
	cfg.Seed = c.Game.Seed
	cfg.DeckRanks = ranks
	return cfg, nil
}
