package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdemtree/internal/abstraction"
	"github.com/lox/holdemtree/internal/config"
	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/poker"
)

// Globals are flags shared by every subcommand.
type Globals struct {
	Config   string `short:"c" help:"HCL configuration file" default:"holdemtree.hcl" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides the config file"`
	NoColor  bool   `help:"Disable colored output" env:"NO_COLOR"`

	Out io.Writer `kong:"-"`
}

// env is everything a subcommand needs once configuration is loaded.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	out    io.Writer
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	if g.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	return &env{cfg: cfg, logger: logger, out: out}, nil
}

// evaluator loads the configured rank table, or builds one when no path is set.
func (e *env) evaluator() (*poker.Evaluator, error) {
	var table *poker.RankTable
	if path := e.cfg.Resources.RankTable; path != "" {
		start := time.Now()
		t, err := poker.LoadRankTableFile(path)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("Loaded rank table", "path", path, "elapsed", time.Since(start))
		table = t
	} else {
		start := time.Now()
		table = poker.GenerateRankTable()
		e.logger.Debug("Generated rank table", "entries", table.Len(), "elapsed", time.Since(start))
	}
	return poker.NewEvaluator(table)
}

// canonicalList loads the configured list. Without a file the embedded list serves
// the full deck and a short deck gets a generated one.
func (e *env) canonicalList() (*abstraction.CanonicalList, error) {
	if path := e.cfg.Resources.CanonicalHands; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", poker.ErrMissingResource, err)
		}
		defer f.Close()
		return abstraction.LoadCanonicalList(f)
	}
	ranks, err := e.cfg.DeckRanks()
	if err != nil {
		return nil, err
	}
	if len(ranks) == 0 {
		return abstraction.DefaultCanonicalList(), nil
	}
	return abstraction.GenerateCanonicalList(ranks...)
}

func (e *env) estimator(eval *poker.Evaluator, extra ...equity.Option) (*equity.Estimator, error) {
	opts, err := e.cfg.EquityOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, equity.WithLogger(e.logger.WithPrefix("equity")))
	return equity.New(eval, append(opts, extra...)...)
}

func (e *env) bucketer(eval *poker.Evaluator) (*abstraction.Bucketer, error) {
	list, err := e.canonicalList()
	if err != nil {
		return nil, err
	}
	est, err := e.estimator(eval)
	if err != nil {
		return nil, err
	}
	return abstraction.NewBucketer(list, est,
		abstraction.WithTrials(e.cfg.Abstraction.LossyTrials),
		abstraction.WithLogger(e.logger.WithPrefix("abstraction")),
	)
}

// seedOrNow treats zero as a request for a time-based seed.
func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// parseHole accepts two cards ("AsKd") or a holding class ("AKs", "AKo", "AA"), which
// stands for a representative pair of cards in that class.
func parseHole(s string) ([2]poker.Card, error) {
	var hole [2]poker.Card
	cards, err := poker.ParseCards(s)
	if err != nil {
		hi, lo, suited, nerr := poker.ParseHoleNotation(s)
		if nerr != nil {
			return hole, err
		}
		loSuit := poker.Spades
		if suited {
			loSuit = poker.Hearts
		}
		return [2]poker.Card{poker.NewCard(hi, poker.Hearts), poker.NewCard(lo, loSuit)}, nil
	}
	if len(cards) != 2 {
		return hole, fmt.Errorf("%w: hole needs 2 cards, got %d", poker.ErrInvalidInput, len(cards))
	}
	copy(hole[:], cards)
	return hole, nil
}
