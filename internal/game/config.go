package game

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtree/poker"
)

// Abstractor maps hole cards to buckets. Lossless handles preflop; Lossy handles a
// board of 3 to 5 cards and may sample from rng.
type Abstractor interface {
	Lossless(hole [2]poker.Card) (int, error)
	Lossy(ctx context.Context, board []poker.Card, hole [2]poker.Card, rng *rand.Rand) (int, error)
}

// Config describes one hand.
type Config struct {
	Players    int // must be 2; zero means 2
	SmallBlind int
	BigBlind   int
	Stack      int
	TiePolicy  TiePolicy
	Seed       int64
	DeckRanks  []poker.Rank // empty means the full deck
	Deck       []poker.Card // optional fixed deal order, overrides Seed and DeckRanks

	Evaluator  *poker.Evaluator
	Abstractor Abstractor
	Logger     *log.Logger
}

// DefaultConfig returns 50/100 blinds with 10000 chip stacks. Callers still supply
// the evaluator and abstractor.
func DefaultConfig() Config {
	return Config{
		Players:    2,
		SmallBlind: 50,
		BigBlind:   100,
		Stack:      10000,
		TiePolicy:  TiePolicySplit,
	}
}

// Validate checks the configuration before a hand is dealt.
func (c Config) Validate() error {
	if c.Players != 0 && c.Players != 2 {
		return fmt.Errorf("%w: heads-up only, got %d players", poker.ErrInvalidInput, c.Players)
	}
	if c.SmallBlind <= 0 || c.BigBlind < c.SmallBlind {
		return fmt.Errorf("%w: blinds %d/%d", poker.ErrInvalidInput, c.SmallBlind, c.BigBlind)
	}
	if c.Stack < c.BigBlind {
		return fmt.Errorf("%w: stack %d is smaller than the big blind", poker.ErrInvalidInput, c.Stack)
	}
	if c.TiePolicy != TiePolicySplit && c.TiePolicy != TiePolicyReset {
		return fmt.Errorf("%w: tie policy %d", poker.ErrInvalidInput, c.TiePolicy)
	}
	if c.Evaluator == nil {
		return fmt.Errorf("%w: evaluator is required", poker.ErrMissingResource)
	}
	if c.Abstractor == nil {
		return fmt.Errorf("%w: abstractor is required", poker.ErrMissingResource)
	}
	return nil
}

// rules is the part of Config every state of a hand shares.
type rules struct {
	smallBlind int
	bigBlind   int
	tiePolicy  TiePolicy
	seed       int64
	eval       *poker.Evaluator
	abstractor Abstractor
	logger     *log.Logger
}

func newRules(c Config) *rules {
	logger := c.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &rules{
		smallBlind: c.SmallBlind,
		bigBlind:   c.BigBlind,
		tiePolicy:  c.TiePolicy,
		seed:       c.Seed,
		eval:       c.Evaluator,
		abstractor: c.Abstractor,
		logger:     logger.WithPrefix("game"),
	}
}
