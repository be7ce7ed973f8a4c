// Package equity estimates how often a two-card holding beats one random opponent hand
// by Monte-Carlo completion of the board.
package equity

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemtree/internal/randutil"
	"github.com/lox/holdemtree/poker"
)

// checkEvery is how many trials run between context and budget checks.
const checkEvery = 64

// maxWorkers caps the parallel pool; more workers stop paying off past this.
const maxWorkers = 8

// Strategy selects how trials are scheduled.
type Strategy int

const (
	Parallel Strategy = iota
	Sequential
)

func (s Strategy) String() string {
	switch s {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "parallel" or "sequential".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "parallel":
		return Parallel, nil
	case "sequential":
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", poker.ErrInvalidInput, s)
}

// Result holds win/tie/loss counts from the hero's point of view.
type Result struct {
	Wins      int
	Ties      int
	Losses    int
	Trials    int
	Truncated bool // the time budget ran out before all requested trials
}

// EHS is Wins/(2·Trials) + Ties/Trials − Losses/Trials. It ranges over [-1, 1] and is
// not a probability. A result with no trials scores 0.
func (r Result) EHS() float64 {
	if r.Trials == 0 {
		return 0
	}
	t := float64(r.Trials)
	return float64(r.Wins)/(2*t) + float64(r.Ties)/t - float64(r.Losses)/t
}

// Equity is the conventional share of the pot won: (Wins + Ties/2) / Trials.
func (r Result) Equity() float64 {
	if r.Trials == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Trials)
}

func (r *Result) add(o Result) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Losses += o.Losses
	r.Trials += o.Trials
	r.Truncated = r.Truncated || o.Truncated
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithStrategy picks sequential or parallel scheduling for Estimate.
func WithStrategy(s Strategy) Option {
	return func(e *Estimator) { e.strategy = s }
}

// WithWorkers sets the parallel pool size. Zero or less means NumCPU capped at 8.
func WithWorkers(n int) Option {
	return func(e *Estimator) { e.workers = n }
}

// WithClock injects the clock the time budget is measured on.
func WithClock(c quartz.Clock) Option {
	return func(e *Estimator) { e.clock = c }
}

// WithMaxDuration bounds each estimate by wall-clock time. Zero disables the budget.
func WithMaxDuration(d time.Duration) Option {
	return func(e *Estimator) { e.maxDuration = d }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Estimator) { e.logger = l }
}

// WithUniverse restricts sampling to the given deck, for short-deck play.
func WithUniverse(h poker.Hand) Option {
	return func(e *Estimator) { e.universe = h }
}

// Estimator runs equity simulations against a shared evaluator. It holds no mutable
// state and is safe for concurrent use.
type Estimator struct {
	eval        *poker.Evaluator
	strategy    Strategy
	workers     int
	clock       quartz.Clock
	maxDuration time.Duration
	logger      *log.Logger
	universe    poker.Hand
}

// New builds an Estimator around eval.
func New(eval *poker.Evaluator, opts ...Option) (*Estimator, error) {
	if eval == nil {
		return nil, fmt.Errorf("%w: evaluator is nil", poker.ErrMissingResource)
	}
	full, _ := poker.Universe(nil)
	e := &Estimator{
		eval:     eval,
		strategy: Parallel,
		clock:    quartz.NewReal(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		universe: full,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = min(runtime.NumCPU(), maxWorkers)
	}
	if e.universe.CountCards() < 9 {
		return nil, fmt.Errorf("%w: deck of %d cards is too small", poker.ErrInvalidInput, e.universe.CountCards())
	}
	return e, nil
}

// Strategy reports the configured scheduling strategy.
func (e *Estimator) Strategy() Strategy {
	return e.strategy
}

// Estimate dispatches to Sequential or Parallel according to the configured strategy.
func (e *Estimator) Estimate(ctx context.Context, board, hero []poker.Card, trials int, rng *rand.Rand) (Result, error) {
	if e.strategy == Sequential {
		return e.Sequential(ctx, board, hero, trials, rng)
	}
	return e.Parallel(ctx, board, hero, trials, rng)
}

// job is the validated, read-only input shared by every worker.
type job struct {
	board    []poker.Card
	hero     []poker.Card
	unseen   []poker.Card
	deadline time.Time
}

func (e *Estimator) prepare(board, hero []poker.Card, trials int, rng *rand.Rand) (*job, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", poker.ErrInvalidInput)
	}
	if len(hero) != 2 {
		return nil, fmt.Errorf("%w: hero needs 2 cards, got %d", poker.ErrInvalidInput, len(hero))
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("%w: board has %d cards, at most 5 allowed", poker.ErrInvalidInput, len(board))
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", poker.ErrInvalidInput, trials)
	}
	seen, err := poker.DistinctHand(append(append([]poker.Card{}, hero...), board...))
	if err != nil {
		return nil, err
	}
	if seen&^e.universe != 0 {
		return nil, fmt.Errorf("%w: cards outside the deck in use", poker.ErrInvalidInput)
	}

	j := &job{
		board:  board,
		hero:   hero,
		unseen: (e.universe &^ seen).Cards(),
	}
	if e.maxDuration > 0 {
		j.deadline = e.clock.Now().Add(e.maxDuration)
	}
	return j, nil
}

// Sequential runs all trials on the calling goroutine.
func (e *Estimator) Sequential(ctx context.Context, board, hero []poker.Card, trials int, rng *rand.Rand) (Result, error) {
	j, err := e.prepare(board, hero, trials, rng)
	if err != nil {
		return Result{}, err
	}
	res, err := e.run(ctx, j, trials, rng, nil)
	if err != nil {
		return Result{}, err
	}
	e.logger.Debug("equity estimated", "strategy", Sequential, "trials", res.Trials, "truncated", res.Truncated)
	return res, nil
}

// Parallel partitions trials across a worker pool. Each worker draws from its own stream
// seeded from rng; counts are summed once every worker has finished.
func (e *Estimator) Parallel(ctx context.Context, board, hero []poker.Card, trials int, rng *rand.Rand) (Result, error) {
	j, err := e.prepare(board, hero, trials, rng)
	if err != nil {
		return Result{}, err
	}

	workers := min(e.workers, trials)
	perWorker, remainder := trials/workers, trials%workers

	results := make([]Result, workers)
	var expired atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		workerRng := randutil.New(randutil.Derive(rng.Int64(), uint64(w)))
		g.Go(func() error {
			res, err := e.run(gctx, j, n, workerRng, &expired)
			if err != nil {
				return err
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.add(r)
	}
	e.logger.Debug("equity estimated", "strategy", Parallel, "workers", workers, "trials", total.Trials, "truncated", total.Truncated)
	return total, nil
}

// run performs n trials. expired, when non-nil, is shared between workers so that the
// first one to notice the deadline stops the others too.
func (e *Estimator) run(ctx context.Context, j *job, n int, rng *rand.Rand, expired *atomic.Bool) (Result, error) {
	var res Result
	scratch := make([]poker.Card, len(j.unseen))
	need := 5 - len(j.board)
	hole := poker.NewHand(j.hero...)
	board := poker.NewHand(j.board...)

	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			if e.budgetSpent(j, expired) {
				res.Truncated = true
				break
			}
		}

		copy(scratch, j.unseen)
		drawn := partialShuffle(scratch, 2+need, rng)
		runout := board | poker.NewHand(drawn[2:]...)

		hs, err := e.eval.EvaluateHand(hole | runout)
		if err != nil {
			return Result{}, err
		}
		vs, err := e.eval.EvaluateHand(poker.NewHand(drawn[0], drawn[1]) | runout)
		if err != nil {
			return Result{}, err
		}
		switch poker.CompareStrengths(hs, vs) {
		case 1:
			res.Wins++
		case 0:
			res.Ties++
		default:
			res.Losses++
		}
		res.Trials++
	}
	return res, nil
}

func (e *Estimator) budgetSpent(j *job, expired *atomic.Bool) bool {
	if j.deadline.IsZero() {
		return false
	}
	if expired != nil && expired.Load() {
		return true
	}
	if e.clock.Now().Before(j.deadline) {
		return false
	}
	if expired != nil {
		expired.Store(true)
	}
	return true
}

// partialShuffle moves k uniformly chosen cards to the front of cards and returns them.
func partialShuffle(cards []poker.Card, k int, rng *rand.Rand) []poker.Card {
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(cards)-i)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards[:k]
}
