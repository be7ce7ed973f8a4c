package abstraction

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/poker"
)

const (
	// DefaultLossyTrials is the Monte-Carlo sample size behind one postflop bucket.
	DefaultLossyTrials = 1000

	// BucketWidth is the EHS step between adjacent lossy buckets.
	BucketWidth = 0.005
)

// BucketFromEHS returns the smallest b >= 0 with ehs <= b*BucketWidth. Negative EHS
// values all land in bucket 0.
func BucketFromEHS(ehs float64) int {
	b := 0
	for ehs > float64(b)*BucketWidth {
		b++
	}
	return b
}

// Bucketer abstracts hole cards into buckets: lossless preflop via the canonical list,
// lossy on the flop, turn and river via equity estimation.
type Bucketer struct {
	list   *CanonicalList
	est    *equity.Estimator
	trials int
	logger *log.Logger
}

// BucketerOption configures a Bucketer.
type BucketerOption func(*Bucketer)

// WithTrials sets the sample size per lossy bucket.
func WithTrials(n int) BucketerOption {
	return func(b *Bucketer) { b.trials = n }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) BucketerOption {
	return func(b *Bucketer) { b.logger = l }
}

// NewBucketer combines a canonical list and an estimator.
func NewBucketer(list *CanonicalList, est *equity.Estimator, opts ...BucketerOption) (*Bucketer, error) {
	if list == nil || est == nil {
		return nil, fmt.Errorf("%w: bucketer needs a canonical list and an estimator", poker.ErrMissingResource)
	}
	b := &Bucketer{
		list:   list,
		est:    est,
		trials: DefaultLossyTrials,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.trials <= 0 {
		return nil, fmt.Errorf("%w: lossy trials must be positive, got %d", poker.ErrInvalidInput, b.trials)
	}
	return b, nil
}

// Lossless returns the preflop bucket (1..169) of the hole cards.
func (b *Bucketer) Lossless(hole [2]poker.Card) (int, error) {
	return b.list.Lossless(hole)
}

// Lossy buckets a postflop holding using the estimator's configured strategy.
func (b *Bucketer) Lossy(ctx context.Context, board []poker.Card, hole [2]poker.Card, rng *rand.Rand) (int, error) {
	return b.lossy(ctx, board, hole, rng, b.est.Estimate)
}

// LossySingle is Lossy restricted to the calling goroutine.
func (b *Bucketer) LossySingle(ctx context.Context, board []poker.Card, hole [2]poker.Card, rng *rand.Rand) (int, error) {
	return b.lossy(ctx, board, hole, rng, b.est.Sequential)
}

type estimateFunc func(ctx context.Context, board, hero []poker.Card, trials int, rng *rand.Rand) (equity.Result, error)

func (b *Bucketer) lossy(ctx context.Context, board []poker.Card, hole [2]poker.Card, rng *rand.Rand, estimate estimateFunc) (int, error) {
	if len(board) < 3 || len(board) > 5 {
		return 0, fmt.Errorf("%w: lossy bucketing needs 3 to 5 board cards, got %d", poker.ErrInvalidInput, len(board))
	}
	res, err := estimate(ctx, board, hole[:], b.trials, rng)
	if err != nil {
		return 0, err
	}
	bucket := BucketFromEHS(res.EHS())
	b.logger.Debug("lossy bucket", "board", board, "hole", hole[:], "ehs", res.EHS(), "bucket", bucket)
	return bucket, nil
}
