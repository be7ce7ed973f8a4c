package poker

import (
	rand "math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvaluator(t testing.TB) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(testTable(t))
	require.NoError(t, err)
	return e
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	e := testEvaluator(t)
	tests := []struct {
		cards string
		want  Category
	}{
		{"AsKsQsJsTs2c3d", StraightFlush},
		{"5h4h3h2hAh9c9d", StraightFlush},
		{"9s9h9d9cKs2c3d", FourOfAKind},
		{"KsKhKd2c2h7s8s", FullHouse},
		{"As9s7s4s2sKhQd", Flush},
		{"Ts9h8d7c6s2c2d", Straight},
		{"Ah2d3c4s5hKcQd", Straight},
		{"7s7h7dAcKs2h4d", ThreeOfAKind},
		{"AsAhKdKc7s4h2d", TwoPair},
		{"QsQh9d7c5s3h2d", Pair},
		{"AsJh9d7c5s3h2d", HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			s, err := e.Evaluate(MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Category(), "strength %d", s)
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	e := testEvaluator(t)
	tests := []struct {
		name          string
		better, worse string
	}{
		{"flush beats straight", "2h5h9hJhKh3c4d", "Ts9h8d7c6s2c2d"},
		{"higher kicker", "AsKh9d7c5s3h2d", "AsQh9d7c5s3h2d"},
		{"ace high flush beats king high", "As6s4s3s2sTdJc", "KsQsJs9s8s2d3c"},
		{"six high straight beats wheel", "6h5d4c3s2hKcQd", "Ah2d3c4s5hKcQd"},
		{"two pair kicker", "AsAhKdKcQs4h2d", "AsAhKdKcJs4h2d"},
		{"trips over two pair", "2s2h2dAcKs9h4d", "AsAhKdKc7s4h2d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Evaluate(MustParseCards(tt.better))
			require.NoError(t, err)
			w, err := e.Evaluate(MustParseCards(tt.worse))
			require.NoError(t, err)
			assert.Equal(t, 1, CompareStrengths(b, w), "%d vs %d", b, w)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	e := testEvaluator(t)

	_, err := e.Evaluate(MustParseCards("AsKsQsJsTs2c"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.Evaluate(MustParseCards("AsKsQsJsTs2c2c"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.EvaluateHand(NewHand(MustParseCards("AsKs")...))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewEvaluator(nil)
	assert.ErrorIs(t, err, ErrMissingResource)
}

func toOracle(t *testing.T, cards []Card) *[7]ph.Card {
	t.Helper()
	var out [7]ph.Card
	for i, c := range cards {
		r := ph.Rank(c.Rank())
		if c.Rank() == Ace {
			r = 1
		}
		pc, err := ph.MakeCard(ph.Suit(c.Suit()), r)
		require.NoError(t, err)
		out[i] = pc
	}
	return &out
}

// TestEvaluateAgreesWithReferenceEvaluator compares hand orderings against an independent
// evaluator on random deals.
func TestEvaluateAgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()
	e := testEvaluator(t)
	rng := rand.New(rand.NewPCG(42, 1337))

	sign := func(v int) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}

	for i := 0; i < 20000; i++ {
		d, err := NewDeckWithRanks(rng, AllRanks)
		require.NoError(t, err)
		order := d.Order()
		a, b := order[:7], order[7:14]

		sa, err := e.Evaluate(a)
		require.NoError(t, err)
		sb, err := e.Evaluate(b)
		require.NoError(t, err)

		want := sign(int(ph.Eval7(toOracle(t, a))) - int(ph.Eval7(toOracle(t, b))))
		require.Equal(t, want, CompareStrengths(sa, sb), "%v vs %v", a, b)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	e, err := NewEvaluator(testTable(b))
	require.NoError(b, err)
	cards := MustParseCards("AsKdQh9c7s3d2h")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Evaluate(cards)
	}
}
