package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckHoldsDistinctCards(t *testing.T) {
	t.Parallel()
	d, err := NewDeckWithRanks(rand.New(rand.NewPCG(1, 2)), AllRanks)
	require.NoError(t, err)

	order := d.Order()
	require.Len(t, order, 52)
	h, err := DistinctHand(order)
	require.NoError(t, err)
	assert.Equal(t, 52, h.CountCards())
}

func TestDeckSameSeedSameOrder(t *testing.T) {
	t.Parallel()
	a, err := NewDeckWithRanks(rand.New(rand.NewPCG(7, 7)), nil)
	require.NoError(t, err)
	b, err := NewDeckWithRanks(rand.New(rand.NewPCG(7, 7)), nil)
	require.NoError(t, err)
	assert.Equal(t, a.Order(), b.Order())

	c, err := NewDeckWithRanks(rand.New(rand.NewPCG(8, 8)), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Order(), c.Order())
}

func TestDeckOrderIsACopy(t *testing.T) {
	t.Parallel()
	d, err := NewDeckWithRanks(rand.New(rand.NewPCG(1, 1)), nil)
	require.NoError(t, err)
	order := d.Order()
	first := order[0]
	order[0] = Card{}
	assert.Equal(t, first, d.Order()[0])
}

func TestShortDeck(t *testing.T) {
	t.Parallel()
	d, err := NewDeckWithRanks(rand.New(rand.NewPCG(3, 4)), []Rank{Ten, Jack, Queen, King, Ace})
	require.NoError(t, err)
	assert.Len(t, d.Order(), 20)
	for _, c := range d.Order() {
		assert.GreaterOrEqual(t, c.Rank(), Ten)
	}

	_, err = NewDeckWithRanks(nil, []Rank{1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
