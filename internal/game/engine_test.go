package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtree/poker"
)

func TestPotAdd(t *testing.T) {
	t.Parallel()
	var p Pot
	p2, err := p.Add(0, 50)
	require.NoError(t, err)
	p3, err := p2.Add(1, 100)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Total())
	assert.Equal(t, 50, p2.Total())
	assert.Equal(t, 150, p3.Total())
	assert.Equal(t, 100, p3.HighestContribution())

	_, err = p3.Add(0, -1)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
	_, err = p3.Add(2, 1)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func testTable(t *testing.T, deck string) Table {
	t.Helper()
	d, err := NewDealerWithOrder(poker.MustParseCards(deck))
	require.NoError(t, err)
	tbl, err := NewTable(d, [2]int{1000, 1000})
	require.NoError(t, err)
	return tbl
}

func TestRoundSetup(t *testing.T) {
	t.Parallel()
	tbl, err := RoundSetup(testTable(t, "AsKs"), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, tbl.Pot().Total())
	assert.Equal(t, 995, tbl.Player(0).Chips)
	assert.Equal(t, 990, tbl.Player(1).Chips)
	assert.True(t, tbl.Player(0).SmallBlind)
	assert.True(t, tbl.Player(1).BigBlind)

	_, err = RoundSetup(testTable(t, "AsKs"), 10, 5)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
	_, err = RoundSetup(testTable(t, "AsKs"), 5, 5000)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestComputePayoutNeedsOneActivePlayer(t *testing.T) {
	t.Parallel()
	tbl, err := RoundSetup(testTable(t, "AsKs"), 5, 10)
	require.NoError(t, err)

	_, err = ComputePayout(tbl)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)

	folded := tbl.withPlayer(1, func(p *Player) { p.Active = false })
	paid, err := ComputePayout(folded)
	require.NoError(t, err)
	assert.Equal(t, 1010, paid.Player(0).Chips)
	assert.Equal(t, 0, paid.Pot().Total())
	assert.Equal(t, 2000, paid.TotalChips())
	// The input table is untouched.
	assert.Equal(t, 995, folded.Player(0).Chips)
}

func TestComputeWinnerReturnsUncalledChips(t *testing.T) {
	t.Parallel()
	tbl := testTable(t, "AhAd KcQd 2s7h9c3d4s")
	tbl, err := tbl.dealPrivate()
	require.NoError(t, err)
	tbl, err = tbl.dealCommunity(5)
	require.NoError(t, err)
	tbl, err = tbl.contribute(0, 300)
	require.NoError(t, err)
	tbl, err = tbl.contribute(1, 1000)
	require.NoError(t, err)

	// Seat 0 wins with aces but only 300 of seat 1's 1000 was matched.
	tbl, err = ComputeWinner(tbl, testEvaluator(t), TiePolicySplit)
	require.NoError(t, err)
	assert.Equal(t, 1300, tbl.Player(0).Chips)
	assert.Equal(t, 700, tbl.Player(1).Chips)
	assert.Equal(t, 0, tbl.Pot().Total())
}

func TestComputeWinnerTiePolicies(t *testing.T) {
	t.Parallel()
	// Both seats play the royal flush on the board.
	board := func(t *testing.T) Table {
		tbl := testTable(t, "2c2d 3c3h AsKsQsJsTs")
		tbl, err := tbl.dealPrivate()
		require.NoError(t, err)
		tbl, err = tbl.dealCommunity(5)
		require.NoError(t, err)
		return tbl
	}

	t.Run("uncalled refund makes policies agree", func(t *testing.T) {
		for _, policy := range []TiePolicy{TiePolicySplit, TiePolicyReset} {
			tbl := board(t)
			tbl, err := tbl.contribute(0, 300)
			require.NoError(t, err)
			tbl, err = tbl.contribute(1, 1000)
			require.NoError(t, err)

			tbl, err = ComputeWinner(tbl, testEvaluator(t), policy)
			require.NoError(t, err)
			assert.Equal(t, 1000, tbl.Player(0).Chips, policy.String())
			assert.Equal(t, 1000, tbl.Player(1).Chips, policy.String())
			assert.Equal(t, 0, tbl.Pot().Total(), policy.String())
		}
	})

	t.Run("dead money separates policies", func(t *testing.T) {
		tbl := board(t)
		tbl, err := tbl.contribute(0, 200)
		require.NoError(t, err)
		tbl, err = tbl.contribute(1, 200)
		require.NoError(t, err)
		for seat := range 2 {
			tbl.pot, err = tbl.pot.Add(seat, 50)
			require.NoError(t, err)
		}

		split, err := ComputeWinner(tbl, testEvaluator(t), TiePolicySplit)
		require.NoError(t, err)
		assert.Equal(t, 1050, split.Player(0).Chips)
		assert.Equal(t, 1050, split.Player(1).Chips)
		assert.Equal(t, 0, split.Pot().Total())

		reset, err := ComputeWinner(tbl, testEvaluator(t), TiePolicyReset)
		require.NoError(t, err)
		assert.Equal(t, 1000, reset.Player(0).Chips)
		assert.Equal(t, 1000, reset.Player(1).Chips)
		assert.Equal(t, 0, reset.Pot().Total())
	})
}

func TestComputeWinnerNeedsFullBoard(t *testing.T) {
	t.Parallel()
	tbl := testTable(t, "AhAd KcQd 2s7h9c")
	_, err := ComputeWinner(tbl, testEvaluator(t), TiePolicySplit)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestParseTiePolicy(t *testing.T) {
	t.Parallel()
	p, err := ParseTiePolicy("reset")
	require.NoError(t, err)
	assert.Equal(t, TiePolicyReset, p)
	p, err = ParseTiePolicy("")
	require.NoError(t, err)
	assert.Equal(t, TiePolicySplit, p)
	_, err = ParseTiePolicy("chop")
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestDealerSharesOrder(t *testing.T) {
	t.Parallel()
	d, err := NewDealerWithOrder(poker.MustParseCards("AsKsQs"))
	require.NoError(t, err)
	first, d2, err := d.Deal(2)
	require.NoError(t, err)
	assert.Equal(t, poker.MustParseCards("AsKs"), first)
	assert.Equal(t, 3, d.Remaining())
	assert.Equal(t, 1, d2.Remaining())

	_, _, err = d2.Deal(2)
	assert.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = NewDealerWithOrder(poker.MustParseCards("AsAs"))
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}
