package poker

import (
	"fmt"
	"math/bits"
)

// Strength is the rank of a 5-card hand. Lower values are stronger: 1 is a royal flush,
// WorstStrength is 7-5-4-3-2 offsuit.
type Strength uint16

// Category enumerates the hand classes ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

// Category bases are offsets from the best hand; a Strength is base + detail + 1.
const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

// BestStrength and WorstStrength bound every valid Strength.
const (
	BestStrength  Strength = 1
	WorstStrength Strength = baseHighCard + highCardCount
)

// Category returns the class of hand (pair, flush, etc.).
func (s Strength) Category() Category {
	v := int(s) - 1
	switch {
	case v < baseFourOfAKind:
		return StraightFlush
	case v < baseFullHouse:
		return FourOfAKind
	case v < baseFlush:
		return FullHouse
	case v < baseStraight:
		return Flush
	case v < baseThreeOfAKind:
		return Straight
	case v < baseTwoPair:
		return ThreeOfAKind
	case v < baseOnePair:
		return TwoPair
	case v < baseHighCard:
		return Pair
	default:
		return HighCard
	}
}

// String returns a human-readable hand description.
func (s Strength) String() string {
	if s < BestStrength || s > WorstStrength {
		return "Unknown"
	}
	return s.Category().String()
}

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// CompareStrengths returns 1 if a wins, -1 if b wins, 0 for tie
func CompareStrengths(a, b Strength) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}

// Evaluator scores 7-card hands against a RankTable. It is safe for concurrent use.
type Evaluator struct {
	table *RankTable
}

// NewEvaluator wraps a loaded rank table.
func NewEvaluator(table *RankTable) (*Evaluator, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: rank table is nil", ErrMissingResource)
	}
	return &Evaluator{table: table}, nil
}

// Table returns the lookup table backing the evaluator.
func (e *Evaluator) Table() *RankTable {
	return e.table
}

// Evaluate returns the best 5-card strength achievable from exactly 7 distinct cards.
func (e *Evaluator) Evaluate(cards []Card) (Strength, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("%w: need 7 cards, got %d", ErrInvalidInput, len(cards))
	}
	h, err := DistinctHand(cards)
	if err != nil {
		return 0, err
	}
	return e.evaluate7(h), nil
}

// EvaluateHand is Evaluate for a card set already held as a Hand.
func (e *Evaluator) EvaluateHand(h Hand) (Strength, error) {
	if n := h.CountCards(); n != 7 || h>>deckBits != 0 {
		return 0, fmt.Errorf("%w: need 7 cards, got %d", ErrInvalidInput, n)
	}
	return e.evaluate7(h), nil
}

// evaluate7 drops every pair of cards (21 ways) and keeps the best 5-card lookup.
func (e *Evaluator) evaluate7(h Hand) Strength {
	var cardBits [7]uint64
	i := 0
	for m := uint64(h); m != 0; m &= m - 1 {
		cardBits[i] = m & -m
		i++
	}

	best := WorstStrength + 1
	for a := 0; a < 6; a++ {
		for b := a + 1; b < 7; b++ {
			five := uint64(h) &^ (cardBits[a] | cardBits[b])
			if s := e.table.ranks[maskIndex(five)]; s < best {
				best = s
			}
		}
	}
	return best
}

// fiveCardStrength ranks exactly five cards from scratch. It is used to build the table.
func fiveCardStrength(h Hand) Strength {
	var suitMasks [4]uint16
	var rankMask uint16
	var counts [13]uint8
	for s := Clubs; s <= Spades; s++ {
		m := h.GetSuitMask(s)
		suitMasks[s] = m
		rankMask |= m
		for r := m; r != 0; r &= r - 1 {
			counts[bits.TrailingZeros16(r)]++
		}
	}

	flush := false
	for _, m := range suitMasks {
		if bits.OnesCount16(m) == 5 {
			flush = true
		}
	}
	high, straight := straightHigh(rankMask)

	var detail int
	var base int
	switch {
	case flush && straight:
		base, detail = baseStraightFlush, straightFlushCount-1-straightIndex(high)
	case flush:
		base, detail = baseFlush, flushCount-1-distinctIndex(rankMask)
	case straight:
		base, detail = baseStraight, straightCount-1-straightIndex(high)
	default:
		base, detail = groupedStrength(counts, rankMask)
	}
	return Strength(base + detail + 1)
}

// groupedStrength handles hands without a flush or straight, where rank multiplicity decides.
func groupedStrength(counts [13]uint8, rankMask uint16) (base, detail int) {
	var quads, trips, pairs, singles uint16
	for r, n := range counts {
		switch n {
		case 4:
			quads |= 1 << r
		case 3:
			trips |= 1 << r
		case 2:
			pairs |= 1 << r
		case 1:
			singles |= 1 << r
		}
	}

	switch {
	case quads != 0:
		q := topBit(quads)
		idx := q*12 + ordinal(topBit(singles), quads)
		return baseFourOfAKind, fourOfAKindCount - 1 - idx
	case trips != 0 && pairs != 0:
		t := topBit(trips)
		idx := t*12 + ordinal(topBit(pairs), trips)
		return baseFullHouse, fullHouseCount - 1 - idx
	case trips != 0:
		t := topBit(trips)
		idx := t*66 + colexRank(compress(singles, trips))
		return baseThreeOfAKind, threeOfAKindCount - 1 - idx
	case bits.OnesCount16(pairs) == 2:
		idx := colexRank(pairs)*11 + ordinal(topBit(singles), pairs)
		return baseTwoPair, twoPairCount - 1 - idx
	case pairs != 0:
		p := topBit(pairs)
		idx := p*220 + colexRank(compress(singles, pairs))
		return baseOnePair, onePairCount - 1 - idx
	default:
		return baseHighCard, highCardCount - 1 - distinctIndex(rankMask)
	}
}

func topBit(m uint16) int {
	return bits.Len16(m) - 1
}

// ordinal is the position of rank r among the 13 ranks once the excluded ranks are removed.
func ordinal(r int, excluded uint16) int {
	return r - bits.OnesCount16(excluded&(1<<r-1))
}

// compress removes the excluded rank bits, shifting higher ranks down.
func compress(m, excluded uint16) uint16 {
	var out uint16
	for rest := m; rest != 0; rest &= rest - 1 {
		out |= 1 << ordinal(bits.TrailingZeros16(rest), excluded)
	}
	return out
}

// colexRank orders k-subsets of ranks the same way as their numeric masks, which is the
// kicker order poker uses.
func colexRank(m uint16) int {
	idx := 0
	k := 1
	for rest := m; rest != 0; rest &= rest - 1 {
		idx += int(binom[bits.TrailingZeros16(rest)][k])
		k++
	}
	return idx
}

// straightRanks holds the colex rank of every five-rank straight, ascending.
var straightRanks = func() [10]int {
	var out [10]int
	out[0] = colexRank(wheelMask)
	for high := 4; high <= 12; high++ {
		out[high-3] = colexRank(uint16(0x1F) << (high - 4))
	}
	return out
}()

// distinctIndex ranks five distinct ranks among the 1277 that are not straights.
func distinctIndex(rankMask uint16) int {
	idx := colexRank(rankMask)
	skip := 0
	for _, s := range straightRanks {
		if s < idx {
			skip++
		}
	}
	return idx - skip
}

const wheelMask = 0x100F // Ace + 2-3-4-5

// straightHigh returns the top rank index of the straight in rankMask; the wheel reports 3.
func straightHigh(rankMask uint16) (int, bool) {
	seq := rankMask & (rankMask >> 1) & (rankMask >> 2) & (rankMask >> 3) & (rankMask >> 4)
	if seq != 0 {
		return topBit(seq) + 4, true
	}
	if rankMask&wheelMask == wheelMask {
		return 3, true
	}
	return 0, false
}

// straightIndex orders straights from the wheel (0) to broadway (9).
func straightIndex(high int) int {
	return high - 3
}
