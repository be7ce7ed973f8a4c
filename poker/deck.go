package poker

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
)

// AllRanks lists the ranks of a standard 52-card deck.
var AllRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Deck is an ordered set of distinct cards. A reduced deck keeps only some ranks.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeckWithRanks creates a shuffled deck holding every suit of the given ranks.
func NewDeckWithRanks(rng *rand.Rand, ranks []Rank) (*Deck, error) {
	universe, err := Universe(ranks)
	if err != nil {
		return nil, err
	}
	d := &Deck{cards: universe.Cards(), rng: rng}
	d.Shuffle()
	return d, nil
}

// Universe returns the set of all cards with the given ranks. An empty list means all ranks.
func Universe(ranks []Rank) (Hand, error) {
	if len(ranks) == 0 {
		ranks = AllRanks
	}
	var h Hand
	for _, r := range ranks {
		if r < Two || r > Ace {
			return 0, fmt.Errorf("%w: rank %d out of range", ErrInvalidInput, r)
		}
		for s := Clubs; s <= Spades; s++ {
			h.AddCard(NewCard(r, s))
		}
	}
	return h, nil
}

// Shuffle shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Order returns a copy of the shuffled cards.
func (d *Deck) Order() []Card {
	return slices.Clone(d.cards)
}
