package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit is one of the four card suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Char returns the single character notation for the rank ("2".."9", T, J, Q, K, A).
func (r Rank) Char() byte {
	if r < Two || r > Ace {
		return '?'
	}
	return rankChars[r-Two]
}

// Char returns the single character notation for the suit (c, d, h, s).
func (s Suit) Char() byte {
	if s > Spades {
		return '?'
	}
	return suitChars[s]
}

// Card is an immutable playing card value.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard builds a card. Use Valid to check values that come from untrusted input.
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

func (c Card) Rank() Rank { return c.rank }
func (c Card) Suit() Suit { return c.suit }

// Valid reports whether the card has an in-range rank and suit.
func (c Card) Valid() bool {
	return c.rank >= Two && c.rank <= Ace && c.suit <= Spades
}

// EvalIndex is the bit position (0-51) the evaluator uses for this card.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], deuce first.
func (c Card) EvalIndex() uint8 {
	return uint8(c.suit)*13 + uint8(c.rank-Two)
}

// Bit returns the single-card presence mask.
func (c Card) Bit() Hand {
	return Hand(1) << c.EvalIndex()
}

// String returns the two character notation, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{c.rank.Char(), c.suit.Char()})
}

// CardFromIndex is the inverse of EvalIndex.
func CardFromIndex(idx uint8) Card {
	return Card{rank: Rank(idx%13) + Two, suit: Suit(idx / 13)}
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: invalid card string %q", ErrInvalidInput, s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return Card{}, fmt.Errorf("%w: invalid rank %q", ErrInvalidInput, s[0])
	}
	st := strings.IndexByte(suitChars, lower(s[1]))
	if st < 0 {
		return Card{}, fmt.Errorf("%w: invalid suit %q", ErrInvalidInput, s[1])
	}
	return NewCard(Rank(r)+Two, Suit(st)), nil
}

// ParseCards parses "AsKd", "As Kd" or "As,Kd" into cards.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: invalid card string length %d", ErrInvalidInput, len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// Hand is a set of cards, one bit per EvalIndex.
type Hand uint64

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= c.Bit()
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= c.Bit()
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return h&c.Bit() != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the ranks held in one suit as a 13-bit mask (bit 0 = deuce).
func (h Hand) GetSuitMask(suit Suit) uint16 {
	return uint16((h >> (uint(suit) * 13)) & 0x1FFF)
}

// Cards lists the cards in ascending EvalIndex order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.CountCards())
	for m := uint64(h); m != 0; m &= m - 1 {
		out = append(out, CardFromIndex(uint8(bits.TrailingZeros64(m))))
	}
	return out
}

// DistinctHand folds cards into a Hand, failing on invalid or repeated cards.
func DistinctHand(cards []Card) (Hand, error) {
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: invalid card %v", ErrInvalidInput, c)
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		h.AddCard(c)
	}
	return h, nil
}
