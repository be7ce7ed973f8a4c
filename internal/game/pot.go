package game

import (
	"fmt"

	"github.com/lox/holdemtree/poker"
)

// Pot records how many chips each seat has put in this hand. It is a value: Add
// returns a new Pot and leaves the receiver untouched.
type Pot struct {
	contributions [2]int
}

// Add returns a pot with chips added to the seat's contribution.
func (p Pot) Add(seat, chips int) (Pot, error) {
	if seat < 0 || seat >= len(p.contributions) {
		return p, fmt.Errorf("%w: seat %d", poker.ErrInvalidInput, seat)
	}
	if chips < 0 {
		return p, fmt.Errorf("%w: cannot add %d chips to the pot", poker.ErrInvalidInput, chips)
	}
	p.contributions[seat] += chips
	return p, nil
}

// Contribution returns what the seat has put in so far.
func (p Pot) Contribution(seat int) int {
	if seat < 0 || seat >= len(p.contributions) {
		return 0
	}
	return p.contributions[seat]
}

// Total is the sum of all contributions.
func (p Pot) Total() int {
	total := 0
	for _, c := range p.contributions {
		total += c
	}
	return total
}

// HighestContribution is the amount every seat must match to stay in.
func (p Pot) HighestContribution() int {
	return max(p.contributions[0], p.contributions[1])
}
