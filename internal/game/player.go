package game

import (
	"slices"

	"github.com/lox/holdemtree/poker"
)

// Player is one seat's view of the hand. States share Player values between
// parent and child, so treat them as read-only; the engine replaces a player
// rather than editing it.
type Player struct {
	ID           int
	InitialChips int
	Chips        int
	Hole         []poker.Card // empty until dealt, then 2 cards
	Active       bool
	SmallBlind   bool
	BigBlind     bool
	Dealer       bool
	Clusters     []int // one bucket per street reached
}

// HoleCards returns the two private cards.
func (p *Player) HoleCards() [2]poker.Card {
	var h [2]poker.Card
	copy(h[:], p.Hole)
	return h
}

// Payout is the chip change since the start of the hand.
func (p *Player) Payout() int {
	return p.Chips - p.InitialChips
}

// snapshot is a detached copy for callers outside the engine.
func (p *Player) snapshot() Player {
	c := *p
	c.Hole = slices.Clone(p.Hole)
	c.Clusters = slices.Clone(p.Clusters)
	return c
}

// clone returns a copy whose slices can be appended to without touching p.
func (p *Player) clone() *Player {
	c := *p
	c.Hole = slices.Clip(p.Hole)
	c.Clusters = slices.Clip(p.Clusters)
	return &c
}
