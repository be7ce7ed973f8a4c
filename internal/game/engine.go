package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdemtree/poker"
)

// TiePolicy decides what happens to the pot when both hands are equal at showdown.
type TiePolicy int

const (
	// TiePolicySplit shares the pot evenly; an odd chip goes to seat 0.
	TiePolicySplit TiePolicy = iota
	// TiePolicyReset restores both stacks to their starting size. After the uncalled
	// refund both seats have paid the same amount, so this gives the same stacks as
	// TiePolicySplit unless the pot holds chips neither stack paid in.
	TiePolicyReset
)

func (p TiePolicy) String() string {
	switch p {
	case TiePolicySplit:
		return "split"
	case TiePolicyReset:
		return "reset"
	default:
		return fmt.Sprintf("TiePolicy(%d)", int(p))
	}
}

// ParseTiePolicy accepts "split" or "reset".
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch strings.ToLower(s) {
	case "split", "":
		return TiePolicySplit, nil
	case "reset":
		return TiePolicyReset, nil
	}
	return 0, fmt.Errorf("%w: unknown tie policy %q", poker.ErrInvalidInput, s)
}

// RoundSetup starts a hand: it empties the pot, reactivates both players and posts
// the small blind for seat 0 and the big blind for seat 1.
func RoundSetup(t Table, smallBlind, bigBlind int) (Table, error) {
	if smallBlind <= 0 || bigBlind < smallBlind {
		return t, fmt.Errorf("%w: blinds %d/%d", poker.ErrInvalidInput, smallBlind, bigBlind)
	}
	t.pot = Pot{}
	t.community = nil
	for i := range t.players {
		t = t.withPlayer(i, func(p *Player) {
			p.Active = true
			p.SmallBlind = i == 0
			p.BigBlind = i == 1
			p.Dealer = i == 1
		})
	}

	var err error
	if t, err = t.contribute(0, smallBlind); err != nil {
		return t, fmt.Errorf("post small blind: %w", err)
	}
	if t, err = t.contribute(1, bigBlind); err != nil {
		return t, fmt.Errorf("post big blind: %w", err)
	}
	return t, nil
}

// ComputePayout gives the whole pot to the only active player and empties it.
func ComputePayout(t Table) (Table, error) {
	winner := -1
	for i, p := range t.players {
		if p.Active {
			if winner >= 0 {
				return t, fmt.Errorf("%w: payout needs exactly one active player", poker.ErrInvalidInput)
			}
			winner = i
		}
	}
	if winner < 0 {
		return t, fmt.Errorf("%w: payout needs exactly one active player", poker.ErrInvalidInput)
	}
	return t.award(winner, t.pot.Total()), nil
}

// ComputeWinner resolves a showdown. Chips nobody matched go back to their owner
// first; then the stronger hand takes the pot, and equal hands follow policy.
func ComputeWinner(t Table, eval *poker.Evaluator, policy TiePolicy) (Table, error) {
	if len(t.community) != 5 {
		return t, fmt.Errorf("%w: showdown needs 5 community cards, have %d", poker.ErrInvalidInput, len(t.community))
	}
	t = t.returnUncalled()

	var strengths [2]poker.Strength
	for i, p := range t.players {
		cards := make([]poker.Card, 0, 7)
		cards = append(cards, p.Hole...)
		cards = append(cards, t.community...)
		s, err := eval.Evaluate(cards)
		if err != nil {
			return t, fmt.Errorf("evaluate seat %d: %w", i, err)
		}
		strengths[i] = s
	}

	switch poker.CompareStrengths(strengths[0], strengths[1]) {
	case 1:
		return t.award(0, t.pot.Total()), nil
	case -1:
		return t.award(1, t.pot.Total()), nil
	}

	if policy == TiePolicyReset {
		for i := range t.players {
			t = t.withPlayer(i, func(p *Player) { p.Chips = p.InitialChips })
		}
		t.pot = Pot{}
		return t, nil
	}
	total := t.pot.Total()
	half := total / 2
	t = t.award(0, total-half)
	return t.award(1, half), nil
}

// returnUncalled refunds the part of the larger contribution the other seat never matched.
func (t Table) returnUncalled() Table {
	a, b := t.pot.Contribution(0), t.pot.Contribution(1)
	switch {
	case a > b:
		t.pot.contributions[0] = b
		return t.withPlayer(0, func(p *Player) { p.Chips += a - b })
	case b > a:
		t.pot.contributions[1] = a
		return t.withPlayer(1, func(p *Player) { p.Chips += b - a })
	}
	return t
}

// award pays chips to seat i and empties the pot once it has all been paid out.
func (t Table) award(i, chips int) Table {
	t = t.withPlayer(i, func(p *Player) { p.Chips += chips })
	paid := chips
	for seat := range t.pot.contributions {
		take := min(paid, t.pot.contributions[seat])
		t.pot.contributions[seat] -= take
		paid -= take
	}
	return t
}
