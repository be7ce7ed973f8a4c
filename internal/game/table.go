package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/holdemtree/poker"
)

// Dealer deals from one shuffled deck order. The order is shared read-only between
// every state of a hand; only the position of the next card changes.
type Dealer struct {
	order []poker.Card
	next  int
}

// NewDealer shuffles a deck of the given ranks (all ranks when empty).
func NewDealer(rng *rand.Rand, ranks []poker.Rank) (Dealer, error) {
	d, err := poker.NewDeckWithRanks(rng, ranks)
	if err != nil {
		return Dealer{}, err
	}
	return Dealer{order: d.Order()}, nil
}

// NewDealerWithOrder deals the given cards in order. It is useful for replaying a
// recorded deck.
func NewDealerWithOrder(order []poker.Card) (Dealer, error) {
	if _, err := poker.DistinctHand(order); err != nil {
		return Dealer{}, err
	}
	return Dealer{order: slices.Clone(order)}, nil
}

// Deal returns the next n cards and the dealer positioned after them.
func (d Dealer) Deal(n int) ([]poker.Card, Dealer, error) {
	if n < 0 || d.next+n > len(d.order) {
		return nil, d, fmt.Errorf("%w: cannot deal %d cards, %d left", poker.ErrInvalidInput, n, d.Remaining())
	}
	cards := slices.Clone(d.order[d.next : d.next+n])
	d.next += n
	return cards, d, nil
}

// Remaining is the number of undealt cards.
func (d Dealer) Remaining() int {
	return len(d.order) - d.next
}

// Table holds both players, the pot, the board and the dealer. It is a value;
// its methods return modified copies.
type Table struct {
	players   [2]*Player
	pot       Pot
	community []poker.Card
	dealer    Dealer
}

// NewTable seats two players with the given stacks.
func NewTable(dealer Dealer, stacks [2]int) (Table, error) {
	var t Table
	for i, chips := range stacks {
		if chips <= 0 {
			return Table{}, fmt.Errorf("%w: seat %d stack %d", poker.ErrInvalidInput, i, chips)
		}
		t.players[i] = &Player{ID: i, InitialChips: chips, Chips: chips, Active: true}
	}
	t.dealer = dealer
	return t, nil
}

// Player returns a copy of the player in seat i. Players are shared between
// states, so callers never get the stored record.
func (t Table) Player(i int) Player {
	return t.players[i].snapshot()
}

// Pot returns the pot.
func (t Table) Pot() Pot {
	return t.pot
}

// Community returns a copy of the board.
func (t Table) Community() []poker.Card {
	return slices.Clone(t.community)
}

// TotalChips is every chip at the table, stacks plus pot.
func (t Table) TotalChips() int {
	return t.players[0].Chips + t.players[1].Chips + t.pot.Total()
}

// ToCall is what seat i must add to match the highest contribution.
func (t Table) ToCall(i int) int {
	return t.pot.HighestContribution() - t.pot.Contribution(i)
}

// withPlayer replaces seat i after fn edits a private copy of it.
func (t Table) withPlayer(i int, fn func(p *Player)) Table {
	p := t.players[i].clone()
	fn(p)
	t.players[i] = p
	return t
}

// contribute moves chips from seat i's stack into the pot.
func (t Table) contribute(i, chips int) (Table, error) {
	if chips > t.players[i].Chips {
		return t, fmt.Errorf("%w: seat %d has %d chips, needs %d", poker.ErrInvalidInput, i, t.players[i].Chips, chips)
	}
	pot, err := t.pot.Add(i, chips)
	if err != nil {
		return t, err
	}
	t.pot = pot
	return t.withPlayer(i, func(p *Player) { p.Chips -= chips }), nil
}

// dealCommunity deals n cards onto the board.
func (t Table) dealCommunity(n int) (Table, error) {
	cards, dealer, err := t.dealer.Deal(n)
	if err != nil {
		return t, err
	}
	t.dealer = dealer
	t.community = append(slices.Clip(t.community), cards...)
	return t, nil
}

// dealPrivate deals two hole cards to each player.
func (t Table) dealPrivate() (Table, error) {
	for i := range t.players {
		cards, dealer, err := t.dealer.Deal(2)
		if err != nil {
			return t, err
		}
		t.dealer = dealer
		t = t.withPlayer(i, func(p *Player) { p.Hole = cards })
	}
	return t, nil
}
