package game

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lox/holdemtree/internal/randutil"
	"github.com/lox/holdemtree/poker"
)

// State is an immutable snapshot of a hand. Methods never modify the receiver.
type State struct {
	rules     *rules
	table     Table
	stage     Stage
	street    int // betting round the hand is on, kept after a fold
	history   [Streets][]Action
	current   int
	nRaises   int
	lastRaise int
	hasAllIn  bool
	firstMove bool
}

// New deals a hand: blinds are posted, both players receive hole cards and their
// preflop bucket, and seat 0 is first to act.
func New(ctx context.Context, cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := newRules(cfg)

	var dealer Dealer
	var err error
	if len(cfg.Deck) > 0 {
		dealer, err = NewDealerWithOrder(cfg.Deck)
	} else {
		dealer, err = NewDealer(randutil.New(cfg.Seed), cfg.DeckRanks)
	}
	if err != nil {
		return nil, err
	}

	t, err := NewTable(dealer, [2]int{cfg.Stack, cfg.Stack})
	if err != nil {
		return nil, err
	}
	if t, err = RoundSetup(t, r.smallBlind, r.bigBlind); err != nil {
		return nil, err
	}
	if t, err = t.dealPrivate(); err != nil {
		return nil, err
	}
	for i := range t.players {
		bucket, err := r.abstractor.Lossless(t.players[i].HoleCards())
		if err != nil {
			return nil, fmt.Errorf("preflop bucket for seat %d: %w", i, err)
		}
		t = t.withPlayer(i, func(p *Player) { p.Clusters = append(p.Clusters, bucket) })
	}

	s := &State{
		rules:     r,
		table:     t,
		stage:     PreFlop,
		firstMove: true,
	}
	r.logger.Debug("hand dealt", "seed", cfg.Seed, "seat0", t.players[0].Hole, "seat1", t.players[1].Hole)
	return s, nil
}

// Stage returns the current stage.
func (s *State) Stage() Stage { return s.stage }

// Round returns the betting round index (0..4). After a fold it is the round the
// fold happened in.
func (s *State) Round() int {
	if s.stage == Terminal {
		return s.street
	}
	return s.stage.Round()
}

// CurrentPlayer returns the seat to act, 0 or 1.
func (s *State) CurrentPlayer() int { return s.current }

// IsTerminal reports whether the hand is over.
func (s *State) IsTerminal() bool {
	return s.stage == ShowDown || s.stage == Terminal
}

// Table returns the table.
func (s *State) Table() Table { return s.table }

// Pot returns the pot.
func (s *State) Pot() Pot { return s.table.pot }

// Community returns a copy of the board.
func (s *State) Community() []poker.Card { return s.table.Community() }

// Players returns copies of both players.
func (s *State) Players() [2]Player {
	var out [2]Player
	for i, p := range s.table.players {
		out[i] = p.snapshot()
	}
	return out
}

// History returns the action codes played on each street.
func (s *State) History() [Streets][]string {
	var out [Streets][]string
	for r, actions := range s.history {
		for _, a := range actions {
			out[r] = append(out[r], a.Code())
		}
	}
	return out
}

// Actions returns the actions played on each street.
func (s *State) Actions() [Streets][]Action {
	var out [Streets][]Action
	for r := range s.history {
		out[r] = slices.Clone(s.history[r])
	}
	return out
}

// Payout returns each seat's chip change since the hand started.
func (s *State) Payout() [2]int {
	return [2]int{s.table.players[0].Payout(), s.table.players[1].Payout()}
}

// potSizes returns the half-pot and full-pot raise sizes, each rounded up to a
// multiple of 100.
func (s *State) potSizes() (halfPot, onePot int) {
	pot := s.table.pot.Total()
	return (pot + 199) / 200 * 100, (pot + 99) / 100 * 100
}

func (s *State) raiseSize(a Action) int {
	halfPot, onePot := s.potSizes()
	switch a {
	case BigOne:
		return s.rules.bigBlind
	case BigFour:
		return 4 * s.rules.bigBlind
	case BigTwenty:
		return 20 * s.rules.bigBlind
	case RaiseHalfPot:
		return halfPot
	case RaisePot:
		return onePot
	}
	return 0
}

// LegalActions lists the actions the current player may take, in a fixed order.
// A finished hand has none.
func (s *State) LegalActions() []Action {
	if s.IsTerminal() {
		return nil
	}
	p := s.table.players[s.current]
	// Heads-up a fold ends the hand, so the terminal check above catches this first.
	if !p.Active {
		return []Action{Pass}
	}

	toCall := s.table.ToCall(s.current)
	var actions []Action
	if s.hasAllIn {
		return append(actions, Call)
	}
	if toCall != 0 {
		actions = append(actions, Fold)
	}
	actions = append(actions, Call)

	bb := s.rules.bigBlind
	halfPot, onePot := s.potSizes()
	var raises []Action
	switch s.stage {
	case PreFlop:
		if s.nRaises < 1 {
			raises = append(raises, BigOne)
		}
		if s.lastRaise <= 4*bb {
			raises = append(raises, BigFour)
		}
		if s.lastRaise <= 20*bb {
			raises = append(raises, BigTwenty)
		}
	case Flop, Turn, River:
		// The flop allows up to four half-pot raises; past that, and on later streets
		// after the first raise, only a pot-sized raise is left.
		switch {
		case s.stage == Flop && s.nRaises < 4 && s.lastRaise <= halfPot && p.Chips > toCall+halfPot:
			raises = append(raises, RaiseHalfPot, RaisePot)
		case s.nRaises < 1 && s.lastRaise <= halfPot && p.Chips > toCall+halfPot:
			raises = append(raises, RaiseHalfPot, RaisePot)
		case s.lastRaise <= onePot:
			raises = append(raises, RaisePot)
		}
	}
	// A sized raise must leave chips behind; anything bigger is an all-in.
	for _, a := range raises {
		if p.Chips > toCall+s.raiseSize(a) {
			actions = append(actions, a)
		}
	}

	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// IsLegal reports whether a is among LegalActions.
func (s *State) IsLegal(a Action) bool {
	return slices.Contains(s.LegalActions(), a)
}

// Apply returns the state after the current player takes action a. The receiver
// is left unchanged.
func (s *State) Apply(ctx context.Context, a Action) (*State, error) {
	if !s.IsLegal(a) {
		return nil, fmt.Errorf("%w: %s at %s for seat %d", ErrIllegalAction, a, s.stage, s.current)
	}

	next := *s
	next.history[s.street] = append(slices.Clip(s.history[s.street]), a)

	seat := s.current
	var err error
	switch {
	case a == Pass:
	case a == Fold:
		next.table = next.table.withPlayer(seat, func(p *Player) { p.Active = false })
		next.stage = Terminal
	case a == Call:
		toCall := min(next.table.ToCall(seat), next.table.players[seat].Chips)
		next.table, err = next.table.contribute(seat, toCall)
	case a.IsRaise():
		size := s.raiseSize(a)
		next.table, err = next.table.contribute(seat, size+next.table.ToCall(seat))
		next.lastRaise = size
		next.nRaises++
	case a == AllIn:
		next.table, err = next.table.contribute(seat, next.table.players[seat].Chips)
		next.lastRaise = 0
		next.hasAllIn = true
	}
	if err != nil {
		return nil, err
	}
	next.current ^= 1
	s.rules.logger.Debug("action applied", "seat", seat, "action", a, "stage", s.stage, "pot", next.table.pot.Total())

	if next.stage == Terminal {
		if next.table, err = ComputePayout(next.table); err != nil {
			return nil, err
		}
		return &next, nil
	}

	if a == Call && !s.firstMove {
		if next.hasAllIn {
			for next.stage != ShowDown {
				if err := next.advance(ctx); err != nil {
					return nil, err
				}
			}
		} else {
			if err := next.advance(ctx); err != nil {
				return nil, err
			}
			next.nRaises = 0
			next.current = 0
		}
		if next.stage == ShowDown {
			if next.table, err = ComputeWinner(next.table, s.rules.eval, s.rules.tiePolicy); err != nil {
				return nil, err
			}
			s.rules.logger.Debug("showdown", "board", next.table.community, "payout", next.Payout())
		}
		return &next, nil
	}

	next.firstMove = false
	return &next, nil
}

// advance moves to the next stage, dealing the board cards for it and bucketing both
// players' hands on the new board.
func (s *State) advance(ctx context.Context) error {
	if s.stage >= ShowDown {
		return nil
	}
	s.stage++
	s.firstMove = true
	if s.stage == ShowDown {
		return nil
	}
	s.street = s.stage.Round()

	var err error
	if s.table, err = s.table.dealCommunity(s.stage.boardSize() - len(s.table.community)); err != nil {
		return err
	}
	for i, p := range s.table.players {
		if !p.Active {
			continue
		}
		rng := randutil.New(randutil.Derive(s.rules.seed, uint64(s.street), uint64(i)))
		bucket, err := s.rules.abstractor.Lossy(ctx, s.table.community, p.HoleCards(), rng)
		if err != nil {
			return fmt.Errorf("%s bucket for seat %d: %w", s.stage, i, err)
		}
		s.table = s.table.withPlayer(i, func(p *Player) { p.Clusters = append(p.Clusters, bucket) })
	}
	s.rules.logger.Debug("street advanced", "stage", s.stage, "board", s.table.community)
	return nil
}

// InfoSet encodes the current player's view of the hand as compact JSON: one
// entry per street reached, the player's bucket followed by that street's action codes.
func (s *State) InfoSet() (string, error) {
	clusters := s.table.players[s.current].Clusters
	if len(clusters) == 0 || len(clusters) > Streets {
		return "", fmt.Errorf("%w: seat %d has %d buckets", ErrSerialization, s.current, len(clusters))
	}
	for r := len(clusters); r < Streets; r++ {
		if len(s.history[r]) > 0 {
			return "", fmt.Errorf("%w: actions on street %d but only %d buckets", ErrSerialization, r, len(clusters))
		}
	}

	entries := make([][]any, len(clusters))
	for r, bucket := range clusters {
		entry := make([]any, 0, 1+len(s.history[r]))
		entry = append(entry, bucket)
		for _, a := range s.history[r] {
			entry = append(entry, a.Code())
		}
		entries[r] = entry
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return string(b), nil
}
