// Package game implements a heads-up hold'em rules engine for game-tree search.
//
// The main type is State, an immutable snapshot of one hand. Apply never
// changes its receiver; it returns a successor that shares every unchanged
// part (players, pot, community cards, per-street history) with its parent,
// so a search can branch from any state as often as it likes.
//
// # Basic Usage
//
//	s, err := game.New(ctx, game.Config{
//	    SmallBlind: 50,
//	    BigBlind:   100,
//	    Stack:      10000,
//	    Evaluator:  eval,
//	    Abstractor: bucketer,
//	})
//	for !s.IsTerminal() {
//	    legal := s.LegalActions()
//	    s, err = s.Apply(ctx, legal[0])
//	}
//	fmt.Println(s.Payout())
//
// # Information sets
//
// InfoSet identifies the acting player's decision point: one entry per street
// reached, holding the player's bucket for that street followed by the action
// codes played on it, e.g. [[12,"l","l"],[140,"h"]].
//
// # Architecture
//
//   - Table: both players, the pot, community cards and the dealer
//   - Pot: per-player contributions, an immutable value
//   - RoundSetup, ComputePayout, ComputeWinner: the betting engine that moves chips
//   - Abstractor: bucketing of hole cards, supplied by the caller
package game
