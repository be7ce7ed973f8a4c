package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtree/internal/game"
	"github.com/lox/holdemtree/internal/randutil"
	"github.com/lox/holdemtree/internal/statistics"
)

type WalkCmd struct {
	Seed    int64  `help:"Seed for the deal and the action picks; 0 uses time seed" default:"0"`
	Actions string `help:"Space separated actions to play first, e.g. 'call call raiseh'"`
	Hands   int    `short:"n" help:"Play this many random hands and print a summary" default:"1"`
}

func (cmd *WalkCmd) Run(ctx context.Context, g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	eval, err := e.evaluator()
	if err != nil {
		return err
	}
	b, err := e.bucketer(eval)
	if err != nil {
		return err
	}

	cfg, err := e.cfg.GameConfig()
	if err != nil {
		return err
	}
	if cmd.Seed != 0 {
		cfg.Seed = cmd.Seed
	}
	cfg.Seed = seedOrNow(cfg.Seed)
	cfg.Evaluator = eval
	cfg.Abstractor = b
	cfg.Logger = e.logger

	scripted, err := parseActions(cmd.Actions)
	if err != nil {
		return err
	}

	if cmd.Hands > 1 {
		stats, err := session(ctx, cfg, cmd.Hands, e.logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, renderSession(cfg.Seed, stats))
		return nil
	}

	final, steps, err := walk(ctx, cfg, scripted)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, renderWalk(cfg.Seed, final, steps))
	return nil
}

// step records one decision: who acted, on which street, with what view.
type step struct {
	Stage   game.Stage
	Seat    int
	InfoSet string
	Action  game.Action
}

// walk plays the scripted actions, then random legal ones until the hand ends.
func walk(ctx context.Context, cfg game.Config, scripted []game.Action) (*game.State, []step, error) {
	s, err := game.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	rng := randutil.New(randutil.Derive(cfg.Seed, 1))
	var steps []step
	for !s.IsTerminal() {
		var a game.Action
		if len(scripted) > 0 {
			a, scripted = scripted[0], scripted[1:]
		} else {
			legal := s.LegalActions()
			a = legal[rng.IntN(len(legal))]
		}
		info, err := s.InfoSet()
		if err != nil {
			return nil, steps, err
		}
		next, err := s.Apply(ctx, a)
		if err != nil {
			return nil, steps, fmt.Errorf("apply %s on %s: %w", a, s.Stage(), err)
		}
		steps = append(steps, step{Stage: s.Stage(), Seat: s.CurrentPlayer(), InfoSet: info, Action: a})
		s = next
	}
	return s, steps, nil
}

// session plays n random hands, each seeded from cfg.Seed and its index.
func session(ctx context.Context, cfg game.Config, n int, logger *log.Logger) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	for i := range n {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		hand := cfg
		hand.Seed = randutil.Derive(cfg.Seed, uint64(i))
		final, _, err := walk(ctx, hand, nil)
		if err != nil {
			return stats, fmt.Errorf("hand %d (seed %d): %w", i, hand.Seed, err)
		}
		stats.Add(statistics.HandResult{
			Seed:     hand.Seed,
			Payout:   final.Payout(),
			BigBlind: cfg.BigBlind,
			Showdown: final.Stage() == game.ShowDown,
			Round:    final.Round(),
		})
		if (i+1)%1000 == 0 {
			logger.Info("Session progress", "hands", i+1, "mean_bb", stats.Mean())
		}
	}
	return stats, stats.Validate()
}

func parseActions(s string) ([]game.Action, error) {
	var actions []game.Action
	for _, code := range strings.Fields(s) {
		a, err := game.ParseAction(code)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
