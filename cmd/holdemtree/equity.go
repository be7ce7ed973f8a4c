package main

import (
	"context"
	"fmt"

	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/internal/randutil"
	"github.com/lox/holdemtree/poker"
)

type EquityCmd struct {
	Hole     string `arg:"" help:"Hero hole cards or holding class, e.g. 'AsKd' or 'AKo'"`
	Board    string `short:"b" help:"Community cards (0 to 5), e.g. 'Td7s8h'"`
	Trials   int    `short:"n" help:"Number of Monte Carlo trials" default:"10000"`
	Strategy string `help:"Override the configured strategy (parallel or sequential)"`
	Seed     int64  `help:"Random seed; 0 uses time seed" default:"0"`
}

func (cmd *EquityCmd) Run(ctx context.Context, g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	hole, err := parseHole(cmd.Hole)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(cmd.Board)
	if err != nil {
		return err
	}

	var extra []equity.Option
	if cmd.Strategy != "" {
		s, err := equity.ParseStrategy(cmd.Strategy)
		if err != nil {
			return err
		}
		extra = append(extra, equity.WithStrategy(s))
	}

	eval, err := e.evaluator()
	if err != nil {
		return err
	}
	est, err := e.estimator(eval, extra...)
	if err != nil {
		return err
	}

	seed := seedOrNow(cmd.Seed)
	e.logger.Debug("Estimating", "hole", cmd.Hole, "board", board, "trials", cmd.Trials, "strategy", est.Strategy(), "seed", seed)
	res, err := est.Estimate(ctx, board, hole[:], cmd.Trials, randutil.New(seed))
	if err != nil {
		return err
	}
	if res.Truncated {
		e.logger.Warn("Time budget reached before all trials", "completed", res.Trials, "requested", cmd.Trials)
	}

	fmt.Fprintln(e.out, renderEquity(hole, board, res))
	return nil
}
