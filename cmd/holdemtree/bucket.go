package main

import (
	"context"
	"fmt"

	"github.com/lox/holdemtree/internal/abstraction"
	"github.com/lox/holdemtree/internal/randutil"
	"github.com/lox/holdemtree/poker"
)

type BucketCmd struct {
	Hole   string `arg:"" help:"Hole cards or holding class, e.g. 'Th6s' or 'T6o'"`
	Board  string `short:"b" help:"Community cards (3 to 5) for a lossy bucket; empty gives the preflop bucket"`
	Single bool   `help:"Estimate on the calling goroutine only"`
	Seed   int64  `help:"Random seed; 0 uses time seed" default:"0"`
}

func (cmd *BucketCmd) Run(ctx context.Context, g *Globals) error {
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

	if len(board) == 0 {
		list, err := e.canonicalList()
		if err != nil {
			return err
		}
		form, err := abstraction.Canonicalize(hole)
		if err != nil {
			return err
		}
		bucket, err := list.Lossless(hole)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, renderBucket("lossless", hole, board, bucket, form))
		return nil
	}

	eval, err := e.evaluator()
	if err != nil {
		return err
	}
	b, err := e.bucketer(eval)
	if err != nil {
		return err
	}
	rng := randutil.New(seedOrNow(cmd.Seed))
	lossy := b.Lossy
	if cmd.Single {
		lossy = b.LossySingle
	}
	bucket, err := lossy(ctx, board, hole, rng)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, renderBucket("lossy", hole, board, bucket, ""))
	return nil
}
