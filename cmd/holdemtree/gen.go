package main

import (
	"fmt"
	"time"

	"github.com/lox/holdemtree/internal/abstraction"
	"github.com/lox/holdemtree/internal/fileutil"
	"github.com/lox/holdemtree/poker"
)

type GenTableCmd struct {
	Out string `short:"o" help:"Path to write the rank table" default:"ranks.bin" type:"path"`
}

func (cmd *GenTableCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	start := time.Now()
	table := poker.GenerateRankTable()
	if err := fileutil.WriteToAtomic(cmd.Out, 0o644, table); err != nil {
		return fmt.Errorf("write rank table: %w", err)
	}
	e.logger.Info("Wrote rank table", "path", cmd.Out, "entries", table.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

type GenCanonicalCmd struct {
	Out   string `short:"o" help:"Path to write the canonical hand list" default:"preflop_canonical_hands.txt" type:"path"`
	Ranks []int  `help:"Restrict to these ranks (2..14); defaults to the configured deck"`
}

func (cmd *GenCanonicalCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	if len(cmd.Ranks) > 0 {
		e.cfg.Game.DeckRanks = cmd.Ranks
	}
	ranks, err := e.cfg.DeckRanks()
	if err != nil {
		return err
	}
	list, err := abstraction.GenerateCanonicalList(ranks...)
	if err != nil {
		return err
	}
	if err := fileutil.WriteToAtomic(cmd.Out, 0o644, list); err != nil {
		return fmt.Errorf("write canonical list: %w", err)
	}
	e.logger.Info("Wrote canonical hand list", "path", cmd.Out, "hands", list.Len())
	return nil
}
