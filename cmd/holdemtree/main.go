package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version      kong.VersionFlag `short:"v" help:"Show version"`
	GenTable     GenTableCmd      `cmd:"gen-table" help:"Generate the 5-card rank table"`
	GenCanonical GenCanonicalCmd  `cmd:"gen-canonical" help:"Write the preflop canonical hand list"`
	Equity       EquityCmd        `cmd:"" help:"Estimate hand strength against a random opponent"`
	Bucket       BucketCmd        `cmd:"" help:"Map hole cards and board to an abstraction bucket"`
	Walk         WalkCmd          `cmd:"" help:"Deal hands and play random legal actions to the end"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdemtree"),
		kong.Description("Heads-up hold'em rules engine and abstraction tooling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
