// Package main is the VocabDeck command-line client.
package main

import (
	"cmp"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/atinyakov/VocabDeck/internal/client/cli"
)

var (
	version   string
	buildDate string
)

func main() {
	cli.Version = cmp.Or(version, cli.Version)
	cli.BuildDate = cmp.Or(buildDate, cli.BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.CreateRootCommand(cli.NewFlags()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
