package main

import (
	"context"
	"os"
	"os/signal"

	"sepacbi/internal/platform/config"
)

// main wires config, logging and metrics around the account service and
// prints one account fragment. Domain logic lives in internal/account.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(os.Stdout, os.Stderr, config.Load)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}
