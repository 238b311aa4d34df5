package main

import (
	"context"
	"os"
	"os/signal"

	"govledger/cmd/govledger/commands"
)

// main hands over to the command tree. Business logic lives in the internal
// validation packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
