// Package main is the entry point for the firetask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"firetask/internal/backend/firestore"
	"firetask/internal/cli"
	"firetask/internal/commands"
	"firetask/internal/config"
	"firetask/internal/service"
	"firetask/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config, sess session.Session) (service.Store, error) {
		return firestore.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
