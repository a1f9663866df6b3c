// Package main is the entry point for the tasky CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasky/internal/backend/restapi"
	"tasky/internal/cli"
	"tasky/internal/commands"
	"tasky/internal/config"
	"tasky/internal/logger"
	"tasky/internal/profile"
	"tasky/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (*commands.Deps, error) {
		log := logger.New(cfg.Debug, os.Stderr)
		sess, err := session.New(session.NewFileStore(cfg.TokenPath()), session.WithLogger(log))
		if err != nil {
			return nil, err
		}
		backend := restapi.NewFromConfig(cfg, sess, log)
		return &commands.Deps{
			Session:    sess,
			Profile:    profile.NewStore(),
			Auth:       backend.Auth,
			Tasks:      backend.Tasks,
			Categories: backend.Categories,
		}, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
