// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasky/internal/commands"
	"tasky/internal/config"
	"tasky/internal/exitcode"
)

// DepsFactory builds the session, profile store and services for cfg.
// Used to inject the backend during dispatch.
type DepsFactory func(ctx context.Context, cfg *config.Config) (*commands.Deps, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  DepsFactory
}

// NewDispatcher creates a new dispatcher with the given registry and deps factory.
func NewDispatcher(registry *commands.Registry, factory DepsFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list tasks
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	positionalArgs, err := parseInterspersed(fs, args)
	if err != nil {
		return flagError(errOut, err)
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = cfg.Debug || debug

	if offline, ok := cmd.(commands.Offline); ok && offline.Offline() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no backend configured")
		return exitcode.BackendError
	}
	deps, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	}

	if cmd.NeedsAuth() && !deps.Session.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: tasky login)")
		return exitcode.AuthError
	}

	return cmd.Run(ctx, cfg, deps, positionalArgs, out, errOut)
}

// parseInterspersed parses flags anywhere among the positional args,
// so "edit 3 --title x" and "edit --title x 3" are equivalent.
// Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		consumed := rest[:len(rest)-len(remaining)]
		if len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			return append(positional, remaining...), nil
		}
		if len(remaining) == 0 {
			return positional, nil
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}
}

// flagError reports a flag parse failure in the CLI's error style.
func flagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "error: %s\n", errStr)
	}
	return exitcode.UserError
}
