// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasky/internal/config"
	"tasky/internal/exitcode"
	"tasky/internal/profile"
	"tasky/internal/service"
	"tasky/internal/session"
)

// Deps holds everything a command may act on.
// Auth, Tasks and Categories share the transport authorized by Session.
type Deps struct {
	Session    *session.Session
	Profile    *profile.Store
	Auth       service.Auth
	Tasks      service.Tasks
	Categories service.Categories
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored token.
	// Commands like help, version, login, register return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// deps is nil for commands that never talk to the server.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int
}

// Offline is implemented by commands that run without Deps.
type Offline interface {
	Offline() bool
}

// fail prints err and maps it to an exit code.
func fail(errOut io.Writer, err error) int {
	code := exitcode.FromError(err)
	if code == exitcode.AuthError {
		fmt.Fprintf(errOut, "error: %v (run: tasky login)\n", err)
		return code
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return code
}

// usageError prints a message for bad arguments.
func usageError(errOut io.Writer, format string, a ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", a...)
	return exitcode.UserError
}

// ok prints the default success line unless quiet.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
