package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasky/internal/config"
	"tasky/internal/exitcode"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&HelpCmd{})
	Register(&VersionCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasky help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) Offline() bool     { return true }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText(DefaultRegistry))
	return exitcode.Success
}

// HelpText renders usage for every command in r.
func HelpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  tasky                List your tasks\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %-20s %s\n", cmd.Name(), cmd.Synopsis())
		fmt.Fprintf(&b, "  %-20s %s\n", "", cmd.Usage())
	}
	b.WriteString(`
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`)
	return b.String()
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "tasky version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }
func (c *VersionCmd) Offline() bool     { return true }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "tasky %s\n", Version)
	return exitcode.Success
}
