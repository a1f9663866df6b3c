package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasky/internal/config"
	"tasky/internal/exitcode"
	"tasky/internal/service"
)

func init() {
	Register(&RmCmd{})
	Register(&DoneCmd{})
	Register(&StatusCmd{})
}

// RmCmd deletes tasks in one batch.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "tasky rm <id>..." }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	ids, err := ParseIDs(args)
	if err != nil {
		return idError(errOut, "task", err)
	}
	if err := deps.Tasks.DeleteMany(ctx, ids); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

// DoneCmd marks tasks done in one batch.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks done" }
func (c *DoneCmd) Usage() string     { return "tasky done <id>..." }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, deps, service.StatusDone, args, out, errOut)
}

// StatusCmd sets an arbitrary status on tasks in one batch.
type StatusCmd struct {
	status string
}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Set the status of tasks" }
func (c *StatusCmd) Usage() string     { return "tasky status --set <status> <id>..." }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {
	c.status = ""
	fs.StringVar(&c.status, "set", "", "")
}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	status := strings.TrimSpace(c.status)
	if status == "" {
		return usageError(errOut, "--set <status> required")
	}
	return setStatus(ctx, cfg, deps, status, args, out, errOut)
}

func setStatus(ctx context.Context, cfg *config.Config, deps *Deps, status string, args []string, out, errOut io.Writer) int {
	ids, err := ParseIDs(args)
	if err != nil {
		return idError(errOut, "task", err)
	}
	if err := deps.Tasks.UpdateStatusMany(ctx, ids, status); err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%d %s)\n", len(ids), plural(len(ids), "task", "tasks"))
	}
	return exitcode.Success
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
