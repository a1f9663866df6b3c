package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"tasky/internal/config"
	"tasky/internal/exitcode"
	"tasky/internal/output"
	"tasky/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
	Register(&ProfileCmd{})
}

// WhoamiCmd prints the signed-in user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "tasky whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	p, err := deps.Auth.GetUserProfile(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	unsubscribe := deps.Profile.Subscribe(func(p service.UserProfile) {
		output.FormatProfile(out, p)
	})
	deps.Profile.SetProfile(p)
	unsubscribe()

	fmt.Fprintf(out, "user id: %d\n", deps.Session.CurrentUserID())
	if exp := deps.Session.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(out, "expires: %s\n", exp.UTC().Format(time.RFC3339))
	}
	return exitcode.Success
}

// ProfileCmd shows or edits the signed-in user's profile.
type ProfileCmd struct {
	name  optString
	email optString
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show or update your profile" }
func (c *ProfileCmd) Usage() string     { return "tasky profile [--name <name>] [--email <email>]" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	c.name, c.email = optString{}, optString{}
	fs.Var(&c.name, "name", "")
	fs.Var(&c.email, "email", "")
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	current, err := deps.Auth.GetUserProfile(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	deps.Profile.SetProfile(current)

	if !c.name.set && !c.email.set {
		output.FormatProfile(out, current)
		return exitcode.Success
	}

	next := current
	c.name.apply(&next.Name)
	c.email.apply(&next.Email)
	next.Name = strings.TrimSpace(next.Name)
	if next.Name == "" {
		return usageError(errOut, "name must not be blank")
	}
	if c.email.set && !validEmail(next.Email) {
		return usageError(errOut, "invalid email: %s", next.Email)
	}

	updated, err := deps.Auth.UpdateUserProfile(ctx, next)
	if err != nil {
		return fail(errOut, err)
	}
	if c.email.set {
		deps.Profile.SetProfile(updated)
	} else {
		deps.Profile.UpdateName(updated.Name)
	}

	if !cfg.Quiet {
		output.FormatProfile(out, deps.Profile.Profile())
	}
	return exitcode.Success
}
