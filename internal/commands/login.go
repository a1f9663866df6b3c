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
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
	Register(&LogoutCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
	google   bool
	token    string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session token" }
func (c *LoginCmd) Usage() string {
	return "tasky login --email <email> --password <password> | --google | --token <token>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.email, c.password, c.google, c.token = "", "", false, ""
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.BoolVar(&c.google, "google", false, "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	modes := 0
	if c.email != "" || c.password != "" {
		modes++
	}
	if c.google {
		modes++
	}
	if c.token != "" {
		modes++
	}
	if modes > 1 {
		return usageError(errOut, "use only one of --email/--password, --google, --token")
	}

	switch {
	case c.google:
		url, err := deps.Auth.GoogleLoginURL(ctx)
		if err != nil {
			return fail(errOut, err)
		}
		fmt.Fprintln(errOut, "Open this URL in your browser:")
		fmt.Fprintln(out, url)
		fmt.Fprintln(errOut, "Then run 'tasky login --token <token>' with the token you receive.")
		return exitcode.Success

	case c.token != "":
		return c.loginWithToken(ctx, cfg, deps, out, errOut)
	}

	if !validEmail(c.email) {
		return usageError(errOut, "valid --email required")
	}
	if c.password == "" {
		return usageError(errOut, "--password required")
	}

	res, err := deps.Auth.Login(ctx, c.email, c.password)
	if err != nil {
		return fail(errOut, err)
	}
	return startSession(cfg, deps, res, out, errOut)
}

// loginWithToken stores a token obtained out of band and checks it by
// fetching the profile. A rejected token is not kept.
func (c *LoginCmd) loginWithToken(ctx context.Context, cfg *config.Config, deps *Deps, out, errOut io.Writer) int {
	token := strings.TrimSpace(c.token)
	if token == "" {
		return usageError(errOut, "--token must not be blank")
	}
	if err := deps.Session.SetToken(token); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	profile, err := deps.Auth.GetUserProfile(ctx)
	if err != nil {
		if service.IsKind(err, service.KindAuth) {
			_ = deps.Session.ClearToken()
		}
		return fail(errOut, err)
	}
	deps.Profile.SetProfile(profile)
	return ok(cfg, out)
}

// startSession persists the token and publishes the user.
func startSession(cfg *config.Config, deps *Deps, res service.AuthResult, out, errOut io.Writer) int {
	if err := deps.Session.SetToken(res.Token); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	deps.Profile.SetProfile(res.User)
	return ok(cfg, out)
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email    string
	password string
	name     string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string {
	return "tasky register --email <email> --password <password> --name <name>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	c.email, c.password, c.name = "", "", ""
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.name, "name", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}
	if !validEmail(c.email) {
		return usageError(errOut, "valid --email required")
	}
	if c.password == "" {
		return usageError(errOut, "--password required")
	}
	name := strings.TrimSpace(c.name)
	if name == "" {
		return usageError(errOut, "--name required")
	}

	res, err := deps.Auth.Register(ctx, c.email, c.password, name)
	if err != nil {
		return fail(errOut, err)
	}
	return startSession(cfg, deps, res, out, errOut)
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "End the session and remove the stored token" }
func (c *LogoutCmd) Usage() string     { return "tasky logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run tells the server first, then always drops the local session.
// A rejected token is already unusable, so that failure is not reported.
func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if !deps.Session.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	remoteErr := deps.Auth.Logout(ctx)

	if err := deps.Session.ClearToken(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	deps.Profile.Clear()

	if remoteErr != nil && !service.IsKind(remoteErr, service.KindAuth) {
		fmt.Fprintf(errOut, "warning: server logout failed: %v\n", remoteErr)
	}
	return ok(cfg, out)
}
