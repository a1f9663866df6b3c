package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasky/internal/config"
	"tasky/internal/exitcode"
)

func init() {
	Register(&ForgotPasswordCmd{})
	Register(&ResetPasswordCmd{})
	Register(&PasswdCmd{})
}

// ForgotPasswordCmd requests a one-time reset code by email.
type ForgotPasswordCmd struct {
	email string
}

func (c *ForgotPasswordCmd) Name() string      { return "forgot-password" }
func (c *ForgotPasswordCmd) Aliases() []string { return nil }
func (c *ForgotPasswordCmd) Synopsis() string  { return "Email a password reset code" }
func (c *ForgotPasswordCmd) Usage() string     { return "tasky forgot-password --email <email>" }
func (c *ForgotPasswordCmd) NeedsAuth() bool   { return false }

func (c *ForgotPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	c.email = ""
	fs.StringVar(&c.email, "email", "", "")
}

func (c *ForgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if !validEmail(c.email) {
		return usageError(errOut, "valid --email required")
	}
	if err := deps.Auth.ForgotPassword(ctx, c.email); err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "reset code sent to %s\n", c.email)
	}
	return exitcode.Success
}

// ResetPasswordCmd sets a new password using a reset code.
type ResetPasswordCmd struct {
	email    string
	otp      string
	password string
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return nil }
func (c *ResetPasswordCmd) Synopsis() string  { return "Set a new password with a reset code" }
func (c *ResetPasswordCmd) Usage() string {
	return "tasky reset-password --email <email> --otp <code> --password <new-password>"
}
func (c *ResetPasswordCmd) NeedsAuth() bool { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	c.email, c.otp, c.password = "", "", ""
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.otp, "otp", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if !validEmail(c.email) {
		return usageError(errOut, "valid --email required")
	}
	if c.otp == "" {
		return usageError(errOut, "--otp required")
	}
	if c.password == "" {
		return usageError(errOut, "--password required")
	}
	if err := deps.Auth.ResetPassword(ctx, c.email, c.otp, c.password); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

// PasswdCmd changes the password of the signed-in user.
type PasswdCmd struct {
	oldPassword string
	newPassword string
}

func (c *PasswdCmd) Name() string      { return "passwd" }
func (c *PasswdCmd) Aliases() []string { return nil }
func (c *PasswdCmd) Synopsis() string  { return "Change your password" }
func (c *PasswdCmd) Usage() string     { return "tasky passwd --old <password> --new <password>" }
func (c *PasswdCmd) NeedsAuth() bool   { return true }

func (c *PasswdCmd) RegisterFlags(fs *flag.FlagSet) {
	c.oldPassword, c.newPassword = "", ""
	fs.StringVar(&c.oldPassword, "old", "", "")
	fs.StringVar(&c.newPassword, "new", "", "")
}

func (c *PasswdCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if c.oldPassword == "" || c.newPassword == "" {
		return usageError(errOut, "--old and --new required")
	}
	if c.oldPassword == c.newPassword {
		return usageError(errOut, "new password must differ from the old one")
	}
	if err := deps.Auth.ChangePassword(ctx, c.oldPassword, c.newPassword); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
