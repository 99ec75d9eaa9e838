package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"firetask/internal/backend/identity"
	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/service"
	"firetask/internal/session"
)

func init() {
	Register(&LoginCmd{})
	Register(&SignupCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
	identity service.Identity
}

// SetIdentity injects the identity provider (for testing).
func (c *LoginCmd) SetIdentity(id service.Identity) {
	c.identity = id
}

// SetPassword sets the password flag (for testing).
func (c *LoginCmd) SetPassword(p string) {
	c.password = p
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in with email and password" }
func (c *LoginCmd) Usage() string     { return "firetask login [--password <p>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, cfg, c.identity, args, c.password, false, out, errOut)
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	password string
	identity service.Identity
}

// SetIdentity injects the identity provider (for testing).
func (c *SignupCmd) SetIdentity(id service.Identity) {
	c.identity = id
}

// SetPassword sets the password flag (for testing).
func (c *SignupCmd) SetPassword(p string) {
	c.password = p
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string     { return "firetask signup [--password <p>] <email>" }
func (c *SignupCmd) NeedsAuth() bool   { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, cfg, c.identity, args, c.password, true, out, errOut)
}

// runAuth is the shared implementation for login and signup.
func runAuth(ctx context.Context, cfg *config.Config, id service.Identity, args []string, password string, signup bool, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]

	if !signup && cfg.HasSession() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already signed in (run: firetask logout first)")
		}
		return exitcode.Success
	}

	if password == "" {
		var err error
		password, err = promptPassword(errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	if id == nil {
		var err error
		id, err = identity.New(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
	}

	var sess session.Session
	var err error
	if signup {
		sess, err = id.SignUp(ctx, email, password)
	} else {
		sess, err = id.SignIn(ctx, email, password)
	}
	if err != nil {
		return authExit(errOut, err)
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := sess.Save(cfg.SessionPath()); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", sess.Email)
	}
	return exitcode.Success
}

// promptPassword reads a password line from stdin.
func promptPassword(errOut io.Writer) (string, error) {
	fmt.Fprint(errOut, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
