// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/internal/adapter"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const (
	envServerAddress = "AUTH_SERVER_ADDRESS"
	envToken         = "AUTH_TOKEN"

	defaultServerAddress = "localhost:8080"
	defaultTimeout       = 10 * time.Second
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
	errMissingArgs    = errors.New("missing required arguments")
)

const usage = `usage: auth-client [-a address] [-timeout 10s] <command> [flags]

commands:
  version                                   print client and server versions
  signup  -email E -password P [-name N]    register a new account
  login   -email E -password P [-copy]      obtain a token pair
  refresh -token R                          rotate a refresh token
  logout  -token R                          revoke a refresh token
  me      [-token A]                        show the current user
  recover -email E                          request a password reset email
  reset   -token T -password P              set a new password

The access token for "me" defaults to $AUTH_TOKEN and the server address
to $AUTH_SERVER_ADDRESS.
`

// cli runs one client command per invocation.
type cli struct {
	stdout      io.Writer
	getenv      func(string) string
	copyToClipboard func(string) error
	newAPI      func(address string, timeout time.Duration, logger *logger.Logger) (adapter.AuthAPI, error)
	logger      *logger.Logger
}

func (c *cli) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auth-client", flag.ContinueOnError)
	fs.SetOutput(c.stdout)
	fs.Usage = func() { fmt.Fprint(c.stdout, usage) }

	address := c.getenv(envServerAddress)
	if address == "" {
		address = defaultServerAddress
	}
	fs.StringVar(&address, "a", address, "server address")
	timeout := fs.Duration("timeout", defaultTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errNoCommand
	}

	newAPI := c.newAPI
	if newAPI == nil {
		newAPI = adapter.NewHTTPAuthAPI
	}
	api, err := newAPI(address, *timeout, c.logger)
	if err != nil {
		return err
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "version":
		return c.version(ctx, api)
	case "signup":
		return c.signup(ctx, api, cmdArgs)
	case "login":
		return c.login(ctx, api, cmdArgs)
	case "refresh":
		return c.refresh(ctx, api, cmdArgs)
	case "logout":
		return c.logout(ctx, api, cmdArgs)
	case "me":
		return c.me(ctx, api, cmdArgs)
	case "recover":
		return c.recover(ctx, api, cmdArgs)
	case "reset":
		return c.reset(ctx, api, cmdArgs)
	default:
		fs.Usage()
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

func (c *cli) subcommand(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stdout)
	return fs
}

func (c *cli) version(ctx context.Context, api adapter.AuthAPI) error {
	printBuildInfo()

	v, err := api.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Server version: %s\n", v)
	return nil
}

func (c *cli) signup(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("signup")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: -email and -password", errMissingArgs)
	}

	user, err := api.Signup(ctx, models.RegisterRequest{Email: *email, Password: *password, FullName: *name})
	if err != nil {
		return err
	}
	c.printUser(user)
	return nil
}

func (c *cli) login(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	copyToken := fs.Bool("copy", false, "copy the access token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: -email and -password", errMissingArgs)
	}

	tokens, err := api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	c.printTokens(tokens)

	if *copyToken {
		if err = c.copyToClipboard(tokens.AccessToken); err != nil {
			c.logger.Warn().Err(err).Msg("could not copy access token to clipboard")
		} else {
			fmt.Fprintln(c.stdout, "Access token copied to clipboard")
		}
	}
	return nil
}

func (c *cli) refresh(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("refresh")
	token := fs.String("token", "", "refresh token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return fmt.Errorf("%w: -token", errMissingArgs)
	}

	tokens, err := api.Refresh(ctx, *token)
	if err != nil {
		return err
	}
	c.printTokens(tokens)
	return nil
}

func (c *cli) logout(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("logout")
	token := fs.String("token", "", "refresh token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return fmt.Errorf("%w: -token", errMissingArgs)
	}

	if err := api.Logout(ctx, *token); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return nil
}

func (c *cli) me(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("me")
	token := fs.String("token", c.getenv(envToken), "access token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api.SetToken(*token)
	user, err := api.Me(ctx)
	if err != nil {
		return err
	}
	c.printUser(user)
	return nil
}

func (c *cli) recover(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("recover")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("%w: -email", errMissingArgs)
	}

	if err := api.RecoverPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "If the account exists, a recovery email is on its way")
	return nil
}

func (c *cli) reset(ctx context.Context, api adapter.AuthAPI, args []string) error {
	fs := c.subcommand("reset")
	token := fs.String("token", "", "password reset token")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" || *password == "" {
		return fmt.Errorf("%w: -token and -password", errMissingArgs)
	}

	if err := api.ResetPassword(ctx, *token, *password); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Password updated")
	return nil
}

func (c *cli) printTokens(tokens models.TokenResponse) {
	fmt.Fprintf(c.stdout, "Access token:  %s\n", tokens.AccessToken)
	fmt.Fprintf(c.stdout, "Refresh token: %s\n", tokens.RefreshToken)
	fmt.Fprintf(c.stdout, "Expires in:    %ds\n", tokens.ExpiresIn)
}

func (c *cli) printUser(user models.User) {
	fmt.Fprintf(c.stdout, "ID:        %s\n", user.ID)
	fmt.Fprintf(c.stdout, "Email:     %s\n", user.Email)
	fmt.Fprintf(c.stdout, "Full name: %s\n", user.FullName)
	fmt.Fprintf(c.stdout, "Active:    %t\n", user.IsActive)
	fmt.Fprintf(c.stdout, "Superuser: %t\n", user.IsSuperuser)
}
