package cli

import (
	"errors"
	"fmt"

	"habbit/internal/session"
)

type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Sign in as a user."`
	Logout AuthLogoutCmd `cmd:"" help:"Sign out."`
	Whoami AuthWhoamiCmd `cmd:"" help:"Show the signed-in user."`
}

type AuthLoginCmd struct {
	User string `arg:"" help:"User id to sign in as."`
}

func (c *AuthLoginCmd) Run(ctx *Context) error {
	if err := session.Login(c.User); err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	fmt.Printf("Signed in as %s\n", c.User)
	return nil
}

type AuthLogoutCmd struct{}

func (c *AuthLogoutCmd) Run(ctx *Context) error {
	if err := session.Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}

type AuthWhoamiCmd struct{}

func (c *AuthWhoamiCmd) Run(ctx *Context) error {
	id, err := ctx.Session.UserID()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Println("Not signed in")
			return nil
		}
		return err
	}
	fmt.Println(id)
	return nil
}
