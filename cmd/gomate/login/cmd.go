// Package logincmd implements the `gomate login` command.
package logincmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate login`.
type Command struct {
	ctx      *shared.Context
	cmd      *cobra.Command
	email    string
	password string
}

// New creates the login command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.email, "email", "", "Email address")
	c.cmd.Flags().StringVar(&c.password, "password", "", "Password")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	u, err := svc.Session.Login(cmd.Context(), c.email, c.password)
	if err != nil {
		return err
	}
	u = svc.Display(u)
	return c.ctx.Print(cmd.OutOrStdout(), u, func(w io.Writer) {
		fmt.Fprintf(w, "Welcome back, %s\n", u.Name)
	})
}
