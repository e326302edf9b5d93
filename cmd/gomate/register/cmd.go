// Package registercmd implements the `gomate register` command.
package registercmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate register`.
type Command struct {
	ctx      *shared.Context
	cmd      *cobra.Command
	name     string
	email    string
	password string
}

// New creates the register command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.name, "name", "", "Display name")
	c.cmd.Flags().StringVar(&c.email, "email", "", "Email address")
	c.cmd.Flags().StringVar(&c.password, "password", "", "Password (at least 6 characters)")
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

	u, err := svc.Session.Register(cmd.Context(), c.name, c.email, c.password)
	if err != nil {
		return err
	}
	u = svc.Display(u)
	return c.ctx.Print(cmd.OutOrStdout(), u, func(w io.Writer) {
		fmt.Fprintf(w, "Registered %s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	})
}
