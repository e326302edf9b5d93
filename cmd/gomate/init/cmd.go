// Package initcmd implements the `gomate init` command.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Create the GoMate home and its database",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer svc.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "GoMate initialized at %s\n", svc.Home)
	return nil
}
