// Package whoamicmd implements the `gomate whoami` command.
package whoamicmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate whoami`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the whoami command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
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

	u, ok := svc.CurrentUser()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	return c.ctx.Print(cmd.OutOrStdout(), u, func(w io.Writer) {
		fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
		fmt.Fprintf(w, "id: %s\n", u.ID)
		if u.ProfileImage != "" {
			fmt.Fprintf(w, "image: %s\n", u.ProfileImage)
		}
	})
}
