// Package themecmd implements the `gomate theme` command group.
package themecmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/gomate/cmd/gomate/shared"
	"github.com/go-ports/gomate/internal/models"
)

// Command implements `gomate theme`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the theme command group. Without a subcommand it prints the
// active theme.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "theme",
		Short: "Show or change the appearance theme",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active theme",
			Args:  cobra.NoArgs,
			RunE:  c.runShow,
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE:  c.runToggle,
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Select a theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark)},
			RunE:      c.runSet,
		},
		&cobra.Command{
			Use:   "tokens",
			Short: "Print the style tokens of the active theme",
			Args:  cobra.NoArgs,
			RunE:  c.runTokens,
		},
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()
	return c.printTheme(cmd.OutOrStdout(), svc.Preferences.Theme())
}

func (c *Command) runToggle(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	next, err := svc.Preferences.ToggleTheme(cmd.Context())
	if err != nil {
		return err
	}
	return c.printTheme(cmd.OutOrStdout(), next)
}

func (c *Command) runSet(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Preferences.SetTheme(cmd.Context(), models.Theme(args[0])); err != nil {
		return err
	}
	return c.printTheme(cmd.OutOrStdout(), svc.Preferences.Theme())
}

func (c *Command) runTokens(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	tokens := svc.Preferences.Tokens()
	if c.ctx.JSON {
		return c.ctx.Print(cmd.OutOrStdout(), tokens, nil)
	}
	b, err := yaml.Marshal(tokens)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

func (c *Command) printTheme(w io.Writer, t models.Theme) error {
	return c.ctx.Print(w, map[string]any{"theme": t, "dark": t == models.ThemeDark}, func(w io.Writer) {
		fmt.Fprintln(w, t)
	})
}
