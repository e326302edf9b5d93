// Package languagecmd implements the `gomate language` command group.
package languagecmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/preferences"
)

// Command implements `gomate language`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the language command group. Without a subcommand it prints
// the active language.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "language",
		Aliases: []string{"lang"},
		Short:   "Show or change the UI language",
		Args:    cobra.NoArgs,
		RunE:    c.runShow,
	}
	c.cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active language",
			Args:  cobra.NoArgs,
			RunE:  c.runShow,
		},
		&cobra.Command{
			Use:   "set <English|Sinhala>",
			Short: "Select a language",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runSet,
		},
		&cobra.Command{
			Use:   "translate [key...]",
			Short: "Translate keys in the active language (all keys when none given)",
			RunE:  c.runTranslate,
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
	lang := svc.Preferences.Language()
	return c.ctx.Print(cmd.OutOrStdout(), map[string]any{"language": lang}, func(w io.Writer) {
		fmt.Fprintln(w, lang)
	})
}

func (c *Command) runSet(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Preferences.SetLanguage(cmd.Context(), models.Language(args[0])); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), svc.Preferences.Translate("welcome"))
	return nil
}

func (c *Command) runTranslate(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	keys := args
	if len(keys) == 0 {
		keys = preferences.TranslationKeys()
	}
	table := make(map[string]string, len(keys))
	for _, k := range keys {
		table[k] = svc.Preferences.Translate(k)
	}
	return c.ctx.Print(cmd.OutOrStdout(), table, func(w io.Writer) {
		if len(args) == 1 {
			fmt.Fprintln(w, table[args[0]])
			return
		}
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, table[k])
		}
	})
}
