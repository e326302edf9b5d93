// Package favoritescmd implements the `gomate favorites` command group.
package favoritescmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate favorites`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the favorites command group. Without a subcommand it lists
// the favorites.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite destinations",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite destinations",
			Args:  cobra.NoArgs,
			RunE:  c.runList,
		},
		newToggle(ctx),
		newExport(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	dests := svc.Favorites.Destinations()
	return c.ctx.Print(cmd.OutOrStdout(), dests, func(w io.Writer) {
		if len(dests) == 0 {
			fmt.Fprintln(w, svc.Preferences.Translate("noFavorites"))
			return
		}
		for _, d := range dests {
			fmt.Fprintf(w, "[%s] %s - %s\n", d.ID, d.Name, d.Location)
		}
	})
}

// ---------------------------------------------------------------------------
// favorites toggle
// ---------------------------------------------------------------------------

func newToggle(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a destination from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			id := args[0]
			added, err := svc.Favorites.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			result := map[string]any{"id": id, "favorite": added}
			return ctx.Print(cmd.OutOrStdout(), result, func(w io.Writer) {
				name := id
				if d, ok := svc.Catalog.ByID(id); ok {
					name = d.Name
				}
				if added {
					fmt.Fprintf(w, "Added %s to favorites\n", name)
				} else {
					fmt.Fprintf(w, "Removed %s from favorites\n", name)
				}
			})
		},
	}
}

// ---------------------------------------------------------------------------
// favorites export
// ---------------------------------------------------------------------------

func newExport(ctx *shared.Context) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorites as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			doc, err := svc.ExportFavorites(output)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output != "" {
				fmt.Fprintf(out, "Exported %d favorites to %s\n", len(svc.Favorites.List()), output)
				return nil
			}
			fmt.Fprint(out, doc)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
