// Package destinationscmd implements the `gomate destinations` command group.
package destinationscmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
	"github.com/go-ports/gomate/internal/catalog"
	"github.com/go-ports/gomate/internal/markdown"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/search"
)

// Command implements `gomate destinations`.
type Command struct {
	ctx      *shared.Context
	cmd      *cobra.Command
	category string
}

// New creates the destinations command group. Without a subcommand it lists
// the catalog.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"dest"},
		Short:   "Browse the destination catalog",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	c.cmd.Flags().StringVar(&c.category, "category", catalog.CategoryAll, "Filter by category")

	list := &cobra.Command{
		Use:   "list",
		Short: "List destinations",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}
	list.Flags().StringVar(&c.category, "category", catalog.CategoryAll, "Filter by category")

	c.cmd.AddCommand(
		list,
		newSearch(ctx),
		newShow(ctx),
		newRelated(ctx),
		newReindex(ctx),
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

	dests := svc.Catalog.ByCategory(c.category)
	return c.ctx.Print(cmd.OutOrStdout(), dests, func(w io.Writer) {
		printList(w, dests, svc.Favorites.IsFavorite)
	})
}

func printList(w io.Writer, dests []models.Destination, isFavorite func(string) bool) {
	if len(dests) == 0 {
		fmt.Fprintln(w, "No destinations found.")
		return
	}
	for _, d := range dests {
		star := " "
		if isFavorite(d.ID) {
			star = "*"
		}
		fmt.Fprintf(w, "%s [%s] %s - %s (%s, %.1f)\n", star, d.ID, d.Name, d.Location, d.Category, d.Rating)
	}
}

func printResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No destinations found.")
		return
	}
	for i, r := range results {
		d := r.Destination
		fmt.Fprintf(w, "%d. [%s] %s - %s (score %.2f)\n", i+1, d.ID, d.Name, d.Location, r.Score)
	}
}

// ---------------------------------------------------------------------------
// destinations search
// ---------------------------------------------------------------------------

func newSearch(ctx *shared.Context) *cobra.Command {
	var (
		semantic bool
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search destinations by name, location or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			results, err := svc.SearchDestinations(cmd.Context(), args[0], limit, semantic)
			if err != nil {
				return err
			}
			return ctx.Print(cmd.OutOrStdout(), results, func(w io.Writer) { printResults(w, results) })
		},
	}
	cmd.Flags().BoolVar(&semantic, "semantic", false, "Blend in vector similarity")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (0 means all)")
	return cmd
}

// ---------------------------------------------------------------------------
// destinations show
// ---------------------------------------------------------------------------

func newShow(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a destination's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			d, ok := svc.Catalog.ByID(args[0])
			if !ok {
				return fmt.Errorf("destination %q not found", args[0])
			}
			return ctx.Print(cmd.OutOrStdout(), d, func(w io.Writer) {
				fmt.Fprint(w, markdown.RenderDestination(d, svc.Preferences.Language()))
			})
		},
	}
}

// ---------------------------------------------------------------------------
// destinations related
// ---------------------------------------------------------------------------

func newRelated(ctx *shared.Context) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "related <id>",
		Short: "List destinations similar to the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if _, ok := svc.Catalog.ByID(args[0]); !ok {
				return fmt.Errorf("destination %q not found", args[0])
			}
			results, err := svc.Related(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return ctx.Print(cmd.OutOrStdout(), results, func(w io.Writer) { printResults(w, results) })
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 3, "Maximum results")
	return cmd
}

// ---------------------------------------------------------------------------
// destinations reindex
// ---------------------------------------------------------------------------

func newReindex(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the related-destinations index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			out := cmd.OutOrStdout()
			res, err := svc.Reindex(cmd.Context(), func(current, total int) {
				if !ctx.JSON {
					fmt.Fprintf(out, "\r  %d/%d", current, total)
				}
			})
			if errors.Is(err, search.ErrNoProvider) {
				fmt.Fprintln(out, "Related index disabled (related.provider is none).")
				return nil
			}
			if err != nil {
				return err
			}
			return ctx.Print(out, res, func(w io.Writer) {
				fmt.Fprintf(w, "\nRe-indexed %d destinations with %s (%d dims)\n", res.Count, res.Provider, res.Dim)
			})
		},
	}
}
