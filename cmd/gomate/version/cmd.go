// Package versioncmd implements the `gomate version` command.
package versioncmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
	"github.com/go-ports/gomate/internal/buildinfo"
)

// Command implements `gomate version`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the version command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	return c.ctx.Print(cmd.OutOrStdout(), map[string]string{
		"version":    buildinfo.Version,
		"commit":     buildinfo.GitCommit,
		"build_date": buildinfo.BuildDate,
	}, func(w io.Writer) { fmt.Fprintln(w, buildinfo.Summary()) })
}
