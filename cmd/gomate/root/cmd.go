// Package rootcmd wires the root cobra.Command for the gomate CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/gomate/cmd/gomate/config"
	destinationscmd "github.com/go-ports/gomate/cmd/gomate/destinations"
	favoritescmd "github.com/go-ports/gomate/cmd/gomate/favorites"
	initcmd "github.com/go-ports/gomate/cmd/gomate/init"
	languagecmd "github.com/go-ports/gomate/cmd/gomate/language"
	logincmd "github.com/go-ports/gomate/cmd/gomate/login"
	logoutcmd "github.com/go-ports/gomate/cmd/gomate/logout"
	mcpcmd "github.com/go-ports/gomate/cmd/gomate/mcp"
	notificationscmd "github.com/go-ports/gomate/cmd/gomate/notifications"
	profilecmd "github.com/go-ports/gomate/cmd/gomate/profile"
	registercmd "github.com/go-ports/gomate/cmd/gomate/register"
	"github.com/go-ports/gomate/cmd/gomate/shared"
	themecmd "github.com/go-ports/gomate/cmd/gomate/theme"
	versioncmd "github.com/go-ports/gomate/cmd/gomate/version"
	whoamicmd "github.com/go-ports/gomate/cmd/gomate/whoami"
)

// New creates and returns the root cobra.Command for the gomate CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "gomate",
		Short:         "GoMate - Sri Lanka travel guide on your device",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Home, "home", "",
		"Override GoMate home directory (default: $GOMATE_HOME env → persisted config → ~/.gomate)",
	)
	root.PersistentFlags().BoolVar(&ctx.JSON, "json", false, "Print results as JSON")

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		registercmd.New(ctx).Cmd(),
		logincmd.New(ctx).Cmd(),
		logoutcmd.New(ctx).Cmd(),
		whoamicmd.New(ctx).Cmd(),
		profilecmd.New(ctx).Cmd(),
		destinationscmd.New(ctx).Cmd(),
		favoritescmd.New(ctx).Cmd(),
		notificationscmd.New(ctx).Cmd(),
		themecmd.New(ctx).Cmd(),
		languagecmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}
