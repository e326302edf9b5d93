// Package notificationscmd implements the `gomate notifications` command group.
package notificationscmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/service"
)

// Command implements `gomate notifications`.
type Command struct {
	ctx    *shared.Context
	cmd    *cobra.Command
	unread bool
}

// New creates the notifications command group. Without a subcommand it
// lists the log, newest first.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Read and manage notifications",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	c.cmd.Flags().BoolVar(&c.unread, "unread", false, "Only show unread notifications")

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}
	list.Flags().BoolVar(&c.unread, "unread", false, "Only show unread notifications")

	c.cmd.AddCommand(
		list,
		newMutation(ctx, "read <id>", "Mark a notification as read", cobra.ExactArgs(1), func(cmd *cobra.Command, svc *service.Service, args []string) error {
			return svc.Notifications.MarkAsRead(cmd.Context(), args[0])
		}),
		newMutation(ctx, "read-all", "Mark every notification as read", cobra.NoArgs, func(cmd *cobra.Command, svc *service.Service, _ []string) error {
			return svc.Notifications.MarkAllAsRead(cmd.Context())
		}),
		newMutation(ctx, "clear <id>", "Remove a notification", cobra.ExactArgs(1), func(cmd *cobra.Command, svc *service.Service, args []string) error {
			return svc.Notifications.Clear(cmd.Context(), args[0])
		}),
		newMutation(ctx, "clear-all", "Remove every notification", cobra.NoArgs, func(cmd *cobra.Command, svc *service.Service, _ []string) error {
			return svc.Notifications.ClearAll(cmd.Context())
		}),
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

	all := svc.Notifications.List()
	items := make([]models.Notification, 0, len(all))
	for _, n := range all {
		if c.unread && n.Read {
			continue
		}
		items = append(items, n)
	}
	return c.ctx.Print(cmd.OutOrStdout(), items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, svc.Preferences.Translate("noNotifications"))
			return
		}
		fmt.Fprintf(w, "%d unread\n", svc.Notifications.UnreadCount())
		for _, n := range items {
			mark := " "
			if !n.Read {
				mark = "•"
			}
			fmt.Fprintf(w, "%s [%s] %s  %s\n    %s\n",
				mark, n.ID, n.Timestamp.Local().Format(time.DateTime), n.Title, n.Message)
		}
	})
}

func newMutation(
	ctx *shared.Context,
	use, short string,
	args cobra.PositionalArgs,
	apply func(*cobra.Command, *service.Service, []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, a []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := apply(cmd, svc, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", svc.Notifications.UnreadCount())
			return nil
		},
	}
}
