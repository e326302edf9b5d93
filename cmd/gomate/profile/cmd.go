// Package profilecmd implements the `gomate profile` command group.
package profilecmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomate/cmd/gomate/shared"
)

// Command implements `gomate profile`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the profile command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "profile",
		Short: "Edit the signed-in account",
	}
	c.cmd.AddCommand(
		newUpdate(ctx),
		newPassword(ctx),
		newImage(ctx),
		newDelete(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// profile update
// ---------------------------------------------------------------------------

func newUpdate(ctx *shared.Context) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name and email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			cur, ok := svc.Session.Current()
			if ok {
				if !cmd.Flags().Changed("name") {
					name = cur.Name
				}
				if !cmd.Flags().Changed("email") {
					email = cur.Email
				}
			}
			u, err := svc.Session.UpdateProfile(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			u = svc.Display(u)
			return ctx.Print(cmd.OutOrStdout(), u, func(w io.Writer) {
				fmt.Fprintf(w, "Profile updated: %s <%s>\n", u.Name, u.Email)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	return cmd
}

// ---------------------------------------------------------------------------
// profile password
// ---------------------------------------------------------------------------

func newPassword(ctx *shared.Context) *cobra.Command {
	var current, next, confirm string
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Session.ChangePassword(cmd.Context(), current, next, confirm); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "New password again")
	return cmd
}

// ---------------------------------------------------------------------------
// profile image
// ---------------------------------------------------------------------------

func newImage(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "image <uri>",
		Short: "Set the profile image URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			u, err := svc.Session.SetProfileImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			u = svc.Display(u)
			return ctx.Print(cmd.OutOrStdout(), u, func(w io.Writer) {
				fmt.Fprintf(w, "Profile image set to %s\n", u.ProfileImage)
			})
		},
	}
}

// ---------------------------------------------------------------------------
// profile delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the signed-in account and its local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.DeleteAccount(cmd.Context(), password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Current password")
	return cmd
}
