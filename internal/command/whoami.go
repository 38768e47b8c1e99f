package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlacksdl104/dsmm-chat/internal/session"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			identity, err := ctx.Sessions.Restore()
			if err != nil {
				if errors.Is(err, session.ErrNotSignedIn) {
					fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				return err
			}

			label := identity.Email
			if identity.DisplayName != "" {
				label = identity.DisplayName + " <" + identity.Email + ">"
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}
