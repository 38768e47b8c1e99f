package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users command.
func NewUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			users, err := ctx.Sessions.Directory()
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no users yet")
				return nil
			}

			for _, user := range users {
				line := user.Email
				if user.DisplayName != "" {
					line = user.DisplayName + " <" + user.Email + ">"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
