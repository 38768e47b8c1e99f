package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewNameCmd creates the name command.
func NewNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name DISPLAY_NAME",
		Short: "Set the display name shown instead of the email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			identity, err := ctx.Sessions.Restore()
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			if err := ctx.Sessions.UpdateProfile(identity.UID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "display name set to %s\n", name)
			return nil
		},
	}
}
