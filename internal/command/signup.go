package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup [email]",
		Short: "Register a new account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			if email == "" {
				email = promptLine("email: ")
			}
			password := promptPassword("password (min 6 chars): ")
			displayName, _ := cmd.Flags().GetString("name")

			identity, err := ctx.Sessions.SignUp(email, password, displayName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account created; signed in as %s\n", identity.Email)
			return nil
		},
	}

	cmd.Flags().String("name", "", "display name shown instead of the email")
	return cmd
}
