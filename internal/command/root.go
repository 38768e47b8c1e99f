// Package command wires the dsmm CLI: the interactive chat UI plus the
// account management subcommands around it.
package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "dsmm"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "dsmm - terminal chat client",
		Long:          "dsmm is a terminal chat client over a shared live-query backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation goes straight into chat.
			return runChat(cmd)
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(
		NewChatCmd(),
		NewSignupCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		NewWhoamiCmd(),
		NewNameCmd(),
		NewRoomsCmd(),
		NewRecentCmd(),
		NewUsersCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
