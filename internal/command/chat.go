package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlacksdl104/dsmm-chat/internal/chat"
	"github.com/rlacksdl104/dsmm-chat/internal/session"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}
}

func runChat(cmd *cobra.Command) error {
	ctx, err := openContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	identity, err := ctx.Sessions.Restore()
	if err != nil {
		if errors.Is(err, session.ErrNotSignedIn) {
			return fmt.Errorf("not signed in; run `%s login` or `%s signup`", AppName, AppName)
		}
		return err
	}

	return chat.Run(chat.Options{
		Store:    ctx.Store,
		Sessions: ctx.Sessions,
		Identity: identity,
		Config:   ctx.Config,
	})
}
