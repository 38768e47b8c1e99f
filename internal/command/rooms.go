package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

// NewRoomsCmd creates the rooms command.
func NewRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			docs, err := ctx.Store.GetAll("rooms")
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no rooms yet")
				return nil
			}

			for i := len(docs) - 1; i >= 0; i-- {
				var room types.Room
				if err := docs[i].Decode(&room); err != nil {
					continue
				}
				line := "#" + room.Name
				if room.Locked() {
					line += " (locked)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
