package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rlacksdl104/dsmm-chat/internal/core"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

const defaultRecentCount = 50

// NewRecentCmd creates the recent command. It lists the latest messages
// across all rooms, newest first, without opening the chat UI.
func NewRecentCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent messages across all rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			roomNames, err := roomNamesByID(ctx)
			if err != nil {
				return err
			}

			docs, err := ctx.Store.GetAll("messages")
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no messages yet")
				return nil
			}

			shown := 0
			for i := len(docs) - 1; i >= 0 && shown < last; i-- {
				var msg types.Message
				if err := docs[i].Decode(&msg); err != nil {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatRecentLine(msg, roomNames))
				shown++
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&last, "last", defaultRecentCount, "number of messages to show")
	return cmd
}

func roomNamesByID(ctx *commandContext) (map[string]string, error) {
	docs, err := ctx.Store.GetAll("rooms")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		var room types.Room
		if err := doc.Decode(&room); err != nil {
			continue
		}
		names[room.ID] = room.Name
	}
	return names, nil
}

func formatRecentLine(msg types.Message, roomNames map[string]string) string {
	room := roomNames[msg.RoomID]
	if room == "" {
		room = msg.RoomID
	}
	stamp := time.UnixMilli(msg.CreatedAt).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s  #%s  %s [%s]  %s",
		stamp, room, msg.Author(), core.ShortID(msg.UserID, 6), msg.Text)
}
