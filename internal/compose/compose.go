// Package compose builds outgoing messages: local validation, frozen
// reply snapshots, and mention scanning against the user directory.
package compose

import (
	"errors"
	"strings"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

// MaxMessageLength is the client-side body limit, enforced before any
// write reaches the store.
const MaxMessageLength = 100

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message exceeds 100 characters")
	ErrNoRoom         = errors.New("no room selected")
)

// Composer holds the at-most-one reply target for the next send.
type Composer struct {
	replyTo *types.ReplySnapshot
}

// SetReplyTarget freezes a snapshot of the target message. The
// snapshot is a point-in-time quote: later edits or deletion of the
// target do not touch it.
func (c *Composer) SetReplyTarget(msg types.Message) {
	c.replyTo = &types.ReplySnapshot{
		ID:     msg.ID,
		Text:   msg.Text,
		Author: msg.Author(),
	}
}

// ReplyTarget returns the pending snapshot, or nil.
func (c *Composer) ReplyTarget() *types.ReplySnapshot {
	return c.replyTo
}

// ClearReplyTarget drops the pending snapshot.
func (c *Composer) ClearReplyTarget() {
	c.replyTo = nil
}

// Build validates the draft and produces the outgoing message. It is
// purely local: a validation failure means no write was attempted, and
// the reply target is kept so the user can retry. The store assigns id
// and creation timestamp on submit; callers clear the composer only
// after the write is acknowledged.
func (c *Composer) Build(roomID, text string, author types.User) (types.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.Message{}, ErrEmptyMessage
	}
	if len([]rune(trimmed)) > MaxMessageLength {
		return types.Message{}, ErrMessageTooLong
	}
	if roomID == "" {
		return types.Message{}, ErrNoRoom
	}

	msg := types.Message{
		RoomID:      roomID,
		UserID:      author.ID,
		UserEmail:   author.Email,
		DisplayName: author.DisplayName,
		Text:        trimmed,
		ReplyTo:     c.replyTo,
	}
	return msg, nil
}

// Fields flattens an outgoing message into store document fields.
func Fields(msg types.Message) map[string]any {
	fields := map[string]any{
		"roomId":    msg.RoomID,
		"userId":    msg.UserID,
		"userEmail": msg.UserEmail,
		"text":      msg.Text,
	}
	if msg.DisplayName != "" {
		fields["displayName"] = msg.DisplayName
	}
	if msg.ReplyTo != nil {
		fields["replyTo"] = map[string]any{
			"id":     msg.ReplyTo.ID,
			"text":   msg.ReplyTo.Text,
			"author": msg.ReplyTo.Author,
		}
	}
	return fields
}
