package compose

import (
	"regexp"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

var mentionRe = regexp.MustCompile(`@(\w+)`)

// ScanMentions finds @token mentions in sent text and resolves each
// against the user directory by exact display name or email local
// part. Every resolved occurrence appends one notification — repeats
// are deliberately not deduplicated. Unresolved tokens are ignored.
func ScanMentions(text string, directory []types.User) []types.Notification {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var notifications []types.Notification
	for _, match := range matches {
		token := match[1]
		for _, user := range directory {
			if user.DisplayName == token || types.EmailLocalPart(user.Email) == token {
				notifications = append(notifications, types.Notification{
					Recipient: user.Label(),
					Text:      text,
				})
				break
			}
		}
	}
	return notifications
}
