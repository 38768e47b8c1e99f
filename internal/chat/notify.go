package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/gobwas/glob"

	"github.com/rlacksdl104/dsmm-chat/internal/compose"
)

// notifyMentions scans a just-sent message for mentions, queues the
// notifications, and fires desktop alerts for unmuted recipients. The
// queue is additive: sending the same text twice notifies twice.
func (m *Model) notifyMentions(text string) tea.Cmd {
	notifications := compose.ScanMentions(text, m.users)
	if len(notifications) == 0 {
		return nil
	}
	m.notices = append(m.notices, notifications...)

	muted := m.config.MuteMentions
	return func() tea.Msg {
		for _, notice := range notifications {
			if mentionMuted(notice.Recipient, muted) {
				continue
			}
			_ = beeep.Notify("dsmm · @"+notice.Recipient, truncateNotice(notice.Text, 100), "")
		}
		return nil
	}
}

func mentionMuted(recipient string, patterns []string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(recipient) {
			return true
		}
	}
	return false
}

func truncateNotice(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
