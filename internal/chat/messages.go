package chat

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rlacksdl104/dsmm-chat/internal/markdown"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

const deleteBarWidth = 20

// renderMessages builds the feed content and records the first line of
// every message for jump scrolling.
func (m *Model) renderMessages() string {
	m.lineIndex = make(map[string]int)

	if m.roomID == "" {
		return dimStyle.Render("no room selected · pick one from the panel")
	}
	if m.sync.Failed() {
		return dimStyle.Render("feed unavailable")
	}

	messages := m.sync.Messages()
	if len(messages) == 0 {
		return dimStyle.Render("no messages yet")
	}

	width := m.feedWidth()
	var blocks []string
	line := 0
	for i := range messages {
		block := m.renderMessage(messages[i], width)
		m.lineIndex[messages[i].ID] = line
		line += lipgloss.Height(block)
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderMessage(msg types.Message, width int) string {
	own := msg.UserID == m.self.ID

	var lines []string
	lines = append(lines, m.renderHeader(msg))
	if msg.ReplyTo != nil {
		lines = append(lines, m.renderQuote(msg))
	}
	lines = append(lines, markdown.Render(msg.Text))
	if m.press != nil && m.press.MessageID == msg.ID {
		lines = append(lines, renderDeleteBar(m.press.Progress(time.Now())))
	}

	block := strings.Join(lines, "\n")
	if m.highlightID == msg.ID {
		block = highlightStyle.Render(block)
	}
	block = m.applySwipeOffset(msg.ID, own, block)

	align := lipgloss.Left
	if own {
		align = lipgloss.Right
	}
	block = lipgloss.PlaceHorizontal(width, align, block)
	return m.zones.Mark("msg-"+msg.ID, block)
}

func (m *Model) renderHeader(msg types.Message) string {
	author := msg.Author()
	header := lipgloss.NewStyle().Bold(true).Foreground(colorForUser(author)).Render(author)
	header += dimStyle.Render(" · " + humanize.Time(time.UnixMilli(msg.CreatedAt)))
	if msg.Edited {
		header += editBadgeStyle.Render(" (edited)")
	}
	if m.hoverID == msg.ID && !m.mouseDown {
		header += "  " + m.zones.Mark("reply-"+msg.ID, affordStyle.Render("↩ reply"))
	}
	return header
}

// renderQuote shows the frozen reply snapshot. It quotes what the
// target said when the reply was sent, not what it says now.
func (m *Model) renderQuote(msg types.Message) string {
	quote := quoteStyle.Render("│ " + msg.ReplyTo.Author + ": " + msg.ReplyTo.Text)
	return m.zones.Mark("quote-"+msg.ID, quote)
}

func renderDeleteBar(progress float64) string {
	filled := int(progress * deleteBarWidth)
	if filled > deleteBarWidth {
		filled = deleteBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", deleteBarWidth-filled)
	return deleteBarStyle.Render(bar + " hold to delete")
}

// applySwipeOffset shifts a dragged message by one cell per ten points
// of locked travel, in its outward direction only.
func (m *Model) applySwipeOffset(id string, own bool, block string) string {
	if m.swipe == nil || m.swipe.MessageID != id || !m.swipe.Locked() {
		return block
	}
	shift := int(math.Abs(m.swipe.Offset()) / CellPoints)
	if shift <= 0 {
		return block
	}
	pad := strings.Repeat(" ", shift)
	lines := strings.Split(block, "\n")
	for i := range lines {
		if own {
			lines[i] = lines[i] + pad
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) feedWidth() int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	return width
}
