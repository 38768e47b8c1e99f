package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// ScrollSettleDelay is how long the anchor controller waits after a
	// snapshot lands before committing the bottom scroll, letting the
	// layout settle first.
	ScrollSettleDelay = 100 * time.Millisecond
	// HighlightDuration is how long a jumped-to message stays marked.
	HighlightDuration = 2 * time.Second
)

type scrollSettleMsg struct{ seq int }

type highlightClearMsg struct{ seq int }

func (m *Model) refreshViewport(scrollToBottom bool) {
	content := m.renderMessages()
	// Keep content taller than the viewport to work around renderer
	// height-match clipping.
	contentHeight := lipgloss.Height(content)
	if contentHeight > 0 && contentHeight <= m.viewport.Height {
		content = "\n" + content
	}
	m.viewport.SetContent(content)
	m.contentHeight = lipgloss.Height(content)
	if scrollToBottom {
		m.viewport.GotoBottom()
		return
	}
	if m.viewport.Height <= 0 {
		return
	}
	maxOffset := m.contentHeight - m.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewport.YOffset > maxOffset {
		m.viewport.SetYOffset(maxOffset)
	}
}

// atBottom reports whether the viewport sits within a few lines of the
// end of the feed. It measures against the full content height from
// the last refresh, not the rendered window, which is always exactly
// Height lines tall.
func (m *Model) atBottom() bool {
	if m.viewport.Height <= 0 {
		return true
	}
	maxOffset := m.contentHeight - m.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	return m.viewport.YOffset >= maxOffset-3
}

// scheduleScrollSettle defers the bottom scroll so it lands on the
// freshly laid-out content. A newer schedule supersedes older ones.
func (m *Model) scheduleScrollSettle() tea.Cmd {
	m.scrollSeq++
	seq := m.scrollSeq
	return tea.Tick(ScrollSettleDelay, func(time.Time) tea.Msg {
		return scrollSettleMsg{seq: seq}
	})
}

func (m *Model) handleScrollSettleMsg(msg scrollSettleMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.scrollSeq {
		return m, nil
	}
	m.viewport.GotoBottom()
	return m, nil
}

// jumpTo scrolls the feed so the given message is centered and marks
// it briefly. Jumping to a message that no longer exists is a no-op;
// a dangling reply quote still renders, it just leads nowhere.
func (m *Model) jumpTo(id string) tea.Cmd {
	if m.sync.Find(id) == nil {
		return nil
	}

	m.highlightID = id
	m.highlightSeq++
	seq := m.highlightSeq
	m.refreshViewport(false)

	line, ok := m.lineIndex[id]
	if ok {
		offset := line - m.viewport.Height/2
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
	}
	return tea.Tick(HighlightDuration, func(time.Time) tea.Msg {
		return highlightClearMsg{seq: seq}
	})
}

func (m *Model) handleHighlightClearMsg(msg highlightClearMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.highlightSeq || m.highlightID == "" {
		return m, nil
	}
	m.highlightID = ""
	m.refreshViewport(false)
	return m, nil
}
