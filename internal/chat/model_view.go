package chat

import (
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderRoomPanel(m.viewport.Height),
		m.viewport.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		m.renderContextLine(),
		m.renderInputLine(),
		m.renderStatusLine(),
	)
	return m.zones.Scan(view)
}

// renderContextLine shows what the next Enter will do when it is not a
// plain send.
func (m *Model) renderContextLine() string {
	switch {
	case m.editingID != "":
		return statusStyle.Render("editing · Enter saves · Esc cancels")
	case m.composer.ReplyTarget() != nil:
		target := m.composer.ReplyTarget()
		return quoteStyle.Render("replying to " + target.Author + ": " + truncateNotice(target.Text, 60) + " · Esc cancels")
	case m.sending:
		return dimStyle.Render("sending…")
	}
	return ""
}

func (m *Model) renderInputLine() string {
	if m.promptRoom != nil {
		return statusStyle.Render("#"+m.promptRoom.Name+" is locked · ") + m.password.View()
	}
	return m.input.View()
}

func (m *Model) renderStatusLine() string {
	return statusStyle.Render(m.status)
}

func (m *Model) resize() {
	width := m.width - roomPanelWidth - 1
	if width < 20 {
		width = 20
	}
	height := m.height - 3 - m.input.Height()
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.SetWidth(m.width - 2)
	m.password.Width = m.width - roomPanelWidth
}
