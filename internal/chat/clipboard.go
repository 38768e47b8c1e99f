package chat

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type copyResultMsg struct{ err error }

// copyMessageAt copies the text of the message under the pointer.
func (m *Model) copyMessageAt(msg tea.MouseMsg) tea.Cmd {
	id := m.messageAt(msg)
	if id == "" {
		return nil
	}
	target := m.sync.Find(id)
	if target == nil {
		return nil
	}
	text := target.Text
	m.status = "copied"
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(text)}
	}
}
