package chat

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlacksdl104/dsmm-chat/internal/compose"
)

type sendResultMsg struct {
	text string
	err  error
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.editingID != "" {
		return m, m.saveEdit()
	}

	text := strings.TrimSpace(m.input.Value())
	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}
	if m.sending {
		return m, nil
	}

	msg, err := m.composer.Build(m.roomID, text, m.self)
	if err != nil {
		if !errors.Is(err, compose.ErrEmptyMessage) {
			m.status = err.Error()
		}
		return m, nil
	}

	m.sending = true
	m.status = ""
	m.input.Blur()
	fields := compose.Fields(msg)
	st := m.store
	return m, func() tea.Msg {
		_, err := st.Create("messages", fields)
		return sendResultMsg{text: msg.Text, err: err}
	}
}

func (m *Model) handleSendResultMsg(msg sendResultMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	if !m.panelFocus {
		m.input.Focus()
	}
	if msg.err != nil {
		// The draft and reply target are kept for retry.
		m.status = "send failed: " + msg.err.Error()
		return m, nil
	}

	m.input.Reset()
	m.composer.ClearReplyTarget()
	m.anchorBottom = true
	m.status = ""
	return m, m.notifyMentions(msg.text)
}
