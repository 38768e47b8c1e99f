package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type profileResultMsg struct {
	displayName string
	err         error
}

const helpText = "/room NAME [PASSWORD] create a room · /name NAME set display name · /logout sign out · /quit exit"

// handleCommand runs a slash command typed into the composer.
func (m *Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	command := fields[0]
	args := fields[1:]
	m.input.Reset()

	switch command {
	case "/help":
		m.status = helpText
		return m, nil

	case "/room":
		name := ""
		password := ""
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			password = args[1]
		}
		return m, m.createRoom(name, password)

	case "/name":
		name := strings.TrimSpace(strings.TrimPrefix(text, "/name"))
		if name == "" {
			m.status = "usage: /name DISPLAY_NAME"
			return m, nil
		}
		sessions := m.sessions
		uid := m.self.ID
		return m, func() tea.Msg {
			return profileResultMsg{displayName: name, err: sessions.UpdateProfile(uid, name)}
		}

	case "/logout":
		if err := m.sessions.SignOut(); err != nil {
			m.status = "logout failed: " + err.Error()
			return m, nil
		}
		return m, tea.Quit

	case "/quit":
		return m, tea.Quit
	}

	m.status = "unknown command " + command + " · /help"
	return m, nil
}

func (m *Model) handleProfileResultMsg(msg profileResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "rename failed: " + msg.err.Error()
		return m, nil
	}
	m.self.DisplayName = msg.displayName
	m.status = "display name set to " + msg.displayName
	return m, nil
}
