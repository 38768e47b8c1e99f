package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptRoom != nil {
		return m.handlePasswordKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		m.panelFocus = !m.panelFocus
		if m.panelFocus {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		return m, nil
	}

	if m.panelFocus {
		return m.handlePanelKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.handleSubmit()
	case tea.KeyEsc:
		return m.handleEscape()
	case tea.KeyUp:
		if strings.TrimSpace(m.input.Value()) == "" && m.editingID == "" {
			return m.beginEditLast()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEscape peels back one layer of state at a time: edit mode
// first, then a pending reply, then the status line.
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.editingID != "":
		m.cancelEdit()
	case m.composer.ReplyTarget() != nil:
		m.composer.ClearReplyTarget()
	default:
		m.status = ""
	}
	return m, nil
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.panelIndex > 0 {
			m.panelIndex--
		}
		return m, nil
	case "down", "j":
		if m.panelIndex < len(m.rooms)-1 {
			m.panelIndex++
		}
		return m, nil
	case "enter":
		if m.panelIndex < len(m.rooms) {
			room := m.rooms[m.panelIndex]
			m.panelFocus = false
			m.input.Focus()
			return m, m.selectRoom(room)
		}
		return m, nil
	case "esc":
		m.panelFocus = false
		m.input.Focus()
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.promptRoom = nil
		m.password.Reset()
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		room := *m.promptRoom
		if !verifyRoomPassword(room, m.password.Value(), m.config.MasterKey) {
			m.password.Reset()
			m.status = "wrong password for #" + room.Name
			return m, nil
		}
		m.unlocked[room.ID] = true
		m.promptRoom = nil
		m.password.Reset()
		return m, m.enterRoom(room.ID)
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}
