package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/crypto/bcrypt"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

const roomPanelWidth = 24

type roomCreatedMsg struct {
	id  string
	err error
}

// verifyRoomPassword checks a candidate against the room's hash. The
// configured master key opens any locked room.
func verifyRoomPassword(room types.Room, candidate, masterKey string) bool {
	if !room.Locked() {
		return true
	}
	if masterKey != "" && candidate == masterKey {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(candidate)) == nil
}

// createRoom writes a new room, hashing the password when given.
func (m *Model) createRoom(name, password string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		m.status = "usage: /room NAME [PASSWORD]"
		return nil
	}

	fields := map[string]any{"name": name}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			m.status = "create room failed: " + err.Error()
			return nil
		}
		fields["passwordHash"] = string(hash)
	}

	st := m.store
	return func() tea.Msg {
		id, err := st.Create("rooms", fields)
		return roomCreatedMsg{id: id, err: err}
	}
}

func (m *Model) handleRoomCreatedMsg(msg roomCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "create room failed: " + msg.err.Error()
		return m, nil
	}
	// The creator skips their own password gate.
	m.unlocked[msg.id] = true
	m.panelIndex = 0
	return m, m.enterRoom(msg.id)
}

func (m *Model) renderRoomPanel(height int) string {
	var lines []string
	lines = append(lines, panelTitle.Render("rooms"))

	for i, room := range m.rooms {
		label := "#" + room.Name
		if room.Locked() {
			label += " *"
		}
		prefix := "  "
		if room.ID == m.roomID {
			prefix = "> "
		}
		label = truncateLabel(prefix+label, roomPanelWidth)
		switch {
		case room.ID == m.roomID, m.panelFocus && i == m.panelIndex:
			label = panelSelected.Render(label)
		case room.Locked() && !m.unlocked[room.ID]:
			label = panelLocked.Render(label)
		}
		lines = append(lines, m.zones.Mark("room-"+room.ID, label))
	}

	panel := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(roomPanelWidth).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color("238")).
		Render(panel)
}

func truncateLabel(label string, width int) string {
	runes := []rune(label)
	if len(runes) <= width {
		return label
	}
	return string(runes[:width-1]) + "…"
}
