package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlacksdl104/dsmm-chat/internal/feed"
	"github.com/rlacksdl104/dsmm-chat/internal/session"
	"github.com/rlacksdl104/dsmm-chat/internal/store"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

type feedMsg struct {
	snap feed.Snapshot
	ok   bool
}

type roomsMsg struct {
	snap store.Snapshot
	ok   bool
}

type usersMsg struct {
	snap store.Snapshot
	ok   bool
}

// waitFeed blocks on the active room listener. Exactly one reader is
// outstanding per listener; handleFeedMsg re-arms it.
func (m *Model) waitFeed() tea.Cmd {
	listener := m.listener
	if listener == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := listener()
		return feedMsg{snap: snap, ok: ok}
	}
}

func (m *Model) waitRooms() tea.Cmd {
	sub := m.roomsSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-sub.C
		return roomsMsg{snap: snap, ok: ok}
	}
}

func (m *Model) waitUsers() tea.Cmd {
	sub := m.usersSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-sub.C
		return usersMsg{snap: snap, ok: ok}
	}
}

// selectRoom routes through the password gate before entering.
func (m *Model) selectRoom(room types.Room) tea.Cmd {
	if room.ID == m.roomID {
		return nil
	}
	if room.Locked() && !m.unlocked[room.ID] {
		prompt := room
		m.promptRoom = &prompt
		m.password.Reset()
		m.status = ""
		return m.password.Focus()
	}
	return m.enterRoom(room.ID)
}

// enterRoom switches the live feed. All interaction state belongs to
// the room it started in and is dropped on the way out.
func (m *Model) enterRoom(roomID string) tea.Cmd {
	m.clearInteractionState()
	m.roomID = roomID
	m.anchorBottom = true
	m.status = ""

	listener, err := m.sync.Switch(roomID)
	if err != nil {
		m.listener = nil
		m.status = "feed unavailable: " + err.Error()
		m.refreshViewport(false)
		return nil
	}
	m.listener = listener
	m.refreshViewport(true)
	return m.waitFeed()
}

func (m *Model) handleFeedMsg(msg feedMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Listener for a torn-down subscription; its replacement is
		// already armed.
		return m, nil
	}
	if !m.sync.Apply(msg.snap) {
		// Late delivery from a previous room. Not re-armed: the current
		// listener already has its reader outstanding.
		return m, nil
	}

	if m.sync.Failed() {
		m.status = "feed unavailable: " + msg.snap.Err.Error()
	}
	if m.editingID != "" && m.sync.Find(m.editingID) == nil {
		m.cancelEdit()
		m.status = "message was deleted"
	}
	if m.hoverID != "" && m.sync.Find(m.hoverID) == nil {
		m.hoverID = ""
	}

	pinned := m.atBottom() || m.anchorBottom
	m.refreshViewport(false)
	if pinned {
		m.anchorBottom = false
		return m, tea.Batch(m.waitFeed(), m.scheduleScrollSettle())
	}
	return m, m.waitFeed()
}

func (m *Model) handleRoomsMsg(msg roomsMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	if msg.snap.Err != nil {
		m.status = "rooms unavailable: " + msg.snap.Err.Error()
		return m, m.waitRooms()
	}

	m.rooms = roomsFromDocs(msg.snap.Docs)
	if m.panelIndex >= len(m.rooms) {
		m.panelIndex = len(m.rooms) - 1
	}
	if m.panelIndex < 0 {
		m.panelIndex = 0
	}

	var cmd tea.Cmd
	if m.roomID != "" && m.findRoom(m.roomID) == nil {
		// Current room deleted out from under us.
		cmd = m.enterRoom("")
		m.status = "room was deleted"
	} else if m.roomID == "" && m.promptRoom == nil {
		if room := m.firstOpenRoom(); room != nil {
			cmd = m.selectRoom(*room)
		}
	}
	return m, tea.Batch(m.waitRooms(), cmd)
}

func (m *Model) handleUsersMsg(msg usersMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	if msg.snap.Err != nil {
		m.status = "directory unavailable: " + msg.snap.Err.Error()
		return m, m.waitUsers()
	}

	m.users = session.UsersFromDocs(msg.snap.Docs)
	for _, user := range m.users {
		if user.ID == m.self.ID {
			m.self = user
			break
		}
	}
	m.refreshViewport(false)
	return m, m.waitUsers()
}

func (m *Model) findRoom(id string) *types.Room {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			return &m.rooms[i]
		}
	}
	return nil
}

// firstOpenRoom returns the newest room reachable without a password
// prompt, used for the startup auto-select.
func (m *Model) firstOpenRoom() *types.Room {
	for i := range m.rooms {
		if !m.rooms[i].Locked() || m.unlocked[m.rooms[i].ID] {
			return &m.rooms[i]
		}
	}
	return nil
}

// roomsFromDocs decodes the rooms snapshot, newest first.
func roomsFromDocs(docs []store.Document) []types.Room {
	rooms := make([]types.Room, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		var room types.Room
		if err := docs[i].Decode(&room); err != nil {
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms
}
