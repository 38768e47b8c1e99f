package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlacksdl104/dsmm-chat/internal/compose"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

// deleteTickInterval drives the hold-to-delete progress redraws.
const deleteTickInterval = 50 * time.Millisecond

type deleteTickMsg struct{ seq int }

type deleteResultMsg struct {
	id  string
	err error
}

type editResultMsg struct {
	id  string
	err error
}

func (m *Model) deleteTick(seq int) tea.Cmd {
	return tea.Tick(deleteTickInterval, func(time.Time) tea.Msg {
		return deleteTickMsg{seq: seq}
	})
}

func (m *Model) handleDeleteTickMsg(msg deleteTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.deleteSeq || m.press == nil {
		return m, nil
	}
	if m.press.Done(time.Now()) {
		id := m.press.MessageID
		m.press = nil
		m.swipe = nil
		m.mouseDown = false
		m.refreshViewport(false)
		return m, m.deleteCmd(id)
	}
	m.refreshViewport(false)
	return m, m.deleteTick(msg.seq)
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: st.Delete("messages", id)}
	}
}

func (m *Model) handleDeleteResultMsg(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "delete failed: " + msg.err.Error()
	}
	return m, nil
}

// enterEdit moves the composer into edit mode. Only one message may be
// in edit at a time; entering again replaces the previous edit.
func (m *Model) enterEdit(msg types.Message) {
	if m.editingID == "" {
		m.savedDraft = m.input.Value()
	}
	m.editingID = msg.ID
	m.composer.ClearReplyTarget()
	m.input.SetValue(msg.Text)
	m.input.CursorEnd()
	m.refreshViewport(false)
}

// cancelEdit leaves edit mode and restores the parked draft.
func (m *Model) cancelEdit() {
	if m.editingID == "" {
		return
	}
	m.editingID = ""
	m.input.SetValue(m.savedDraft)
	m.savedDraft = ""
	m.input.CursorEnd()
	m.refreshViewport(false)
}

// beginEditLast prefills the newest own message, mirroring up-arrow
// edit in other chat clients.
func (m *Model) beginEditLast() (tea.Model, tea.Cmd) {
	messages := m.sync.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].UserID == m.self.ID {
			m.enterEdit(messages[i])
			break
		}
	}
	return m, nil
}

// saveEdit validates and writes the edited text. An empty result is
// rejected locally and edit mode stays active.
func (m *Model) saveEdit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.status = "edited message cannot be empty"
		return nil
	}
	if len([]rune(text)) > compose.MaxMessageLength {
		m.status = compose.ErrMessageTooLong.Error()
		return nil
	}

	id := m.editingID
	st := m.store
	return func() tea.Msg {
		err := st.Update("messages", id, map[string]any{
			"text":     text,
			"edited":   true,
			"editedAt": time.Now().UnixMilli(),
		})
		return editResultMsg{id: id, err: err}
	}
}

func (m *Model) handleEditResultMsg(msg editResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "edit failed: " + msg.err.Error()
		return m, nil
	}
	if m.editingID == msg.id {
		m.editingID = ""
		m.input.SetValue(m.savedDraft)
		m.savedDraft = ""
		m.input.CursorEnd()
	}
	m.status = ""
	m.refreshViewport(false)
	return m, nil
}

// clearInteractionState drops everything tied to the current room:
// hover, gestures, edit mode, pending reply, and highlight.
func (m *Model) clearInteractionState() {
	m.hoverID = ""
	m.cancelEdit()
	m.composer.ClearReplyTarget()
	m.press = nil
	m.deleteSeq++
	m.swipe = nil
	m.mouseDown = false
	m.highlightID = ""
	m.highlightSeq++
	m.scrollSeq++
	m.sending = false
}
