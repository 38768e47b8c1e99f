package chat

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlacksdl104/dsmm-chat/internal/gesture"
)

// CellPoints converts terminal cell travel into gesture points: one
// cell of horizontal drag counts as ten points.
const CellPoints = 10.0

// doubleClickWindow is the longest gap between two presses on the same
// message that still reads as a double-activation.
const doubleClickWindow = 400 * time.Millisecond

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mouseDown {
			return m.handleDragMotion(msg)
		}
		m.updateHover(msg)
		return m, nil

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.MouseButtonLeft:
			return m.handleMousePress(msg)
		case tea.MouseButtonRight:
			return m, m.copyMessageAt(msg)
		}

	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft {
			return m.handleMouseRelease()
		}
	}
	return m, nil
}

func (m *Model) updateHover(msg tea.MouseMsg) {
	id := m.messageAt(msg)
	if id == m.hoverID {
		return
	}
	m.hoverID = id
	m.refreshViewport(false)
}

func (m *Model) handleMousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if roomID := m.roomAt(msg); roomID != "" {
		if room := m.findRoom(roomID); room != nil {
			return m, m.selectRoom(*room)
		}
		return m, nil
	}

	if m.hoverID != "" && m.zones.Get("reply-"+m.hoverID).InBounds(msg) {
		if target := m.sync.Find(m.hoverID); target != nil {
			m.composer.SetReplyTarget(*target)
			m.refreshViewport(false)
		}
		return m, nil
	}

	id := m.messageAt(msg)
	if id == "" {
		return m, nil
	}

	if m.zones.Get("quote-"+id).InBounds(msg) {
		if target := m.sync.Find(id); target != nil && target.ReplyTo != nil {
			return m, m.jumpTo(target.ReplyTo.ID)
		}
		return m, nil
	}

	target := m.sync.Find(id)
	if target == nil {
		return m, nil
	}
	own := target.UserID == m.self.ID

	// Double-activation on an own message opens the inline editor.
	if own && m.lastClickID == id && time.Since(m.lastClickAt) < doubleClickWindow {
		m.lastClickID = ""
		m.enterEdit(*target)
		return m, nil
	}
	m.lastClickID = id
	m.lastClickAt = time.Now()

	m.mouseDown = true
	m.pressX, m.pressY = msg.X, msg.Y
	m.swipe = gesture.StartSwipe(id, own, float64(msg.X)*CellPoints, float64(msg.Y)*CellPoints)

	if own {
		return m, m.startDelete(id)
	}
	return m, nil
}

func (m *Model) handleDragMotion(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.swipe == nil {
		return m, nil
	}
	m.swipe.Move(float64(msg.X)*CellPoints, float64(msg.Y)*CellPoints)

	// Any travel beyond the noise threshold means this is a drag, not a
	// sustained press.
	if m.press != nil {
		dx := float64(msg.X-m.pressX) * CellPoints
		dy := float64(msg.Y-m.pressY) * CellPoints
		if math.Abs(dx) > gesture.SwipeNoise || math.Abs(dy) > gesture.SwipeNoise {
			m.cancelDelete()
		}
	}

	m.refreshViewport(false)
	return m, nil
}

func (m *Model) handleMouseRelease() (tea.Model, tea.Cmd) {
	m.mouseDown = false

	// Releasing an incomplete hold discards it entirely.
	if m.press != nil {
		m.cancelDelete()
	}

	if m.swipe == nil {
		return m, nil
	}
	swipe := m.swipe
	m.swipe = nil

	if swipe.Locked() && swipe.Release() {
		if target := m.sync.Find(swipe.MessageID); target != nil {
			m.composer.SetReplyTarget(*target)
		}
	}
	m.refreshViewport(false)
	return m, nil
}

// messageAt resolves the message zone under the pointer, if any.
func (m *Model) messageAt(msg tea.MouseMsg) string {
	for _, message := range m.sync.Messages() {
		if m.zones.Get("msg-" + message.ID).InBounds(msg) {
			return message.ID
		}
	}
	return ""
}

// roomAt resolves the room panel row under the pointer, if any.
func (m *Model) roomAt(msg tea.MouseMsg) string {
	for _, room := range m.rooms {
		if m.zones.Get("room-" + room.ID).InBounds(msg) {
			return room.ID
		}
	}
	return ""
}

// startDelete begins the hold-to-delete countdown on an own message.
func (m *Model) startDelete(id string) tea.Cmd {
	m.press = gesture.StartLongPress(id, time.Now())
	m.deleteSeq++
	return m.deleteTick(m.deleteSeq)
}

func (m *Model) cancelDelete() {
	if m.press == nil {
		return
	}
	m.press = nil
	m.deleteSeq++
	m.refreshViewport(false)
}
