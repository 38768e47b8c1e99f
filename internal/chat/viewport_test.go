package chat

import (
	"fmt"
	"testing"
)

func fillRoom(t *testing.T, m *Model, roomID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		createMessageDoc(t, m, roomID, "usr-other001", fmt.Sprintf("message %d", i))
	}
}

func TestAtBottomMeasuresFullContent(t *testing.T) {
	m := newTestModel(t)
	m.viewport.Width = 40
	m.viewport.Height = 4

	roomID := createRoomDoc(t, m, "general")
	fillRoom(t, m, roomID, 20)

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	if m.contentHeight <= m.viewport.Height {
		t.Fatalf("content height %d not taller than viewport %d", m.contentHeight, m.viewport.Height)
	}

	m.viewport.SetYOffset(0)
	if m.atBottom() {
		t.Error("top of a tall feed reported as bottom")
	}

	m.viewport.GotoBottom()
	if !m.atBottom() {
		t.Error("bottom of the feed not reported as bottom")
	}
}

// A reader parked in scrollback must not be yanked down when a new
// snapshot lands.
func TestSnapshotKeepsScrollbackPosition(t *testing.T) {
	m := newTestModel(t)
	m.viewport.Width = 40
	m.viewport.Height = 4

	roomID := createRoomDoc(t, m, "general")
	fillRoom(t, m, roomID, 20)

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	m.viewport.SetYOffset(0)
	seqBefore := m.scrollSeq

	createMessageDoc(t, m, roomID, "usr-other001", "fresh arrival")
	drainFeed(t, m, m.waitFeed())

	if m.scrollSeq != seqBefore {
		t.Error("bottom scroll scheduled while reading scrollback")
	}
	if m.viewport.YOffset != 0 {
		t.Errorf("scrollback position moved to %d", m.viewport.YOffset)
	}
}
