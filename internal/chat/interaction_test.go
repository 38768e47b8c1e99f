package chat

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlacksdl104/dsmm-chat/internal/core"
	"github.com/rlacksdl104/dsmm-chat/internal/gesture"
	"github.com/rlacksdl104/dsmm-chat/internal/session"
	"github.com/rlacksdl104/dsmm-chat/internal/store"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "chat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	model, err := NewModel(Options{
		Store:    st,
		Sessions: session.NewManager(st, dir),
		Identity: session.Identity{UID: "usr-self0001", Email: "me@example.com"},
		Config:   core.Config{},
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(model.Close)
	return model
}

func createRoomDoc(t *testing.T, m *Model, name string) string {
	t.Helper()
	id, err := m.store.Create("rooms", map[string]any{"name": name})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return id
}

func createMessageDoc(t *testing.T, m *Model, roomID, userID, text string) string {
	t.Helper()
	id, err := m.store.Create("messages", map[string]any{
		"roomId":    roomID,
		"userId":    userID,
		"userEmail": userID + "@example.com",
		"text":      text,
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	return id
}

// drainFeed executes one armed feed command and applies its snapshot.
func drainFeed(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("no feed command armed")
	}
	msg, ok := cmd().(feedMsg)
	if !ok {
		t.Fatalf("unexpected msg type from feed command")
	}
	m.handleFeedMsg(msg)
}

func TestSingleEditorInvariant(t *testing.T) {
	m := newTestModel(t)

	first := types.Message{ID: "msg-aaaa0001", UserID: m.self.ID, Text: "first"}
	second := types.Message{ID: "msg-bbbb0002", UserID: m.self.ID, Text: "second"}

	m.input.SetValue("draft in progress")
	m.enterEdit(first)
	if m.editingID != first.ID || m.input.Value() != "first" {
		t.Fatalf("edit state = %q / %q", m.editingID, m.input.Value())
	}

	// Entering edit on another message replaces the active edit.
	m.enterEdit(second)
	if m.editingID != second.ID || m.input.Value() != "second" {
		t.Errorf("second edit state = %q / %q", m.editingID, m.input.Value())
	}

	m.cancelEdit()
	if m.editingID != "" {
		t.Error("edit mode not cleared")
	}
	if m.input.Value() != "draft in progress" {
		t.Errorf("draft not restored: %q", m.input.Value())
	}
}

func TestSaveEditRejectsEmptyAndStaysEditing(t *testing.T) {
	m := newTestModel(t)
	m.enterEdit(types.Message{ID: "msg-aaaa0001", UserID: m.self.ID, Text: "hello"})

	m.input.SetValue("   ")
	if cmd := m.saveEdit(); cmd != nil {
		t.Fatal("empty edit produced a write")
	}
	if m.editingID == "" {
		t.Error("edit mode exited on rejected save")
	}
}

func TestEditClearsPendingReply(t *testing.T) {
	m := newTestModel(t)
	m.composer.SetReplyTarget(types.Message{ID: "msg-bbbb0002", Text: "target", UserEmail: "a@b.c"})

	m.enterEdit(types.Message{ID: "msg-aaaa0001", UserID: m.self.ID, Text: "hello"})
	if m.composer.ReplyTarget() != nil {
		t.Error("reply target survived entering edit")
	}
}

func TestDeleteTickIgnoresStaleSequence(t *testing.T) {
	m := newTestModel(t)
	m.press = gesture.StartLongPress("msg-aaaa0001", time.Now())
	m.deleteSeq = 4

	if _, cmd := m.handleDeleteTickMsg(deleteTickMsg{seq: 3}); cmd != nil {
		t.Error("stale tick kept the countdown alive")
	}
	if m.press == nil {
		t.Error("stale tick cleared the press")
	}
}

func TestCompletedHoldDeletesMessage(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	msgID := createMessageDoc(t, m, roomID, m.self.ID, "doomed")

	m.press = gesture.StartLongPress(msgID, time.Now().Add(-2*gesture.LongPressDuration))
	m.deleteSeq = 1

	_, cmd := m.handleDeleteTickMsg(deleteTickMsg{seq: 1})
	if cmd == nil {
		t.Fatal("completed hold produced no delete")
	}
	if m.press != nil {
		t.Error("press not cleared after completion")
	}

	result, ok := cmd().(deleteResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("delete result = %+v", result)
	}
	doc, err := m.store.GetOnce("messages", msgID)
	if err != nil || doc != nil {
		t.Errorf("message still present: %v %v", doc, err)
	}
}

func TestRoomSwitchClearsInteractionState(t *testing.T) {
	m := newTestModel(t)
	roomA := createRoomDoc(t, m, "alpha")
	roomB := createRoomDoc(t, m, "beta")

	cmd := m.enterRoom(roomA)
	drainFeed(t, m, cmd)

	m.hoverID = "msg-aaaa0001"
	m.composer.SetReplyTarget(types.Message{ID: "msg-aaaa0001", Text: "x", UserEmail: "a@b.c"})
	m.enterEdit(types.Message{ID: "msg-aaaa0001", UserID: m.self.ID, Text: "x"})
	m.press = gesture.StartLongPress("msg-aaaa0001", time.Now())
	m.highlightID = "msg-aaaa0001"

	cmd = m.enterRoom(roomB)
	drainFeed(t, m, cmd)

	if m.hoverID != "" || m.editingID != "" || m.press != nil || m.highlightID != "" {
		t.Errorf("interaction state leaked across rooms: hover=%q edit=%q", m.hoverID, m.editingID)
	}
	if m.composer.ReplyTarget() != nil {
		t.Error("reply target leaked across rooms")
	}
}

func TestStaleFeedDeliveryNotApplied(t *testing.T) {
	m := newTestModel(t)
	roomA := createRoomDoc(t, m, "alpha")
	roomB := createRoomDoc(t, m, "beta")
	createMessageDoc(t, m, roomA, "usr-other001", "from alpha")
	createMessageDoc(t, m, roomB, "usr-other001", "from beta")

	cmdA := m.enterRoom(roomA)
	staleMsg := cmdA() // snapshot for alpha, not yet handled

	cmdB := m.enterRoom(roomB)
	drainFeed(t, m, cmdB)

	if _, cmd := m.handleFeedMsg(staleMsg.(feedMsg)); cmd != nil {
		t.Error("stale delivery re-armed a listener")
	}

	messages := m.sync.Messages()
	if len(messages) != 1 || messages[0].Text != "from beta" {
		t.Errorf("mirror = %+v", messages)
	}
}

func TestFeedRemovalCancelsActiveEdit(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	msgID := createMessageDoc(t, m, roomID, m.self.ID, "mine")

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	target := m.sync.Find(msgID)
	if target == nil {
		t.Fatal("message not in mirror")
	}
	m.enterEdit(*target)

	if err := m.store.Delete("messages", msgID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	next := m.waitFeed()
	drainFeed(t, m, next)

	if m.editingID != "" {
		t.Error("edit mode survived remote deletion")
	}
}

func TestSaveEditRoundTrip(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	msgID := createMessageDoc(t, m, roomID, m.self.ID, "before")

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	target := m.sync.Find(msgID)
	if target == nil {
		t.Fatal("message not in mirror")
	}
	m.enterEdit(*target)
	m.input.SetValue("after")

	saveCmd := m.saveEdit()
	if saveCmd == nil {
		t.Fatal("no write issued")
	}
	result, ok := saveCmd().(editResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("edit result = %+v", result)
	}
	m.handleEditResultMsg(result)
	if m.editingID != "" {
		t.Error("edit mode not exited after acknowledged save")
	}

	drainFeed(t, m, m.waitFeed())
	updated := m.sync.Find(msgID)
	if updated == nil || updated.Text != "after" || !updated.Edited {
		t.Errorf("updated mirror = %+v", updated)
	}
}

func TestCancelEditLeavesStoreUntouched(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	msgID := createMessageDoc(t, m, roomID, m.self.ID, "original")

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	m.enterEdit(*m.sync.Find(msgID))
	m.input.SetValue("never saved")
	m.cancelEdit()

	doc, err := m.store.GetOnce("messages", msgID)
	if err != nil || doc == nil {
		t.Fatalf("get: %v %v", doc, err)
	}
	if got, _ := doc.Data["text"].(string); got != "original" {
		t.Errorf("stored text = %q", got)
	}
	if _, edited := doc.Data["edited"]; edited {
		t.Error("edited flag set by a cancelled edit")
	}
}

func TestJumpToDeletedReplyTargetIsNoOp(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	targetID := createMessageDoc(t, m, roomID, "usr-other001", "original words")

	replyID, err := m.store.Create("messages", map[string]any{
		"roomId":    roomID,
		"userId":    m.self.ID,
		"userEmail": m.self.Email,
		"text":      "my reply",
		"replyTo":   map[string]any{"id": targetID, "text": "original words", "author": "other"},
	})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	if err := m.store.Delete("messages", targetID); err != nil {
		t.Fatalf("delete target: %v", err)
	}
	drainFeed(t, m, m.waitFeed())

	// The frozen quote survives the target's deletion.
	reply := m.sync.Find(replyID)
	if reply == nil || reply.ReplyTo == nil || reply.ReplyTo.Text != "original words" {
		t.Fatalf("reply snapshot = %+v", reply)
	}

	if cmd := m.jumpTo(targetID); cmd != nil {
		t.Error("jump to a deleted message scheduled work")
	}
	if m.highlightID != "" {
		t.Error("jump to a deleted message set a highlight")
	}
}

func TestJumpToHighlightsAndClears(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	msgID := createMessageDoc(t, m, roomID, "usr-other001", "jump here")

	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	if cmd := m.jumpTo(msgID); cmd == nil {
		t.Fatal("no highlight clear scheduled")
	}
	if m.highlightID != msgID {
		t.Fatalf("highlight = %q", m.highlightID)
	}

	stale := m.highlightSeq
	m.highlightSeq++ // a newer jump supersedes the old clear
	m.handleHighlightClearMsg(highlightClearMsg{seq: stale})
	if m.highlightID != msgID {
		t.Error("superseded clear removed the highlight")
	}

	m.handleHighlightClearMsg(highlightClearMsg{seq: m.highlightSeq})
	if m.highlightID != "" {
		t.Error("highlight not cleared")
	}
}

func TestScrollSettleIgnoresSupersededSchedule(t *testing.T) {
	m := newTestModel(t)
	m.viewport.Width = 40
	m.viewport.Height = 4
	m.viewport.SetContent("1\n2\n3\n4\n5\n6\n7\n8\n9\n10")
	m.viewport.SetYOffset(0)

	_ = m.scheduleScrollSettle()
	stale := m.scrollSeq
	_ = m.scheduleScrollSettle()

	m.handleScrollSettleMsg(scrollSettleMsg{seq: stale})
	if m.viewport.YOffset != 0 {
		t.Error("superseded settle scrolled the viewport")
	}

	m.handleScrollSettleMsg(scrollSettleMsg{seq: m.scrollSeq})
	if m.viewport.YOffset == 0 {
		t.Error("current settle did not scroll to bottom")
	}
}
