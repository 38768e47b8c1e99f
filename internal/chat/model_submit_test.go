package chat

import (
	"errors"
	"testing"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

func TestSubmitWritesMessageAndResetsComposer(t *testing.T) {
	m := newTestModel(t)
	roomID := createRoomDoc(t, m, "general")
	cmd := m.enterRoom(roomID)
	drainFeed(t, m, cmd)

	m.composer.SetReplyTarget(types.Message{ID: "msg-orig0001", Text: "quoted", UserEmail: "a@b.c"})
	m.input.SetValue("hello there")

	_, sendCmd := m.handleSubmit()
	if sendCmd == nil {
		t.Fatal("no send issued")
	}
	if !m.sending {
		t.Error("sending flag not set while the write is in flight")
	}

	result, ok := sendCmd().(sendResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("send result = %+v", result)
	}
	m.handleSendResultMsg(result)

	if m.sending {
		t.Error("sending flag stuck")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if m.composer.ReplyTarget() != nil {
		t.Error("reply target survived the acknowledged send")
	}
	if !m.anchorBottom {
		t.Error("own send did not request the bottom anchor")
	}

	docs, err := m.store.GetAll("messages")
	if err != nil || len(docs) != 1 {
		t.Fatalf("messages = %d, %v", len(docs), err)
	}
	if got, _ := docs[0].Data["roomId"].(string); got != roomID {
		t.Errorf("roomId = %q", got)
	}
	if reply, ok := docs[0].Data["replyTo"].(map[string]any); !ok || reply["text"] != "quoted" {
		t.Errorf("replyTo = %v", docs[0].Data["replyTo"])
	}
}

func TestSubmitGuardsConcurrentSends(t *testing.T) {
	m := newTestModel(t)
	m.roomID = "room-aaaa0001"
	m.sending = true
	m.input.SetValue("second message")

	if _, cmd := m.handleSubmit(); cmd != nil {
		t.Error("send issued while another is in flight")
	}
}

func TestSendFailureKeepsDraftAndReply(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("important words")
	m.composer.SetReplyTarget(types.Message{ID: "msg-orig0001", Text: "quoted", UserEmail: "a@b.c"})

	m.handleSendResultMsg(sendResultMsg{text: "important words", err: errors.New("backend down")})

	if m.input.Value() != "important words" {
		t.Errorf("draft lost: %q", m.input.Value())
	}
	if m.composer.ReplyTarget() == nil {
		t.Error("reply target lost on failed send")
	}
	if m.status == "" {
		t.Error("failure not surfaced")
	}
}

func TestSubmitRejectsOverlongLocally(t *testing.T) {
	m := newTestModel(t)
	m.roomID = "room-aaaa0001"

	long := make([]byte, 0, 101)
	for i := 0; i < 101; i++ {
		long = append(long, 'a')
	}
	m.input.SetValue(string(long))

	if _, cmd := m.handleSubmit(); cmd != nil {
		t.Error("overlong message reached the store")
	}
	if m.status == "" {
		t.Error("no local rejection feedback")
	}
	if m.input.Value() == "" {
		t.Error("draft cleared on local rejection")
	}
}

func TestMentionMuting(t *testing.T) {
	if !mentionMuted("alice", []string{"al*"}) {
		t.Error("glob pattern did not match")
	}
	if mentionMuted("bob", []string{"al*"}) {
		t.Error("non-matching recipient muted")
	}
	if mentionMuted("alice", nil) {
		t.Error("muted with no patterns")
	}
	if mentionMuted("alice", []string{"[bad"}) {
		t.Error("invalid pattern muted")
	}
}

func TestTruncateNotice(t *testing.T) {
	if got := truncateNotice("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateNotice("one  two\nthree", 100); got != "one two three" {
		t.Errorf("whitespace collapse = %q", got)
	}
	long := truncateNotice("aaaaaaaaaaaa", 5)
	if len([]rune(long)) != 5 {
		t.Errorf("truncated length = %d", len([]rune(long)))
	}
}
