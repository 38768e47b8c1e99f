package compose

import (
	"errors"
	"strings"
	"testing"

	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

var author = types.User{ID: "usr-self0001", Email: "me@example.com", DisplayName: "me"}

func TestBuildValidatesLocally(t *testing.T) {
	var c Composer

	if _, err := c.Build("room-a", "   ", author); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("blank text: %v", err)
	}
	if _, err := c.Build("", "hello", author); !errors.Is(err, ErrNoRoom) {
		t.Errorf("no room: %v", err)
	}

	long := strings.Repeat("a", 101)
	if _, err := c.Build("room-a", long, author); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("101 chars: %v", err)
	}

	exactly := strings.Repeat("a", 100)
	msg, err := c.Build("room-a", exactly, author)
	if err != nil {
		t.Fatalf("100 chars rejected: %v", err)
	}
	if msg.Text != exactly || msg.RoomID != "room-a" || msg.UserID != author.ID {
		t.Errorf("built message = %+v", msg)
	}
}

func TestBuildAttachesFrozenReplySnapshot(t *testing.T) {
	var c Composer

	target := types.Message{ID: "msg-target01", Text: "original", UserEmail: "alice@example.com"}
	c.SetReplyTarget(target)

	// Mutating the source after the snapshot must not leak through.
	target.Text = "edited later"

	msg, err := c.Build("room-a", "reply text", author)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if msg.ReplyTo == nil {
		t.Fatal("reply snapshot missing")
	}
	if msg.ReplyTo.Text != "original" || msg.ReplyTo.ID != "msg-target01" {
		t.Errorf("snapshot not frozen: %+v", msg.ReplyTo)
	}
	if msg.ReplyTo.Author != "alice" {
		t.Errorf("snapshot author = %q", msg.ReplyTo.Author)
	}
}

func TestValidationFailureKeepsReplyTarget(t *testing.T) {
	var c Composer
	c.SetReplyTarget(types.Message{ID: "msg-target01", Text: "hi", UserEmail: "a@b.c"})

	if _, err := c.Build("room-a", "", author); err == nil {
		t.Fatal("expected validation error")
	}
	if c.ReplyTarget() == nil {
		t.Error("reply target dropped on local rejection")
	}
}

func TestFieldsIncludeReplySnapshot(t *testing.T) {
	msg := types.Message{
		RoomID:    "room-a",
		UserID:    author.ID,
		UserEmail: author.Email,
		Text:      "hello",
		ReplyTo:   &types.ReplySnapshot{ID: "msg-x", Text: "quoted", Author: "alice"},
	}
	fields := Fields(msg)
	reply, ok := fields["replyTo"].(map[string]any)
	if !ok {
		t.Fatalf("replyTo field = %v", fields["replyTo"])
	}
	if reply["text"] != "quoted" || reply["author"] != "alice" {
		t.Errorf("reply fields = %v", reply)
	}
}

func TestScanMentionsResolvesAndKeepsDuplicates(t *testing.T) {
	directory := []types.User{
		{ID: "usr-alice001", Email: "alice@example.com", DisplayName: "alice"},
		{ID: "usr-bob00001", Email: "bob@example.com"},
	}

	got := ScanMentions("@alice yo", directory)
	if len(got) != 1 {
		t.Fatalf("notifications = %+v", got)
	}
	if got[0].Recipient != "alice" || got[0].Text != "@alice yo" {
		t.Errorf("notification = %+v", got[0])
	}

	// The same text sent twice appends twice; scanning is per send.
	again := ScanMentions("@alice yo", directory)
	if len(again) != 1 {
		t.Fatalf("second scan = %+v", again)
	}

	// Repeated mentions in one message each notify.
	double := ScanMentions("@alice @alice", directory)
	if len(double) != 2 {
		t.Errorf("repeated mentions = %+v", double)
	}
}

func TestScanMentionsEmailLocalPart(t *testing.T) {
	directory := []types.User{{ID: "usr-bob00001", Email: "bob@example.com"}}

	got := ScanMentions("hey @bob", directory)
	if len(got) != 1 || got[0].Recipient != "bob" {
		t.Errorf("local-part resolution = %+v", got)
	}
}

func TestScanMentionsIgnoresUnknownTokens(t *testing.T) {
	directory := []types.User{{ID: "usr-alice001", Email: "alice@example.com", DisplayName: "alice"}}

	if got := ScanMentions("@stranger hello", directory); got != nil {
		t.Errorf("unresolved token produced %+v", got)
	}
	if got := ScanMentions("no mentions here", directory); got != nil {
		t.Errorf("plain text produced %+v", got)
	}
}
