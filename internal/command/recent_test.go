package command

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rlacksdl104/dsmm-chat/internal/store"
)

func seedStore(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	st, err := store.Open(filepath.Join(home, ".dsmm", "chat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	roomID, err := st.Create("rooms", map[string]any{"name": "general"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	for _, text := range []string{"first", "second", "third"} {
		_, err := st.Create("messages", map[string]any{
			"roomId":    roomID,
			"userId":    "usr-alice001",
			"userEmail": "alice@example.com",
			"text":      text,
		})
		if err != nil {
			t.Fatalf("create message: %v", err)
		}
	}
	_, err = st.Create("users", map[string]any{
		"email":       "alice@example.com",
		"displayName": "Alice",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestRecentListsNewestFirst(t *testing.T) {
	seedStore(t)

	out := runCommand(t, "recent")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "third") || !strings.Contains(lines[2], "first") {
		t.Errorf("messages out of order:\n%s", out)
	}
	if !strings.Contains(lines[0], "#general") {
		t.Errorf("room name missing: %q", lines[0])
	}
	if !strings.Contains(lines[0], "alice@example.com [alice0]") {
		t.Errorf("author and id missing: %q", lines[0])
	}
}

func TestRecentHonorsLastFlag(t *testing.T) {
	seedStore(t)

	out := runCommand(t, "recent", "--last", "2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "third") || !strings.Contains(lines[1], "second") {
		t.Errorf("wrong window:\n%s", out)
	}
}

func TestRecentEmptyStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := runCommand(t, "recent")
	if !strings.Contains(out, "no messages yet") {
		t.Errorf("output = %q", out)
	}
}

func TestUsersListsDirectory(t *testing.T) {
	seedStore(t)

	out := runCommand(t, "users")
	if !strings.Contains(out, "Alice <alice@example.com>") {
		t.Errorf("output = %q", out)
	}
}
