package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store is a document-oriented live-query store over a shared SQLite
// file. Several clients may open the same file; local mutations and
// file-change wakeups both refresh open subscriptions.
type Store struct {
	db   *sql.DB
	path string

	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	watchStop chan struct{}
	watchDone chan struct{}
}

// Open opens (creating if needed) the backend database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	st := &Store{
		db:   conn,
		path: path,
		subs: make(map[uint64]*Subscription),
	}
	// Wakeups from other clients writing the same file. Best effort: a
	// store without a watcher still sees its own writes.
	_ = st.startWatcher()
	return st, nil
}

// Close cancels every open subscription, stops the file watcher, and
// closes the database.
func (st *Store) Close() error {
	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil
	}
	st.closed = true
	open := make([]*Subscription, 0, len(st.subs))
	for _, sub := range st.subs {
		open = append(open, sub)
	}
	st.mu.Unlock()

	for _, sub := range open {
		sub.Cancel()
	}
	st.stopWatcher()
	return st.db.Close()
}

func (st *Store) unregister(id uint64) {
	st.mu.Lock()
	delete(st.subs, id)
	st.mu.Unlock()
}

// notifyAll wakes every open subscription to re-query.
func (st *Store) notifyAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, sub := range st.subs {
		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}
}
