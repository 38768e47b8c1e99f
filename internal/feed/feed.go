// Package feed keeps a local mirror of one room's messages consistent
// with the store's live feed. The mirror is replaced wholesale on every
// snapshot — never patched — trusting the store's ordering.
package feed

import (
	"github.com/rlacksdl104/dsmm-chat/internal/store"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

// Snapshot is one full-set delivery for a room, tagged with the
// subscription generation it belongs to. Stale generations are
// discarded by Apply.
type Snapshot struct {
	RoomID   string
	Gen      uint64
	Messages []types.Message
	Err      error
}

// Listener blocks for the next snapshot of the subscription it was
// created for. The second result is false once that subscription has
// been torn down.
type Listener func() (Snapshot, bool)

// Synchronizer owns the active room subscription and the message
// mirror. It is confined to the UI loop: only Listener closures block,
// and they touch no Synchronizer state.
type Synchronizer struct {
	store  *store.Store
	gen    uint64
	roomID string
	sub    *store.Subscription
	mirror []types.Message
	failed bool
}

// New creates a synchronizer with no active room.
func New(st *store.Store) *Synchronizer {
	return &Synchronizer{store: st}
}

// Switch tears down the previous room's subscription synchronously,
// then subscribes to the new room. An empty roomID just tears down.
// The returned Listener yields snapshots for the new subscription; it
// is nil when roomID is empty.
func (f *Synchronizer) Switch(roomID string) (Listener, error) {
	if f.sub != nil {
		f.sub.Cancel()
		f.sub = nil
	}
	f.gen++
	f.roomID = roomID
	f.mirror = nil
	f.failed = false

	if roomID == "" {
		return nil, nil
	}

	sub, err := f.store.SubscribeOrdered("messages", &store.Filter{Field: "roomId", Value: roomID}, store.OrderByCreatedAt)
	if err != nil {
		f.failed = true
		return nil, err
	}
	f.sub = sub

	gen := f.gen
	return func() (Snapshot, bool) {
		snap, ok := <-sub.C
		if !ok {
			return Snapshot{}, false
		}
		if snap.Err != nil {
			return Snapshot{RoomID: roomID, Gen: gen, Err: snap.Err}, true
		}
		return Snapshot{RoomID: roomID, Gen: gen, Messages: messagesFromDocs(snap.Docs)}, true
	}, nil
}

// Apply replaces the mirror with the snapshot's messages. Snapshots
// from a previous generation — a subscription already torn down — are
// rejected so a late delivery can never populate the wrong room.
func (f *Synchronizer) Apply(snap Snapshot) bool {
	if snap.Gen != f.gen {
		return false
	}
	if snap.Err != nil {
		f.mirror = nil
		f.failed = true
		return true
	}
	f.mirror = snap.Messages
	f.failed = false
	return true
}

// Messages returns the current mirror. Callers must treat it as
// read-only; it is replaced, never mutated, on the next snapshot.
func (f *Synchronizer) Messages() []types.Message {
	return f.mirror
}

// Find returns the mirrored message with the given id, or nil.
func (f *Synchronizer) Find(id string) *types.Message {
	for i := range f.mirror {
		if f.mirror[i].ID == id {
			return &f.mirror[i]
		}
	}
	return nil
}

// Failed reports whether the last snapshot for the active room was an
// upstream error (the feed renders as empty with a failure notice).
func (f *Synchronizer) Failed() bool {
	return f.failed
}

// Room returns the active room id, or empty.
func (f *Synchronizer) Room() string {
	return f.roomID
}

// Close tears down any active subscription.
func (f *Synchronizer) Close() {
	if f.sub != nil {
		f.sub.Cancel()
		f.sub = nil
	}
	f.gen++
	f.mirror = nil
	f.roomID = ""
}

func messagesFromDocs(docs []store.Document) []types.Message {
	messages := make([]types.Message, 0, len(docs))
	for _, doc := range docs {
		var msg types.Message
		if err := doc.Decode(&msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}
