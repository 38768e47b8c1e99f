package store

import (
	"fmt"
	"sync"
)

// OrderByCreatedAt is the only supported subscription order key.
const OrderByCreatedAt = "createdAt"

// Snapshot is one full-set delivery of a live query. Err is set when
// the query failed; Docs is nil in that case.
type Snapshot struct {
	Docs []Document
	Err  error
}

// Subscription is a live ordered query. Every change to the store
// delivers the full current matching set on C — never a diff. Slow
// consumers see the latest snapshot only; intermediates are coalesced.
// C is closed once the subscription has stopped.
type Subscription struct {
	C chan Snapshot

	store      *Store
	id         uint64
	collection string
	filter     *Filter

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// SubscribeOrdered opens a live query over a collection, optionally
// filtered, ordered by the creation timestamp ascending with the
// store's insertion order breaking ties. The first snapshot is
// delivered without waiting for a change.
func (st *Store) SubscribeOrdered(collection string, filter *Filter, orderKey string) (*Subscription, error) {
	if orderKey != OrderByCreatedAt {
		return nil, fmt.Errorf("unsupported order key %q", orderKey)
	}

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil, fmt.Errorf("store is closed")
	}
	st.nextID++
	sub := &Subscription{
		C:          make(chan Snapshot, 1),
		store:      st,
		id:         st.nextID,
		collection: collection,
		filter:     filter,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	st.subs[sub.id] = sub
	st.mu.Unlock()

	go sub.run()
	return sub, nil
}

// Cancel stops the subscription and returns only once the worker has
// exited: no snapshot is delivered after Cancel returns.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.store.unregister(s.id)
		close(s.stop)
	})
	<-s.done
}

func (s *Subscription) run() {
	defer close(s.done)
	defer close(s.C)

	s.publish()
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
			s.publish()
		}
	}
}

// publish queries the full current set and replaces whatever snapshot
// the consumer has not read yet.
func (s *Subscription) publish() {
	docs, err := s.store.queryCollection(s.collection, s.filter)
	snap := Snapshot{Docs: docs}
	if err != nil {
		snap = Snapshot{Err: err}
	}
	for {
		select {
		case <-s.stop:
			return
		case s.C <- snap:
			return
		default:
		}
		// Buffer full: drop the stale pending snapshot and retry.
		select {
		case <-s.C:
		default:
		}
	}
}
