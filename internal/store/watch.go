package store

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 50 * time.Millisecond

// startWatcher wires fsnotify on the database directory so commits by
// other clients (which touch the db or its WAL sidecar) wake our
// subscriptions.
func (st *Store) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(st.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	st.watchStop = make(chan struct{})
	st.watchDone = make(chan struct{})

	go func() {
		defer close(st.watchDone)
		defer watcher.Close()

		base := filepath.Base(st.path)
		var pending <-chan time.Time
		for {
			select {
			case <-st.watchStop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(event.Name), base) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				pending = time.After(watchDebounce)
			case <-watcher.Errors:
				// Watch errors degrade liveness, not correctness;
				// local writes still notify directly.
			case <-pending:
				pending = nil
				st.notifyAll()
			}
		}
	}()
	return nil
}

func (st *Store) stopWatcher() {
	if st.watchStop == nil {
		return
	}
	close(st.watchStop)
	<-st.watchDone
	st.watchStop = nil
}
