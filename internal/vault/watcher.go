package vault

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"triage/internal/logs"
)

// Watcher reports changes to watched vault folders so the UI can
// refresh when notes are edited outside the app. Events are debounced:
// a burst of filesystem activity collapses into one signal.
type Watcher struct {
	events chan struct{}
	fsw    *fsnotify.Watcher
	done   chan struct{}
	once   sync.Once
}

// NewWatcher watches the given absolute directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		// Folders may not exist yet; they get picked up on restart.
		if err := fsw.Add(dir); err != nil {
			logs.Logger.WithError(err).Debugf("not watching %s", dir)
		}
	}

	w := &Watcher{
		events: make(chan struct{}, 1),
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events signals after any change in the watched folders.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and releases its handles.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.fsw.Close()
}

func (w *Watcher) run() {
	const debounceDelay = 200 * time.Millisecond

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case w.events <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logs.Logger.WithError(err).Warn("vault watcher error")
		}
	}
}
