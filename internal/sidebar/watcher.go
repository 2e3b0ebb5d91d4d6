package sidebar

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher observes the project tree and reports when the sidebar's
// view of it is out of date. Events are collapsed into a single stale
// flag; the owner polls Stale between frames and calls Refresh on the
// tree when it fires.
type Watcher struct {
	fsw    *fsnotify.Watcher
	stale  chan struct{}
	done   chan struct{}
	notify func(error)
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithErrorFunc installs a callback for watch errors. Without one,
// errors are dropped.
func WithErrorFunc(fn func(error)) WatchOption {
	return func(w *Watcher) { w.notify = fn }
}

// NewWatcher starts watching dir and the directories the sidebar has
// expanded. Close releases the underlying OS watches.
func NewWatcher(dir string, opts ...WatchOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:   fsw,
		stale: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// Add extends the watch to another directory, typically one the user
// just expanded.
func (w *Watcher) Add(dir string) error {
	return w.fsw.Add(dir)
}

// Stale returns a channel that receives when the watched tree changed
// since the last receive.
func (w *Watcher) Stale() <-chan struct{} {
	return w.stale
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				select {
				case w.stale <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.notify != nil {
				w.notify(err)
			}
		case <-w.done:
			return
		}
	}
}
