// Package watch turns filesystem changes to the mood database into a
// best-effort "data changed" signal, so that several running instances
// sharing one database pick up each other's writes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events a single sqlite write produces
const DefaultDebounce = 150 * time.Millisecond

// Watcher signals on Changes() after files matching its filter change.
// Signals carry no payload and are coalesced; receivers re-read everything.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	match    func(name string) bool
	debounce time.Duration
	log      *zap.Logger
	changes  chan struct{}
	cancel   context.CancelFunc
	doneCh   chan struct{}
	running  bool
}

// New watches dir and reports changes to files for which match returns true
func New(dir string, match func(name string) bool, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		dir:      dir,
		match:    match,
		debounce: DefaultDebounce,
		log:      log,
		changes:  make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a signal is sent. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Changes returns the signal channel. It is closed once a started watcher
// stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching; it returns once the directory is registered
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.running = true
	w.log.Debug("watching for data changes", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the underlying watcher. Safe to call
// more than once, and without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		w.cancel()
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	// notify is only called from this loop, so closing here is safe
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.notify()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return w.match == nil || w.match(name)
}

// notify never blocks; a pending signal already covers this change
func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
