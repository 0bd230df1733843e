// Package watch reloads a data file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange after the watched file is written, replaced or
// recreated. The parent directory is watched so atomic-rename saves are
// seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)
	log      *zap.Logger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for path. debounce <= 0 uses DefaultDebounce; a
// nil logger is replaced with a no-op one.
func New(path string, debounce time.Duration, onChange func(path string), log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. It returns once the watch is in
// place, so writes after Start are always observed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)
	w.log.Debug("watching data file", zap.String("path", w.path))
	return nil
}

// Stop ends the watch and waits for the event loop to exit. Safe to call
// more than once and after the context was cancelled.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.running {
		close(w.stopCh)
		<-w.doneCh
		w.running = false
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("data file event", zap.String("op", event.Op.String()), zap.String("path", event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timerCh:
			timerCh = nil
			w.onChange(w.path)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}
