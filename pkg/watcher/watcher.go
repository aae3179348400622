// Package watcher reports debounced changes to a single content file.
package watcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

var (
	// ErrAlreadyStarted is returned by Start on a running watcher.
	ErrAlreadyStarted = errors.New("watcher already started")
	// ErrIsDirectory is returned by NewWatcher for a directory path.
	ErrIsDirectory = errors.New("watch path is a directory")
)

// Watcher watches one file. It subscribes to the parent directory so that
// editors that replace the file through a rename are still observed.
type Watcher struct {
	path     string
	base     string
	debounce time.Duration
	logger   *log.Logger

	debouncer *Debouncer
	changed   chan struct{}

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period before a change is reported.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for watch errors and events.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// NewWatcher returns an unstarted watcher for the file at path. Directories
// are rejected: resolve them to the file that is actually read first.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	}
	w := &Watcher{
		path:    abs,
		base:    filepath.Base(abs),
		changed: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.debouncer = NewDebouncer(w.debounce, w.notify)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changed delivers one value per debounced burst of changes. Bursts that
// arrive before the previous value is received are coalesced.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.started = true
	w.wg.Add(1)
	go w.run(fsw, w.done)
	w.logger.Debug("watching content", "path", w.path, "debounce", w.debouncer.Duration())
	return nil
}

// Stop ends the watch and waits for the background goroutine. It is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	close(w.done)
	fsw := w.fsw
	w.fsw = nil
	w.mu.Unlock()

	w.wg.Wait()
	w.debouncer.Cancel()
	if err := fsw.Close(); err != nil {
		w.logger.Warn("closing watcher", "err", err)
	}
}

func (w *Watcher) run(fsw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.logger.Debug("content event", "op", ev.Op.String(), "path", ev.Name)
				w.debouncer.Trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.base {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func (w *Watcher) notify() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}
