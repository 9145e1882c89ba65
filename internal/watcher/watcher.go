package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rollcall/pkg/logging"
)

const subsystem = "watcher"

// defaultDebounce is how long the watcher waits for further changes before
// emitting. Editors produce several filesystem events for a single save.
const defaultDebounce = 500 * time.Millisecond

// Event signals that the watched manifest path changed and should be
// reloaded.
type Event struct {
	// Path is the watched path as given to New.
	Path string

	// Timestamp is when the last underlying filesystem event arrived.
	Timestamp time.Time
}

// Watcher emits debounced change notifications for a manifest file or a
// manifest directory.
type Watcher struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration

	fs      *fsnotify.Watcher
	pending *time.Timer
	stopCh  chan struct{}
	running bool

	// watchFile is the base name to filter on when path is a single file;
	// empty in directory mode. Set once in Start.
	watchFile string
}

// New creates a watcher for path, which may be a manifest file or a
// directory of manifests. A zero debounce selects the default.
func New(path string, debounce time.Duration) *Watcher {
	if debounce == 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching and delivers events to changes until the context is
// cancelled or Stop is called. Starting a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context, changes chan<- Event) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watchDir := w.path
	if info, err := os.Stat(w.path); err != nil || !info.IsDir() {
		// Watch the parent directory so atomic replaces of the file
		// (rename plus create) are still seen.
		watchDir = filepath.Dir(w.path)
		w.watchFile = filepath.Base(w.path)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fs.Add(watchDir); err != nil {
		fs.Close()
		w.mu.Unlock()
		return fmt.Errorf("watching %s: %w", watchDir, err)
	}

	w.fs = fs
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.processEvents(ctx, fs, changes)

	logging.Info(subsystem, "Watching %s for manifest changes", w.path)
	return nil
}

// Stop shuts the watcher down and cancels any pending emission. Stopping a
// watcher that is not running is a no-op.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)

	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	if w.fs != nil {
		if err := w.fs.Close(); err != nil {
			logging.Error(subsystem, err, "Error closing filesystem watcher")
		}
		w.fs = nil
	}

	logging.Info(subsystem, "Stopped watching %s", w.path)
	return nil
}

// processEvents drains filesystem events until shutdown.
func (w *Watcher) processEvents(ctx context.Context, fs *fsnotify.Watcher, changes chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-fs.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.scheduleEmit(changes)
			}

		case err, ok := <-fs.Errors:
			if !ok {
				return
			}
			logging.Error(subsystem, err, "Filesystem watcher error")
		}
	}
}

// relevant filters out events the reload loop does not care about.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	const ops = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&ops == 0 {
		return false
	}
	if w.watchFile != "" {
		return filepath.Base(event.Name) == w.watchFile
	}
	return isManifestFile(event.Name)
}

// scheduleEmit arms the debounce timer. One pending timer coalesces every
// change within the window; a reload picks up all accumulated changes
// anyway.
func (w *Watcher) scheduleEmit(changes chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}

	event := Event{Path: w.path, Timestamp: time.Now()}
	w.pending = time.AfterFunc(w.debounce, func() {
		select {
		case changes <- event:
			logging.Debug(subsystem, "Emitted change event for %s", w.path)
		default:
			logging.Warn(subsystem, "Change channel full, dropping event for %s", w.path)
		}
	})
}

// cancelPending stops the debounce timer if armed.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
