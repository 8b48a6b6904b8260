package catalog

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the rescan event channel.
	eventChannelBuffer = 16

	// DefaultDebounce is how long the watcher waits for more changes
	// before rescanning.
	DefaultDebounce = 500 * time.Millisecond
)

// Event reports a completed rescan.
type Event struct {
	// Paths are the changed documents that triggered the rescan.
	Paths []string
	// Entries is the number of catalog entries after the rescan.
	Entries int
	// Err is set when the rescan failed.
	Err error
}

// Watcher rescans a catalog when documents in its directories change.
type Watcher struct {
	catalog  *Catalog
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	events  chan Event
	done    chan struct{}
	started atomic.Bool
	stopped atomic.Bool

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for c. A zero debounce uses
// DefaultDebounce.
func NewWatcher(c *Catalog, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		catalog:  c,
		watcher:  fsw,
		debounce: debounce,
		logger:   c.logger,
		pending:  make(map[string]struct{}),
		events:   make(chan Event, eventChannelBuffer),
		done:     make(chan struct{}),
	}, nil
}

// Events returns the rescan events. The channel is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start watches the catalog directories and processes changes until ctx
// is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, d := range w.catalog.Directories() {
		if err := w.addWatchesRecursive(d.Path); err != nil {
			w.watcher.Close()
			return err
		}
	}

	w.started.Store(true)
	go w.processEvents(ctx)

	w.logger.Info("Catalog watcher started",
		"directories", len(w.catalog.dirs),
		"debounce", w.debounce)
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	if !w.stopped.CompareAndSwap(false, true) {
		return nil
	}
	err := w.watcher.Close()
	if w.started.Load() {
		<-w.done
	}
	return err
}

// DroppedEvents returns the number of events dropped due to channel
// overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := d.Name(); strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !w.covered(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Ontology document change detected", "path", event.Name, "op", event.Op.String())
}

// covered reports whether path is a document one of the directories scans.
func (w *Watcher) covered(path string) bool {
	for _, d := range w.catalog.Directories() {
		rel, err := filepath.Rel(d.Path, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if d.Matches(rel) {
			return true
		}
	}
	return false
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()
	slices.Sort(paths)

	err := w.catalog.Scan(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		w.logger.Warn("Catalog rescan failed", "error", err)
	}
	w.sendEvent(Event{Paths: paths, Entries: len(w.catalog.Entries()), Err: err})
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"paths", len(event.Paths),
			"total_dropped", dropped)
	}
}
