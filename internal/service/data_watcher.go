package service

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"phasepad/internal/domain"
	"phasepad/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// External-change watcher
// ─────────────────────────────────────────────────────────────

// debounceDelay collapses editor save bursts (truncate + write + rename)
// into one reload notification.
const debounceDelay = 500 * time.Millisecond

// selfWriteWindow is how recently the store must have written for a
// filesystem event to be attributed to ourselves and ignored.
const selfWriteWindow = 2 * time.Second

// DataWatcher watches the data directory for workspace-file edits made by
// other programs (a sync client, a text editor) and asks the workspace
// service to reload when one lands.
type DataWatcher struct {
	mu      sync.Mutex
	ws      *WorkspaceService
	store   *storage.Store
	emitter EventEmitter

	watcher *fsnotify.Watcher
	pending *time.Timer
	done    chan struct{}
}

// NewDataWatcher creates a DataWatcher.
func NewDataWatcher(ws *WorkspaceService, store *storage.Store, emitter EventEmitter) *DataWatcher {
	return &DataWatcher{ws: ws, store: store, emitter: emitter}
}

// Start begins watching the current data directory.
func (w *DataWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.store.DataPath()); err != nil {
		watcher.Close()
		return err
	}

	w.mu.Lock()
	w.watcher = watcher
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.loop(ctx, watcher)
	return nil
}

// Restart re-points the watcher after a data-path relocation.
func (w *DataWatcher) Restart(ctx context.Context) error {
	w.Stop()
	return w.Start(ctx)
}

// Stop halts the watcher.
func (w *DataWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		close(w.done)
		w.watcher.Close()
		w.watcher = nil
	}
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

func (w *DataWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()

	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if w.store.WroteWithin(selfWriteWindow) {
				continue
			}
			w.schedule(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

func (w *DataWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	for _, workspace := range domain.WorkspaceNames {
		if name == workspace+"-notes.json" {
			return true
		}
	}
	return false
}

// schedule arms the debounced reload; a new event while armed pushes the
// deadline back.
func (w *DataWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, func() {
		w.ws.Load()
		w.emitter.Emit(ctx, "data:changed", nil)
	})
}
