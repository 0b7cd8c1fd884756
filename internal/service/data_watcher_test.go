package service_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"phasepad/internal/domain"
	"phasepad/internal/service"
)

func waitForCount(t *testing.T, emitter *service.MockEmitter, event string, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if emitter.Count(event) >= want {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d %s events, got %d", want, event, emitter.Count(event))
}

func TestDataWatcher_ReloadsOnExternalEdit(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	watcher := service.NewDataWatcher(ws, store, emitter)
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	// Another program rewrites the home workspace file directly.
	external := domain.NewWorkspace()
	external.Notes = append(external.Notes, domain.NewNote(domain.NoteTypeText, 0, 0, ""))
	data, err := json.Marshal(external)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.WorkspaceFile(domain.WorkspaceHome), data, 0644); err != nil {
		t.Fatal(err)
	}

	waitForCount(t, emitter, "data:changed", 1)
	if len(ws.Notes()) != 1 {
		t.Errorf("workspace not reloaded, have %d notes", len(ws.Notes()))
	}
}

func TestDataWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	watcher := service.NewDataWatcher(ws, store, emitter)
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(store.DataPath()+"/scratch.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(time.Second)
	if emitter.Count("data:changed") != 0 {
		t.Error("unrelated file triggered a reload")
	}
}
