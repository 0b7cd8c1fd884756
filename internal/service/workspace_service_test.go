package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"phasepad/internal/domain"
	"phasepad/internal/service"
	"phasepad/internal/storage"
)

func newTestWorkspace(t *testing.T) (*service.WorkspaceService, *service.MockEmitter, *storage.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	emitter := &service.MockEmitter{}
	ws := service.NewWorkspaceService(store, emitter)
	ws.Load()
	return ws, emitter, store
}

func TestCreateNote_PersistsAndEmits(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "text", 100, 100, "")
	if n.X != -25 || n.Y != 10 {
		t.Errorf("expected placement (-25, 10), got (%.0f, %.0f)", n.X, n.Y)
	}
	if emitter.Count("note:saved") != 1 {
		t.Errorf("expected one note:saved event, got %d", emitter.Count("note:saved"))
	}

	// A second service over the same store sees the note.
	reloaded := service.NewWorkspaceService(store, &service.MockEmitter{})
	reloaded.Load()
	if len(reloaded.Notes()) != 1 {
		t.Fatalf("expected persisted note, got %d", len(reloaded.Notes()))
	}
}

func TestUpdatePosition_ClampsSize(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.UpdatePosition(ctx, n.ID, 10, 20, 50, 40); err != nil {
		t.Fatal(err)
	}
	got, _ := ws.Note(n.ID)
	if got.Width != domain.MinWidth || got.Height != domain.MinHeight {
		t.Errorf("expected clamp to %dx%d, got %gx%g", domain.MinWidth, domain.MinHeight, got.Width, got.Height)
	}
	if got.X != 10 || got.Y != 20 {
		t.Errorf("position not applied: (%.0f, %.0f)", got.X, got.Y)
	}
}

func TestArchiveAndRestore(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.Archive(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	if len(ws.Notes()) != 0 || len(ws.ArchivedNotes()) != 1 {
		t.Fatal("archive did not move the note")
	}
	if ws.ArchivedNotes()[0].ArchivedAt == "" {
		t.Error("archivedAt not stamped")
	}

	if err := ws.Restore(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	if len(ws.Notes()) != 1 || len(ws.ArchivedNotes()) != 0 {
		t.Fatal("restore did not move the note back")
	}
	if ws.Notes()[0].ArchivedAt != "" {
		t.Error("archivedAt not cleared on restore")
	}
}

func TestRestore_ResetsTimer(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "timer", 0, 0, "")
	if err := ws.Mutate(ctx, n.ID, func(n *domain.Note) {
		n.TimerRemaining = 17
		n.TimerRunning = true
	}); err != nil {
		t.Fatal(err)
	}
	if err := ws.Archive(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	if err := ws.Restore(ctx, n.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := ws.Note(n.ID)
	if got.TimerRunning {
		t.Error("restored timer must be stopped")
	}
	if got.TimerRemaining != got.TimerDuration {
		t.Errorf("restored timer must be reset, got %d/%d", got.TimerRemaining, got.TimerDuration)
	}
}

func TestDelete_CleansEveryFolder(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folderA := ws.CreateNote(ctx, "folder", 0, 0, "")
	folderB := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")

	if err := ws.AddToFolder(ctx, n.ID, folderA.ID); err != nil {
		t.Fatal(err)
	}
	// Simulate a stale membership in a second folder, the kind a crashed
	// save can leave behind. The note's parentFolder still points at A.
	if err := ws.Mutate(ctx, folderB.ID, func(f *domain.Note) {
		f.FolderItems = append(f.FolderItems, n.ID)
	}); err != nil {
		t.Fatal(err)
	}

	if err := ws.Delete(ctx, n.ID); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{folderA.ID, folderB.ID} {
		f, _ := ws.Note(id)
		if len(f.FolderItems) != 0 {
			t.Errorf("folder %s still references deleted note: %v", id, f.FolderItems)
		}
	}
	if _, ok := ws.Note(n.ID); ok {
		t.Error("note still present after delete")
	}
}

func TestDelete_StopsTimerLoop(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	stopped := ""
	ws.SetTimerStop(func(id string) { stopped = id })

	n := ws.CreateNote(ctx, "timer", 0, 0, "")
	if err := ws.Delete(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	if stopped != n.ID {
		t.Errorf("expected timer teardown for %s, got %q", n.ID, stopped)
	}
}

func TestSwitchWorkspace(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	ctx := context.Background()

	ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.SwitchWorkspace(ctx, "work"); err != nil {
		t.Fatal(err)
	}
	if ws.Current() != "work" {
		t.Fatalf("expected work, got %s", ws.Current())
	}
	if len(ws.Notes()) != 0 {
		t.Error("work workspace should start empty")
	}
	if emitter.Count("workspace:switched") != 1 {
		t.Error("expected workspace:switched event")
	}
	if store.LoadPreference() != "work" {
		t.Error("preference not persisted")
	}

	if err := ws.SwitchWorkspace(ctx, "gaming"); err == nil {
		t.Error("expected error for unknown workspace")
	}

	// Switching back, the home note is still there.
	if err := ws.SwitchWorkspace(ctx, "home"); err != nil {
		t.Fatal(err)
	}
	if len(ws.Notes()) != 1 {
		t.Error("home notes lost across a switch")
	}
}

func TestResetAll(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.SwitchWorkspace(ctx, "work"); err != nil {
		t.Fatal(err)
	}
	ws.CreateNote(ctx, "text", 0, 0, "")

	ws.ResetAll(ctx)
	if len(ws.Notes()) != 0 {
		t.Error("work notes survived reset")
	}
	if err := ws.SwitchWorkspace(ctx, "home"); err != nil {
		t.Fatal(err)
	}
	if len(ws.Notes()) != 0 {
		t.Error("home notes survived reset")
	}
}

func TestNote_ReturnsIsolatedCopy(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "text", 0, 0, "")
	before, _ := ws.Note(n.ID)

	if err := ws.Mutate(ctx, n.ID, func(n *domain.Note) {
		n.Title = "changed"
		n.Tags = append(n.Tags, "work")
	}); err != nil {
		t.Fatal(err)
	}
	if before.Title != "" || len(before.Tags) != 0 {
		t.Errorf("earlier read mutated in place: title=%q tags=%v", before.Title, before.Tags)
	}

	// Writes through a returned copy must not leak back in.
	before.Title = "scribble"
	got, _ := ws.Note(n.ID)
	if got.Title != "changed" {
		t.Errorf("copy write leaked into the workspace: %q", got.Title)
	}
}

func TestReaders_DoNotShareStateWithMutators(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()
	timers := service.NewTimerService(ws, emitter)

	n := ws.CreateNote(ctx, "timer", 0, 0, "")
	if err := ws.Mutate(ctx, n.ID, func(n *domain.Note) {
		n.TimerRemaining = 10000
		n.TimerRunning = true
	}); err != nil {
		t.Fatal(err)
	}

	// Marshal reads on one goroutine while ticks mutate on another; the
	// race detector flags any shared note state.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			timers.Tick(ctx, n.ID)
		}
	}()
	for {
		got, ok := ws.Note(n.ID)
		if !ok {
			t.Fatal("note disappeared mid-countdown")
		}
		if _, err := json.Marshal(got); err != nil {
			t.Fatal(err)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestMutate_UnknownNote(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	if err := ws.Mutate(context.Background(), "note-missing", func(*domain.Note) {}); err == nil {
		t.Error("expected error for unknown note")
	}
}
