package service_test

import (
	"context"
	"testing"

	"phasepad/internal/domain"
)

func TestAddToFolder(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folder := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")

	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}

	f, _ := ws.Note(folder.ID)
	if len(f.FolderItems) != 1 || f.FolderItems[0] != n.ID {
		t.Errorf("folder items: %v", f.FolderItems)
	}
	got, _ := ws.Note(n.ID)
	if got.ParentFolder != folder.ID {
		t.Errorf("parentFolder: %q", got.ParentFolder)
	}

	// Adding again is a no-op, not a duplicate.
	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}
	f, _ = ws.Note(folder.ID)
	if len(f.FolderItems) != 1 {
		t.Errorf("duplicate membership: %v", f.FolderItems)
	}
}

func TestAddToFolder_Reparents(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folderA := ws.CreateNote(ctx, "folder", 0, 0, "")
	folderB := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")

	if err := ws.AddToFolder(ctx, n.ID, folderA.ID); err != nil {
		t.Fatal(err)
	}
	if err := ws.AddToFolder(ctx, n.ID, folderB.ID); err != nil {
		t.Fatal(err)
	}

	a, _ := ws.Note(folderA.ID)
	b, _ := ws.Note(folderB.ID)
	if len(a.FolderItems) != 0 {
		t.Errorf("old folder still holds the note: %v", a.FolderItems)
	}
	if len(b.FolderItems) != 1 {
		t.Errorf("new folder missing the note: %v", b.FolderItems)
	}
	got, _ := ws.Note(n.ID)
	if got.ParentFolder != folderB.ID {
		t.Errorf("parentFolder: %q", got.ParentFolder)
	}
}

func TestAddToFolder_RejectsNonFolderTarget(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	text := ws.CreateNote(ctx, "text", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")

	if err := ws.AddToFolder(ctx, n.ID, text.ID); err == nil {
		t.Error("expected error when target is not a folder")
	}
}

func TestAddToFolder_RejectsCycles(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	outer := ws.CreateNote(ctx, "folder", 0, 0, "")
	middle := ws.CreateNote(ctx, "folder", 0, 0, "")
	inner := ws.CreateNote(ctx, "folder", 0, 0, "")

	if err := ws.AddToFolder(ctx, middle.ID, outer.ID); err != nil {
		t.Fatal(err)
	}
	if err := ws.AddToFolder(ctx, inner.ID, middle.ID); err != nil {
		t.Fatal(err)
	}

	if err := ws.AddToFolder(ctx, outer.ID, outer.ID); err == nil {
		t.Error("expected self-containment rejected")
	}
	if err := ws.AddToFolder(ctx, outer.ID, inner.ID); err == nil {
		t.Error("expected transitive cycle rejected")
	}
}

func TestRemoveFromFolder(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folder := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}

	if err := ws.RemoveFromFolder(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	f, _ := ws.Note(folder.ID)
	if len(f.FolderItems) != 0 {
		t.Errorf("folder still holds the note: %v", f.FolderItems)
	}
	got, _ := ws.Note(n.ID)
	if got.ParentFolder != "" {
		t.Errorf("parentFolder not cleared: %q", got.ParentFolder)
	}
}

func TestHandleDrop_EmptyTargetDetaches(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folder := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}

	if err := ws.HandleDrop(ctx, n.ID, ""); err != nil {
		t.Fatal(err)
	}
	got, _ := ws.Note(n.ID)
	if got.ParentFolder != "" {
		t.Error("drop on empty canvas should detach")
	}
}

func TestOpenAndHideFromFolder(t *testing.T) {
	ws, _, store := newTestWorkspace(t)
	ctx := context.Background()

	folder := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}

	if err := ws.OpenFromFolder(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := ws.Note(n.ID)
	if !got.IsOpenFromFolder {
		t.Fatal("note not marked open")
	}

	// The pop-out flag is session-only: a reload never sees it.
	for _, persisted := range store.LoadWorkspace(domain.WorkspaceHome).Notes {
		if persisted.IsOpenFromFolder {
			t.Error("open-from-folder flag leaked into the workspace file")
		}
	}

	if err := ws.HideFromFolder(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = ws.Note(n.ID)
	if got.IsOpenFromFolder {
		t.Error("note still marked open after hide")
	}
}

func TestFolderMembers_SkipsDanglingIDs(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	folder := ws.CreateNote(ctx, "folder", 0, 0, "")
	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if err := ws.AddToFolder(ctx, n.ID, folder.ID); err != nil {
		t.Fatal(err)
	}
	if err := ws.Mutate(ctx, folder.ID, func(f *domain.Note) {
		f.FolderItems = append(f.FolderItems, "note-gone")
	}); err != nil {
		t.Fatal(err)
	}

	members, err := ws.FolderMembers(folder.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].ID != n.ID {
		t.Errorf("expected only the live member, got %d", len(members))
	}
}
