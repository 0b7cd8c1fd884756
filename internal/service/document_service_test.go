package service_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"phasepad/internal/domain"
	"phasepad/internal/service"
)

func TestSaveNote_FirstSave(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	docs := service.NewDocumentService(ws, store, emitter)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "document", 0, 0, "")
	if err := ws.Mutate(ctx, n.ID, func(n *domain.Note) {
		n.DocumentTitle = "Launch Checklist"
		n.DocumentContent = "<p>dns cutover</p>"
		n.DocumentSaved = false
	}); err != nil {
		t.Fatal(err)
	}

	doc, err := docs.SaveNote(ctx, n.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != n.ID {
		t.Errorf("first save should key the catalog by the note id, got %s", doc.ID)
	}
	if !strings.HasSuffix(doc.FilePath, "Launch Checklist.ppdoc") {
		t.Errorf("unexpected default path %s", doc.FilePath)
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		t.Errorf("backing file missing: %v", err)
	}

	got, _ := ws.Note(n.ID)
	if !got.DocumentSaved || got.DocumentPath != doc.FilePath {
		t.Errorf("note not marked saved: saved=%v path=%s", got.DocumentSaved, got.DocumentPath)
	}
	if emitter.Count("document:saved") != 1 {
		t.Error("expected document:saved event")
	}
}

func TestSaveNote_RejectsNonDocument(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	docs := service.NewDocumentService(ws, store, emitter)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "text", 0, 0, "")
	if _, err := docs.SaveNote(ctx, n.ID, ""); err == nil {
		t.Error("expected error saving a non-document note")
	}
}

func TestOpen_SpawnsFreshNote(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	docs := service.NewDocumentService(ws, store, emitter)
	ctx := context.Background()

	original := ws.CreateNote(ctx, "document", 0, 0, "")
	if err := ws.Mutate(ctx, original.ID, func(n *domain.Note) {
		n.DocumentTitle = "Spec"
		n.DocumentContent = "<p>the <i>details</i></p>"
	}); err != nil {
		t.Fatal(err)
	}
	saved, err := docs.SaveNote(ctx, original.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Delete(ctx, original.ID); err != nil {
		t.Fatal(err)
	}

	opened, err := docs.Open(ctx, saved.ID, 960, 540)
	if err != nil {
		t.Fatal(err)
	}
	if opened.ID == original.ID {
		t.Error("open must spawn a fresh note id")
	}
	if opened.OriginalDocumentID != saved.ID {
		t.Errorf("missing back-reference, got %q", opened.OriginalDocumentID)
	}
	if opened.X != 560 || opened.Y != 240 {
		t.Errorf("unexpected placement (%.0f, %.0f)", opened.X, opened.Y)
	}
	if opened.Width != 800 || opened.Height != 600 {
		t.Errorf("unexpected size %gx%g", opened.Width, opened.Height)
	}
	if opened.DocumentContent != "<p>the <i>details</i></p>" {
		t.Errorf("body lost: %q", opened.DocumentContent)
	}
	if strings.Contains(opened.Content, "<i>") {
		t.Errorf("plain-text projection leaked HTML: %q", opened.Content)
	}
	if !opened.DocumentSaved {
		t.Error("a reopened document starts saved")
	}
}

func TestSaveNote_ReopenedKeepsCatalogEntry(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	docs := service.NewDocumentService(ws, store, emitter)
	ctx := context.Background()

	original := ws.CreateNote(ctx, "document", 0, 0, "")
	saved, err := docs.SaveNote(ctx, original.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	opened, err := docs.Open(ctx, saved.ID, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Mutate(ctx, opened.ID, func(n *domain.Note) {
		n.DocumentContent = "<p>edited</p>"
	}); err != nil {
		t.Fatal(err)
	}

	resaved, err := docs.SaveNote(ctx, opened.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if resaved.ID != saved.ID {
		t.Errorf("re-save forked the catalog entry: %s vs %s", resaved.ID, saved.ID)
	}
	if len(docs.List()) != 1 {
		t.Errorf("expected one catalog entry, got %d", len(docs.List()))
	}
	if docs.List()[0].Content != "<p>edited</p>" {
		t.Error("catalog entry not updated")
	}
}

func TestDelete_RemovesEntryAndFile(t *testing.T) {
	ws, emitter, store := newTestWorkspace(t)
	docs := service.NewDocumentService(ws, store, emitter)
	ctx := context.Background()

	n := ws.CreateNote(ctx, "document", 0, 0, "")
	saved, err := docs.SaveNote(ctx, n.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := docs.Delete(ctx, saved.ID, true); err != nil {
		t.Fatal(err)
	}
	if len(docs.List()) != 0 {
		t.Error("catalog entry survived delete")
	}
	if _, err := os.Stat(saved.FilePath); !os.IsNotExist(err) {
		t.Error("backing file survived delete")
	}

	if err := docs.Delete(ctx, saved.ID, false); err == nil {
		t.Error("expected error deleting an unknown document")
	}
}
