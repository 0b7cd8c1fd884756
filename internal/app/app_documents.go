package app

import (
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Saved-document bindings
// ─────────────────────────────────────────────────────────────

// GetSavedDocuments returns the saved-documents catalog.
func (a *App) GetSavedDocuments() []domain.SavedDocument {
	return a.documents.List()
}

// SaveDocument writes a document note to its existing file, or a default
// path under documents/ on first save.
func (a *App) SaveDocument(noteID string) (*domain.SavedDocument, error) {
	return a.documents.SaveNote(a.ctx, noteID, "")
}

// SaveDocumentAs prompts for a target file and saves the document note
// there. A .ppdoc target keeps the editable envelope; .html exports a
// styled page. Returns nil when the user cancels.
func (a *App) SaveDocumentAs(noteID string) (*domain.SavedDocument, error) {
	n, ok := a.workspace.Note(noteID)
	if !ok {
		return nil, notFound(noteID)
	}

	defaultName := n.DocumentTitle
	if defaultName == "" {
		defaultName = "Untitled Document"
	}
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:            "Save Document",
		DefaultDirectory: a.store.DocumentsDir(),
		DefaultFilename:  defaultName + ".ppdoc",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PhasePad Document", Pattern: "*.ppdoc"},
			{DisplayName: "Web Page", Pattern: "*.html"},
		},
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	if filepath.Ext(path) == "" {
		path += ".ppdoc"
	}
	return a.documents.SaveNote(a.ctx, noteID, path)
}

// OpenDocument reopens a saved document as a fresh note placed around the
// given canvas point.
func (a *App) OpenDocument(documentID string, x, y float64) (*domain.Note, error) {
	return a.documents.Open(a.ctx, documentID, x, y)
}

// DeleteDocument removes a catalog entry and optionally its backing file.
func (a *App) DeleteDocument(documentID string, deleteFile bool) error {
	return a.documents.Delete(a.ctx, documentID, deleteFile)
}
