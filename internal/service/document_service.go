package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"phasepad/internal/domain"
	"phasepad/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Saved documents
// ─────────────────────────────────────────────────────────────

// DocumentService saves document notes to standalone files and reopens
// them later. The catalog entry is keyed by the note's originalDocumentId
// when it has one, so re-saving a reopened document updates the same entry
// instead of forking a copy.
type DocumentService struct {
	ws      *WorkspaceService
	store   *storage.Store
	emitter EventEmitter
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(ws *WorkspaceService, store *storage.Store, emitter EventEmitter) *DocumentService {
	return &DocumentService{ws: ws, store: store, emitter: emitter}
}

// List returns the saved-documents catalog.
func (s *DocumentService) List() []domain.SavedDocument {
	return s.store.LoadDocuments()
}

// SaveNote writes a document note to path and records it in the catalog.
// An empty path reuses the note's previous file or picks a default under
// documents/.
func (s *DocumentService) SaveNote(ctx context.Context, noteID, path string) (*domain.SavedDocument, error) {
	n, ok := s.ws.Note(noteID)
	if !ok || n.Type != domain.NoteTypeDocument {
		return nil, fmt.Errorf("note %s is not a document", noteID)
	}

	title := n.DocumentTitle
	if title == "" {
		title = domain.AutoTitle(n)
	}
	if title == "" {
		title = "Untitled Document"
	}
	if path == "" {
		path = n.DocumentPath
	}
	if path == "" {
		path = s.store.DefaultDocumentPath(title)
	}

	docID := n.OriginalDocumentID
	if docID == "" {
		docID = n.ID
	}

	now := time.Now().Format(time.RFC3339)
	doc := domain.SavedDocument{
		ID:           docID,
		Title:        title,
		Content:      n.DocumentContent,
		Tags:         n.Tags,
		CreatedAt:    now,
		ModifiedAt:   now,
		Type:         "document",
		FilePath:     path,
		DocumentType: n.DocumentType,
	}
	if existing := s.store.FindDocument(docID); existing != nil && existing.CreatedAt != "" {
		doc.CreatedAt = existing.CreatedAt
	}

	if err := storage.WriteDocumentFile(path, doc); err != nil {
		return nil, err
	}
	if err := s.store.UpsertDocument(doc); err != nil {
		return nil, err
	}
	if err := s.ws.Mutate(ctx, noteID, func(n *domain.Note) {
		n.DocumentSaved = true
		n.DocumentPath = path
		n.DocumentTitle = title
	}); err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, "document:saved", map[string]string{"documentId": docID, "path": path})
	return &doc, nil
}

// Open spawns a fresh document note from a catalog entry, placed relative
// to (x, y) so it lands roughly centered under the cursor. The new note
// keeps a back-reference to the catalog entry via originalDocumentId.
func (s *DocumentService) Open(ctx context.Context, documentID string, x, y float64) (*domain.Note, error) {
	doc := s.store.FindDocument(documentID)
	if doc == nil {
		return nil, fmt.Errorf("document %s not found", documentID)
	}

	n := &domain.Note{
		ID:                 domain.NewNoteID(),
		Type:               domain.NoteTypeDocument,
		X:                  x - 400,
		Y:                  y - 300,
		Width:              800,
		Height:             600,
		Color:              domain.DefaultColor,
		Tags:               append([]string{}, doc.Tags...),
		CreatedAt:          time.Now().Format(time.RFC3339),
		Content:            stripHTML(doc.Content),
		DocumentContent:    doc.Content,
		DocumentTitle:      doc.Title,
		DocumentType:       doc.DocumentType,
		DocumentPath:       doc.FilePath,
		DocumentSaved:      true,
		OriginalDocumentID: doc.ID,
	}
	n.Repair()

	s.ws.InsertNote(ctx, n)
	s.emitter.Emit(ctx, "document:opened", map[string]string{"documentId": doc.ID, "noteId": n.ID})
	return n, nil
}

// Delete removes a catalog entry and, when deleteFile is set, its backing
// file. A missing file is not an error.
func (s *DocumentService) Delete(ctx context.Context, documentID string, deleteFile bool) error {
	removed, err := s.store.RemoveDocument(documentID)
	if err != nil {
		return err
	}
	if removed == nil {
		return fmt.Errorf("document %s not found", documentID)
	}
	if deleteFile && removed.FilePath != "" {
		if err := os.Remove(removed.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("documents: remove file %s: %v", removed.FilePath, err)
		}
	}
	s.emitter.Emit(ctx, "document:deleted", map[string]string{"documentId": documentID})
	return nil
}
