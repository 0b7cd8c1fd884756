package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Saved-documents catalog + backing files
// ─────────────────────────────────────────────────────────────
//
// The catalog (saved-documents.json) is a flat array keyed by document id.
// Each entry points at a standalone .ppdoc (JSON envelope) or .html (styled
// page) file, usually under <root>/documents/.

func (s *Store) documentsCatalogPath() string {
	return filepath.Join(s.DataPath(), "saved-documents.json")
}

// LoadDocuments reads the catalog; missing or corrupt files yield an empty
// list.
func (s *Store) LoadDocuments() []domain.SavedDocument {
	data, err := os.ReadFile(s.documentsCatalogPath())
	if err != nil {
		return []domain.SavedDocument{}
	}
	var docs []domain.SavedDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		log.Printf("store: parse saved documents: %v", err)
		return []domain.SavedDocument{}
	}
	for i := range docs {
		if docs[i].Tags == nil {
			docs[i].Tags = []string{}
		}
	}
	return docs
}

// SaveDocuments overwrites the catalog.
func (s *Store) SaveDocuments(docs []domain.SavedDocument) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal saved documents: %w", err)
	}
	s.markWrite()
	if err := os.WriteFile(s.documentsCatalogPath(), data, 0644); err != nil {
		return fmt.Errorf("write saved documents: %w", err)
	}
	return nil
}

// FindDocument returns the catalog entry with the given id, or nil.
func (s *Store) FindDocument(id string) *domain.SavedDocument {
	for _, doc := range s.LoadDocuments() {
		if doc.ID == id {
			d := doc
			return &d
		}
	}
	return nil
}

// UpsertDocument inserts or replaces a catalog entry by id.
func (s *Store) UpsertDocument(doc domain.SavedDocument) error {
	docs := s.LoadDocuments()
	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	return s.SaveDocuments(docs)
}

// RemoveDocument deletes a catalog entry and returns it, or nil when the id
// is unknown.
func (s *Store) RemoveDocument(id string) (*domain.SavedDocument, error) {
	docs := s.LoadDocuments()
	for i := range docs {
		if docs[i].ID == id {
			removed := docs[i]
			docs = append(docs[:i], docs[i+1:]...)
			if err := s.SaveDocuments(docs); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, nil
}

// ── Backing files ──────────────────────────────────────────

var invalidFilenameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// DefaultDocumentPath picks a collision-free .ppdoc path under documents/
// for a document title, appending " (n)" while the name is taken.
func (s *Store) DefaultDocumentPath(title string) string {
	if title == "" {
		title = "document"
	}
	name := invalidFilenameChars.Replace(title)
	dir := s.DocumentsDir()

	path := filepath.Join(dir, name+".ppdoc")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s (%d).ppdoc", name, counter))
	}
}

// WriteDocumentFile writes the backing file for a saved document. The
// extension picks the format: .ppdoc stores the JSON envelope, anything
// else gets a standalone styled HTML page.
func WriteDocumentFile(path string, doc domain.SavedDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	var data []byte
	if strings.ToLower(filepath.Ext(path)) == ".ppdoc" {
		var err error
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
	} else {
		data = []byte(documentHTML(doc))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	return nil
}

func documentHTML(doc domain.SavedDocument) string {
	title := doc.Title
	if title == "" {
		title = "Document"
	}
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + title + `</title>
  <style>
    body {
      font-family: "Times New Roman", serif;
      font-size: 12pt;
      line-height: 1.6;
      max-width: 8.5in;
      margin: 1in auto;
      color: #333;
    }
    p { margin-bottom: 12px; }
  </style>
</head>
<body>
  ` + doc.Content + `
</body>
</html>`
}
