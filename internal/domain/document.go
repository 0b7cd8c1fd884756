package domain

// SavedDocument is one entry in the saved-documents catalog. The catalog is
// persisted as a flat JSON array independent of any workspace; FilePath
// points at the backing .ppdoc or .html file.
type SavedDocument struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"createdAt"`
	ModifiedAt   string   `json:"modifiedAt"`
	Type         string   `json:"type"`
	FilePath     string   `json:"filePath"`
	DocumentType string   `json:"documentType,omitempty"`
}
