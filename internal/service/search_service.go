package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"phasepad/internal/domain"
	"phasepad/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Search
// ─────────────────────────────────────────────────────────────

// Filters narrows a search. The category flags are OR-ed: a note matches
// when any enabled category matches. All false means search everything.
type Filters struct {
	Titles   bool `json:"titles"`
	Content  bool `json:"content"`
	Tags     bool `json:"tags"`
	Archived bool `json:"archived"`
}

// Result is one search hit: a live note, an archived note, or a saved
// document from the catalog.
type Result struct {
	Note           *domain.Note `json:"note,omitempty"`
	TitleMatch     bool         `json:"titleMatch"`
	ContentMatch   bool         `json:"contentMatch"`
	TagsMatch      bool         `json:"tagsMatch"`
	MatchedContent string       `json:"matchedContent,omitempty"`
	Archived       bool         `json:"archived"`

	IsDocument    bool   `json:"isDocument,omitempty"`
	DocumentID    string `json:"documentId,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	DocumentPath  string `json:"documentPath,omitempty"`
}

// SearchService matches notes and saved documents against a query string.
// The documents catalog is re-read per query so hits reflect files saved
// by other instances.
type SearchService struct {
	ws    *WorkspaceService
	store *storage.Store
}

// NewSearchService creates a SearchService.
func NewSearchService(ws *WorkspaceService, store *storage.Store) *SearchService {
	return &SearchService{ws: ws, store: store}
}

// Search returns every hit for query in the active workspace. An empty or
// whitespace query returns no hits.
func (s *SearchService) Search(query string, f Filters) []Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []Result{}
	}
	if !f.Titles && !f.Content && !f.Tags {
		f.Titles, f.Content, f.Tags = true, true, true
	}

	results := []Result{}
	ws := s.ws.Workspace()
	for _, n := range ws.Notes {
		if r, ok := s.matchNote(n, query, f, false); ok {
			results = append(results, r)
		}
	}
	if f.Archived {
		for _, n := range ws.ArchivedNotes {
			if r, ok := s.matchNote(n, query, f, true); ok {
				results = append(results, r)
			}
		}
	}
	if f.Content || f.Titles {
		results = append(results, s.matchDocuments(query, f)...)
	}
	return results
}

func (s *SearchService) matchNote(n *domain.Note, query string, f Filters, archived bool) (Result, bool) {
	r := Result{Note: n, Archived: archived}

	if f.Titles {
		title := n.Title
		if title == "" {
			title = domain.AutoTitle(n)
		}
		r.TitleMatch = strings.Contains(strings.ToLower(title), query)
	}
	if f.Tags {
		for _, tag := range n.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				r.TagsMatch = true
				break
			}
		}
	}
	if f.Content {
		if snippet, ok := matchContent(s.searchableContent(n), query); ok {
			r.ContentMatch = true
			r.MatchedContent = snippet
		}
	}

	return r, r.TitleMatch || r.ContentMatch || r.TagsMatch
}

// searchableContent projects a note's payload to plain text for matching.
func (s *SearchService) searchableContent(n *domain.Note) string {
	switch n.Type {
	case domain.NoteTypeTodo:
		parts := make([]string, 0, len(n.TodoItems))
		for _, item := range n.TodoItems {
			parts = append(parts, item.Text)
		}
		return strings.Join(parts, " ")
	case domain.NoteTypeReminder:
		return strings.Join([]string{n.Content, n.ReminderMessage}, " ")
	case domain.NoteTypeWeb:
		return strings.Join([]string{n.WebURL, n.WebTitle, n.WebDescription}, " ")
	case domain.NoteTypeTable:
		var parts []string
		for _, row := range n.TableData {
			parts = append(parts, row...)
		}
		return strings.Join(parts, " ")
	case domain.NoteTypeLocation:
		return strings.Join([]string{n.LocationName, n.LocationAddress, n.LocationNotes}, " ")
	case domain.NoteTypeCalculator:
		return strings.Join(append([]string{n.CalculatorDisplay}, n.CalculatorHistory...), " ")
	case domain.NoteTypeCode:
		return strings.Join([]string{n.CodeLanguage, n.CodeContent}, " ")
	case domain.NoteTypeFile:
		return strings.Join([]string{n.Content, n.FilePath}, " ")
	case domain.NoteTypeImage:
		return strings.Join([]string{n.Content, n.ImagePath, n.OCRExtractedText}, " ")
	case domain.NoteTypeDocument:
		return stripHTML(n.DocumentContent)
	case domain.NoteTypeFolder:
		var parts []string
		for _, id := range n.FolderItems {
			if member, ok := s.ws.Note(id); ok {
				title := member.Title
				if title == "" {
					title = domain.AutoTitle(member)
				}
				parts = append(parts, title)
			}
		}
		return strings.Join(parts, " ")
	default:
		return n.Content
	}
}

func (s *SearchService) matchDocuments(query string, f Filters) []Result {
	var results []Result
	for _, doc := range s.store.LoadDocuments() {
		r := Result{
			IsDocument:    true,
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			DocumentPath:  doc.FilePath,
		}
		if f.Titles {
			r.TitleMatch = strings.Contains(strings.ToLower(doc.Title), query)
		}
		if f.Content {
			if snippet, ok := matchContent(stripHTML(doc.Content), query); ok {
				r.ContentMatch = true
				r.MatchedContent = snippet
			}
		}
		if r.TitleMatch || r.ContentMatch {
			results = append(results, r)
		}
	}
	return results
}

// matchContent finds the lowercased query in content and returns a snippet
// around the first hit. The match index points into the lowercased text, so
// the snippet is cut from that same text whenever lowercasing changed byte
// offsets (some case foldings alter a rune's encoded length).
func matchContent(content, query string) (string, bool) {
	lower := strings.ToLower(content)
	idx := strings.Index(lower, query)
	if idx < 0 {
		return "", false
	}
	src := content
	if len(lower) != len(content) {
		src = lower
	}
	return contextWindow(src, idx, len(query)), true
}

// contextWindow returns the match with up to 30 characters of context on
// each side, elided with "..." where the window cuts the text.
func contextWindow(content string, idx, matchLen int) string {
	const window = 30

	start := idx - window
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	end := idx + matchLen + window
	if end > len(content) {
		end = len(content)
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	out := htmlTagRe.ReplaceAllString(s, " ")
	out = strings.ReplaceAll(out, "&nbsp;", " ")
	return strings.Join(strings.Fields(out), " ")
}
