package domain

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string

const (
	NoteTypeText       NoteType = "text"
	NoteTypeFile       NoteType = "file"
	NoteTypeImage      NoteType = "image"
	NoteTypePaint      NoteType = "paint"
	NoteTypeTodo       NoteType = "todo"
	NoteTypeReminder   NoteType = "reminder"
	NoteTypeWeb        NoteType = "web"
	NoteTypeTable      NoteType = "table"
	NoteTypeLocation   NoteType = "location"
	NoteTypeCalculator NoteType = "calculator"
	NoteTypeTimer      NoteType = "timer"
	NoteTypeFolder     NoteType = "folder"
	NoteTypeCode       NoteType = "code"
	NoteTypeDocument   NoteType = "document"
)

// NoteColors is the swatch palette offered in the note header.
var NoteColors = []string{
	"#ffd700", // yellow
	"#ff69b4", // pink
	"#90ee90", // green
	"#87ceeb", // blue
	"#dda0dd", // purple
	"#ffa500", // orange
	"#ffffff", // white
	"#d3d3d3", // gray
}

const (
	DefaultColor = "#ffd700"
	FolderColor  = "#FFA726"

	MinWidth  = 200
	MinHeight = 150
)

// TodoItem is a single checklist entry inside a todo note.
type TodoItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Note is a single canvas widget. The Type field discriminates which of the
// payload sections is meaningful; the rest stay at their zero/default values
// so a note can switch its displayed type without ever reading junk. The
// JSON layout matches the workspace files on disk.
type Note struct {
	ID    string   `json:"id"`
	Type  NoteType `json:"type"`
	Title string   `json:"title"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`

	Tags      []string `json:"tags"`
	Collapsed bool     `json:"collapsed,omitempty"`

	// Lifecycle. ArchivedAt is set only while the note lives in the
	// archived list. CreatedAt is stamped lazily (documents need it).
	ArchivedAt string `json:"archivedAt,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`

	// Generic content (text notes; documents keep a plain-text copy here
	// for search).
	Content string `json:"content"`

	// File / image / paint payloads.
	FilePath  string `json:"filePath"`
	ImagePath string `json:"imagePath"`
	PaintData string `json:"paintData"`

	// Todo payload.
	TodoItems []TodoItem `json:"todoItems"`

	// Reminder payload.
	ReminderDateTime  string `json:"reminderDateTime"`
	ReminderMessage   string `json:"reminderMessage"`
	ReminderTriggered bool   `json:"reminderTriggered"`

	// Web payload.
	WebURL         string `json:"webUrl"`
	WebTitle       string `json:"webTitle"`
	WebDescription string `json:"webDescription"`

	// Table payload.
	TableData [][]string `json:"tableData"`

	// Location payload.
	LocationAddress string `json:"locationAddress"`
	LocationName    string `json:"locationName"`
	LocationNotes   string `json:"locationNotes"`

	// Calculator payload.
	CalculatorDisplay string   `json:"calculatorDisplay"`
	CalculatorHistory []string `json:"calculatorHistory"`

	// Timer payload. Durations are whole seconds.
	TimerDuration  int    `json:"timerDuration"`
	TimerRemaining int    `json:"timerRemaining"`
	TimerRunning   bool   `json:"timerRunning"`
	TimerType      string `json:"timerType"`
	Detached       bool   `json:"detached,omitempty"`

	// Code payload.
	CodeContent  string `json:"codeContent"`
	CodeLanguage string `json:"codeLanguage"`

	// OCR payload (image notes).
	OCRImagePath      string `json:"ocrImagePath"`
	OCRExtractedText  string `json:"ocrExtractedText"`

	// Folder containment. FolderItems holds member note ids; ParentFolder
	// points back at the containing folder note, if any.
	FolderItems  []string `json:"folderItems"`
	ParentFolder string   `json:"parentFolder,omitempty"`

	// Document payload. OriginalDocumentID links a note reopened from the
	// saved-documents catalog back to its catalog entry.
	DocumentContent    string `json:"documentContent"`
	DocumentTitle      string `json:"documentTitle"`
	DocumentType       string `json:"documentType,omitempty"`
	DocumentPath       string `json:"documentPath,omitempty"`
	DocumentSaved      bool   `json:"documentSaved"`
	OriginalDocumentID string `json:"originalDocumentId,omitempty"`

	// Session-only view state, never persisted.
	IsOpenFromFolder bool `json:"-"`
}

// NewNoteID returns a fresh opaque note id. The "note-" prefix matches the
// ids already present in existing workspace files; the UUID body removes
// the old same-millisecond collision hazard.
func NewNoteID() string {
	return "note-" + uuid.New().String()
}

// DefaultWidth returns the canonical creation width for a note type.
func DefaultWidth(t NoteType) float64 {
	switch t {
	case NoteTypeText:
		return 280
	case NoteTypeFile:
		return 300
	case NoteTypeImage:
		return 320
	case NoteTypePaint:
		return 400
	case NoteTypeTodo:
		return 320
	case NoteTypeReminder:
		return 350
	case NoteTypeWeb:
		return 420
	case NoteTypeTable:
		return 450
	case NoteTypeLocation:
		return 380
	case NoteTypeCalculator:
		return 300
	case NoteTypeTimer:
		return 350
	case NoteTypeFolder:
		return 320
	case NoteTypeCode:
		return 450
	case NoteTypeDocument:
		return 800
	default:
		return 280
	}
}

// DefaultHeight returns the canonical creation height for a note type.
func DefaultHeight(t NoteType) float64 {
	switch t {
	case NoteTypeText:
		return 200
	case NoteTypeFile:
		return 180
	case NoteTypeImage:
		return 250
	case NoteTypePaint:
		return 320
	case NoteTypeTodo:
		return 250
	case NoteTypeReminder:
		return 280
	case NoteTypeWeb:
		return 400
	case NoteTypeTable:
		return 300
	case NoteTypeLocation:
		return 320
	case NoteTypeCalculator:
		return 380
	case NoteTypeTimer:
		return 360
	case NoteTypeFolder:
		return 280
	case NoteTypeCode:
		return 320
	case NoteTypeDocument:
		return 600
	default:
		return 200
	}
}

// Creation offset from the requested point to the note's top-left corner.
// The canvas hands us the cursor position; the note lands slightly up-left
// of it. This is a fixed offset, not half the type's default size — ids in
// files written by earlier releases depend on it.
const (
	createOffsetX = 125
	createOffsetY = 90
)

// PomodoroSeconds is the default countdown for a fresh timer note.
const PomodoroSeconds = 25 * 60

// NewNote builds a note of the given type positioned relative to (x, y),
// with every payload section stamped to a usable default. documentType is
// only meaningful for document notes (word, markdown, spreadsheet, meeting).
func NewNote(t NoteType, x, y float64, documentType string) *Note {
	n := &Note{
		ID:     NewNoteID(),
		Type:   t,
		X:      x - createOffsetX,
		Y:      y - createOffsetY,
		Width:  DefaultWidth(t),
		Height: DefaultHeight(t),
		Color:  DefaultColor,

		Tags:              []string{},
		TodoItems:         []TodoItem{},
		TableData:         [][]string{},
		CalculatorDisplay: "0",
		CalculatorHistory: []string{},
		TimerDuration:     PomodoroSeconds,
		TimerRemaining:    PomodoroSeconds,
		TimerType:         "pomodoro",
		CodeLanguage:      "javascript",
		FolderItems:       []string{},
	}

	switch t {
	case NoteTypeFolder:
		n.Color = FolderColor
	case NoteTypeTodo:
		n.TodoItems = []TodoItem{{ID: time.Now().UnixMilli()}}
	case NoteTypeTable:
		n.TableData = [][]string{
			{"Header 1", "Header 2", "Header 3"},
			{"Row 1, Col 1", "Row 1, Col 2", "Row 1, Col 3"},
			{"Row 2, Col 1", "Row 2, Col 2", "Row 2, Col 3"},
		}
	case NoteTypeDocument:
		n.DocumentContent = "<p><br></p>"
		n.DocumentTitle = "Untitled Document"
		if documentType == "" {
			documentType = "word"
		}
		n.DocumentType = documentType
	}

	// Non-document notes have nothing unsaved to lose.
	n.DocumentSaved = t != NoteTypeDocument

	return n
}

// Clone returns a deep copy of the note. Read paths hand clones across
// goroutine boundaries so no reader ever shares a slice or field with a
// mutator running under the workspace lock.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = cloneStrings(n.Tags)
	c.CalculatorHistory = cloneStrings(n.CalculatorHistory)
	c.FolderItems = cloneStrings(n.FolderItems)
	if n.TodoItems != nil {
		c.TodoItems = make([]TodoItem, len(n.TodoItems))
		copy(c.TodoItems, n.TodoItems)
	}
	if n.TableData != nil {
		c.TableData = make([][]string, len(n.TableData))
		for i, row := range n.TableData {
			c.TableData[i] = cloneStrings(row)
		}
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// ClampSize floors a resize to the minimum note dimensions.
func ClampSize(width, height float64) (float64, float64) {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	return width, height
}

// Repair fills in fields that may be absent from notes written by older
// releases and resets session-only state. Malformed notes are patched, never
// rejected.
func (n *Note) Repair() {
	if n.Type == "" {
		n.Type = NoteTypeText
	}
	if n.Color == "" {
		if n.Type == NoteTypeFolder {
			n.Color = FolderColor
		} else {
			n.Color = DefaultColor
		}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.TodoItems == nil {
		n.TodoItems = []TodoItem{}
	}
	if n.TableData == nil {
		n.TableData = [][]string{}
	}
	if n.CalculatorDisplay == "" {
		n.CalculatorDisplay = "0"
	}
	if n.CalculatorHistory == nil {
		n.CalculatorHistory = []string{}
	}
	if n.FolderItems == nil {
		n.FolderItems = []string{}
	}
	if n.TimerDuration <= 0 {
		n.TimerDuration = PomodoroSeconds
		n.TimerRemaining = PomodoroSeconds
	}
	if n.TimerRemaining < 0 {
		n.TimerRemaining = 0
	}
	if n.TimerRemaining > n.TimerDuration {
		n.TimerRemaining = n.TimerDuration
	}
	if n.TimerType == "" {
		n.TimerType = "pomodoro"
	}
	if n.CodeLanguage == "" {
		n.CodeLanguage = "javascript"
	}

	// Detached timer windows and folder pop-outs never survive a restart.
	n.Detached = false
	n.IsOpenFromFolder = false
}
