package domain

// Workspace groups the active and archived notes persisted together in one
// <name>-notes.json file.
type Workspace struct {
	Notes         []*Note `json:"notes"`
	ArchivedNotes []*Note `json:"archivedNotes"`
}

const (
	WorkspaceHome = "home"
	WorkspaceWork = "work"
)

// WorkspaceNames lists the fixed workspaces, in display order.
var WorkspaceNames = []string{WorkspaceHome, WorkspaceWork}

// ValidWorkspace reports whether name is a known workspace.
func ValidWorkspace(name string) bool {
	return name == WorkspaceHome || name == WorkspaceWork
}

// NewWorkspace returns an empty workspace with non-nil lists.
func NewWorkspace() *Workspace {
	return &Workspace{Notes: []*Note{}, ArchivedNotes: []*Note{}}
}

// Repair patches every note and guarantees non-nil lists.
func (w *Workspace) Repair() {
	if w.Notes == nil {
		w.Notes = []*Note{}
	}
	if w.ArchivedNotes == nil {
		w.ArchivedNotes = []*Note{}
	}
	for _, n := range w.Notes {
		n.Repair()
	}
	for _, n := range w.ArchivedNotes {
		n.Repair()
	}
}

// Empty reports whether the workspace holds no notes at all.
func (w *Workspace) Empty() bool {
	return len(w.Notes) == 0 && len(w.ArchivedNotes) == 0
}
