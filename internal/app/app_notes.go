package app

import (
	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Note bindings
// ─────────────────────────────────────────────────────────────

// GetNotes returns the active workspace's live notes.
func (a *App) GetNotes() []*domain.Note {
	return a.workspace.Notes()
}

// GetArchivedNotes returns the active workspace's archived notes.
func (a *App) GetArchivedNotes() []*domain.Note {
	return a.workspace.ArchivedNotes()
}

// GetNote returns a single note by id.
func (a *App) GetNote(id string) (*domain.Note, error) {
	n, ok := a.workspace.Note(id)
	if !ok {
		return nil, notFound(id)
	}
	return n, nil
}

// GetNoteDisplayTitle returns the note's explicit title, or one derived
// from its content.
func (a *App) GetNoteDisplayTitle(id string) (string, error) {
	n, ok := a.workspace.Note(id)
	if !ok {
		return "", notFound(id)
	}
	if n.Title != "" {
		return n.Title, nil
	}
	return domain.AutoTitle(n), nil
}

// CreateNote creates a note of the given type near the pointer position.
// documentType selects the document subtype and is ignored otherwise.
func (a *App) CreateNote(noteType string, x, y float64, documentType string) *domain.Note {
	return a.workspace.CreateNote(a.ctx, noteType, x, y, documentType)
}

// UpdateNotePosition moves and resizes a note.
func (a *App) UpdateNotePosition(id string, x, y, width, height float64) error {
	return a.workspace.UpdatePosition(a.ctx, id, x, y, width, height)
}

// UpdateNoteContent replaces a note's content. Document notes get their
// body updated and are marked unsaved.
func (a *App) UpdateNoteContent(id, content string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		if n.Type == domain.NoteTypeDocument {
			n.DocumentContent = content
			n.DocumentSaved = false
		} else {
			n.Content = content
		}
	})
}

// UpdateNoteTitle sets a note's explicit title. Document notes track the
// title change as an unsaved edit.
func (a *App) UpdateNoteTitle(id, title string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.Title = title
		if n.Type == domain.NoteTypeDocument {
			n.DocumentTitle = title
			n.DocumentSaved = false
		}
	})
}

// UpdateNoteColor sets a note's background color.
func (a *App) UpdateNoteColor(id, color string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.Color = color
	})
}

// UpdateNoteTags replaces a note's tag list.
func (a *App) UpdateNoteTags(id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.Tags = tags
	})
}

// SetNoteCollapsed collapses or expands a note to its title bar.
func (a *App) SetNoteCollapsed(id string, collapsed bool) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.Collapsed = collapsed
	})
}

// UpdateTodoItems replaces a todo note's checklist.
func (a *App) UpdateTodoItems(id string, items []domain.TodoItem) error {
	if items == nil {
		items = []domain.TodoItem{}
	}
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.TodoItems = items
	})
}

// UpdateTableData replaces a table note's cell grid.
func (a *App) UpdateTableData(id string, data [][]string) error {
	if data == nil {
		data = [][]string{}
	}
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.TableData = data
	})
}

// UpdatePaintData stores a paint note's canvas as a data URL.
func (a *App) UpdatePaintData(id, paintData string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.PaintData = paintData
	})
}

// UpdateCodeNote stores a code note's source and language.
func (a *App) UpdateCodeNote(id, content, language string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.CodeContent = content
		n.CodeLanguage = language
	})
}

// UpdateCalculator stores a calculator note's display and history.
func (a *App) UpdateCalculator(id, display string, history []string) error {
	if history == nil {
		history = []string{}
	}
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.CalculatorDisplay = display
		n.CalculatorHistory = history
	})
}

// UpdateWebNote stores a web note's URL and fetched page metadata.
func (a *App) UpdateWebNote(id, url, title, description string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.WebURL = url
		n.WebTitle = title
		n.WebDescription = description
	})
}

// UpdateLocation stores a location note's place fields.
func (a *App) UpdateLocation(id, name, address, notes string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.LocationName = name
		n.LocationAddress = address
		n.LocationNotes = notes
	})
}

// SetNoteFilePath attaches a file to a file note.
func (a *App) SetNoteFilePath(id, path string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.FilePath = path
	})
}

// SetNoteImage attaches an image to an image note.
func (a *App) SetNoteImage(id, path string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.ImagePath = path
	})
}

// SetNoteOCRText stores extracted text alongside the image it came from.
func (a *App) SetNoteOCRText(id, imagePath, text string) error {
	return a.workspace.Mutate(a.ctx, id, func(n *domain.Note) {
		n.OCRImagePath = imagePath
		n.OCRExtractedText = text
	})
}

// ── Lifecycle ──────────────────────────────────────────────

// ArchiveNote moves a note to the archive.
func (a *App) ArchiveNote(id string) error {
	return a.workspace.Archive(a.ctx, id)
}

// RestoreNote moves an archived note back to the canvas.
func (a *App) RestoreNote(id string) error {
	return a.workspace.Restore(a.ctx, id)
}

// DeleteNote permanently removes a note. The confirm-delete and unsaved-
// document prompts happen in the frontend before this is called.
func (a *App) DeleteNote(id string) error {
	return a.workspace.Delete(a.ctx, id)
}

// ── Reminders ──────────────────────────────────────────────

// SetReminder sets or replaces a reminder note's schedule.
func (a *App) SetReminder(id, dateTime, message string) error {
	return a.workspace.SetReminder(a.ctx, id, dateTime, message)
}

// ResetReminder re-arms a fired reminder.
func (a *App) ResetReminder(id string) error {
	return a.workspace.ResetReminder(a.ctx, id)
}

// ── Folders ────────────────────────────────────────────────

// AddNoteToFolder files a note inside a folder.
func (a *App) AddNoteToFolder(noteID, folderID string) error {
	return a.workspace.AddToFolder(a.ctx, noteID, folderID)
}

// RemoveNoteFromFolder detaches a note from its folder.
func (a *App) RemoveNoteFromFolder(noteID string) error {
	return a.workspace.RemoveFromFolder(a.ctx, noteID)
}

// HandleNoteDrop resolves a drag-and-drop onto a folder or empty canvas.
func (a *App) HandleNoteDrop(noteID, targetFolderID string) error {
	return a.workspace.HandleDrop(a.ctx, noteID, targetFolderID)
}

// OpenNoteFromFolder temporarily shows a filed note on the canvas.
func (a *App) OpenNoteFromFolder(noteID string) error {
	return a.workspace.OpenFromFolder(a.ctx, noteID)
}

// HideNoteFromFolder puts a temporarily opened note back in its folder.
func (a *App) HideNoteFromFolder(noteID string) error {
	return a.workspace.HideFromFolder(a.ctx, noteID)
}

// GetFolderContents lists the notes filed in a folder.
func (a *App) GetFolderContents(folderID string) ([]*domain.Note, error) {
	return a.workspace.FolderMembers(folderID)
}

// ── Timers ─────────────────────────────────────────────────

// ToggleTimer starts or pauses a timer note's countdown.
func (a *App) ToggleTimer(id string) error {
	return a.timers.Toggle(a.ctx, id)
}

// ResetTimer stops a timer and reloads its full duration.
func (a *App) ResetTimer(id string) error {
	return a.timers.Reset(a.ctx, id)
}

// SetTimerPomodoro switches a timer to the 25-minute preset.
func (a *App) SetTimerPomodoro(id string) error {
	return a.timers.SetPomodoro(a.ctx, id)
}

// SetTimerCustom switches a timer to a custom duration in minutes.
func (a *App) SetTimerCustom(id string, minutes int) error {
	return a.timers.SetCustom(a.ctx, id, minutes)
}

// SetTimerDetached tracks whether a timer is popped out into its own
// window.
func (a *App) SetTimerDetached(id string, detached bool) error {
	return a.timers.SetDetached(a.ctx, id, detached)
}
