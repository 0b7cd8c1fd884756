package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"phasepad/internal/domain"
)

func (s *Server) registerNoteTools() {
	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in the active workspace"),
		mcp.WithBoolean("includeArchived", mcp.Description("Also include archived notes")),
	), s.handleListNotes)

	s.mcp.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Get the full payload of a single note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleGetNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note on the canvas. Types: text, file, image, paint, todo, reminder, web, table, location, calculator, timer, folder, code, document"),
		mcp.WithString("type", mcp.Description("Note type (defaults to text)")),
		mcp.WithNumber("x", mcp.Description("Pointer X the note is placed near")),
		mcp.WithNumber("y", mcp.Description("Pointer Y the note is placed near")),
		mcp.WithString("title", mcp.Description("Optional explicit title")),
		mcp.WithString("content", mcp.Description("Optional initial content")),
	), s.handleCreateNote)

	s.mcp.AddTool(mcp.NewTool("update_note_content",
		mcp.WithDescription("Replace a note's text content. For document notes this edits the document body and marks it unsaved"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleUpdateNoteContent)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Update a note's title, color, or tags"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("color", mcp.Description("New background color, e.g. #ffd700")),
		mcp.WithArray("tags", mcp.Description("Replacement tag list")),
	), s.handleUpdateNote)

	s.mcp.AddTool(mcp.NewTool("move_note",
		mcp.WithDescription("Move and/or resize a note. Size is floored to 200x150"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width (optional, keeps current)")),
		mcp.WithNumber("height", mcp.Description("New height (optional, keeps current)")),
	), s.handleMoveNote)

	s.mcp.AddTool(mcp.NewTool("archive_note",
		mcp.WithDescription("Archive a note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleArchiveNote)

	s.mcp.AddTool(mcp.NewTool("restore_note",
		mcp.WithDescription("Restore an archived note to the canvas"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleRestoreNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Permanently delete a note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleDeleteNote)

	s.mcp.AddTool(mcp.NewTool("set_reminder",
		mcp.WithDescription("Set or replace the schedule on a reminder note"),
		mcp.WithString("noteId", mcp.Description("Reminder note ID"), mcp.Required()),
		mcp.WithString("dateTime", mcp.Description("Due time, e.g. 2026-01-15T09:30"), mcp.Required()),
		mcp.WithString("message", mcp.Description("Notification message")),
	), s.handleSetReminder)
}

// noteSummary is the compact note shape returned by list_notes.
type noteSummary struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Tags         []string `json:"tags,omitempty"`
	ParentFolder string   `json:"parentFolder,omitempty"`
	Archived     bool     `json:"archived,omitempty"`
}

func summarize(n *domain.Note, archived bool) noteSummary {
	title := n.Title
	if title == "" {
		title = domain.AutoTitle(n)
	}
	return noteSummary{
		ID:           n.ID,
		Type:         string(n.Type),
		Title:        title,
		X:            n.X,
		Y:            n.Y,
		Width:        n.Width,
		Height:       n.Height,
		Tags:         n.Tags,
		ParentFolder: n.ParentFolder,
		Archived:     archived,
	}
}

func (s *Server) handleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws := s.workspace.Workspace()
	summaries := make([]noteSummary, 0, len(ws.Notes))
	for _, n := range ws.Notes {
		summaries = append(summaries, summarize(n, false))
	}
	if req.GetBool("includeArchived", false) {
		for _, n := range ws.ArchivedNotes {
			summaries = append(summaries, summarize(n, true))
		}
	}
	return jsonResult(summaries)
}

func (s *Server) handleGetNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	n, ok := s.workspace.Note(id)
	if !ok {
		return nil, fmt.Errorf("note %s not found", id)
	}
	return jsonResult(n)
}

func (s *Server) handleCreateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteType := req.GetString("type", string(domain.NoteTypeText))
	x := req.GetFloat("x", 300)
	y := req.GetFloat("y", 300)

	n := s.workspace.CreateNote(ctx, noteType, x, y, "")

	title := req.GetString("title", "")
	content := req.GetString("content", "")
	if title != "" || content != "" {
		if err := s.workspace.Mutate(ctx, n.ID, func(n *domain.Note) {
			if title != "" {
				n.Title = title
			}
			if content != "" {
				if n.Type == domain.NoteTypeDocument {
					n.DocumentContent = content
					n.DocumentSaved = false
				} else {
					n.Content = content
				}
			}
		}); err != nil {
			return nil, err
		}
		n, _ = s.workspace.Note(n.ID)
	}

	s.emitNotesChanged(ctx)
	return jsonResult(summarize(n, false))
}

func (s *Server) handleUpdateNoteContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	content := req.GetString("content", "")

	err := s.workspace.Mutate(ctx, id, func(n *domain.Note) {
		if n.Type == domain.NoteTypeDocument {
			n.DocumentContent = content
			n.DocumentSaved = false
		} else {
			n.Content = content
		}
	})
	if err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s updated", id)), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	args := req.GetArguments()

	err := s.workspace.Mutate(ctx, id, func(n *domain.Note) {
		if title, ok := args["title"].(string); ok {
			n.Title = title
		}
		if color, ok := args["color"].(string); ok && color != "" {
			n.Color = color
		}
		if rawTags, ok := args["tags"].([]any); ok {
			tags := make([]string, 0, len(rawTags))
			for _, t := range rawTags {
				if tag, ok := t.(string); ok {
					tags = append(tags, tag)
				}
			}
			n.Tags = tags
		}
	})
	if err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s updated", id)), nil
}

func (s *Server) handleMoveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	n, ok := s.workspace.Note(id)
	if !ok {
		return nil, fmt.Errorf("note %s not found", id)
	}

	x := req.GetFloat("x", n.X)
	y := req.GetFloat("y", n.Y)
	width := req.GetFloat("width", n.Width)
	height := req.GetFloat("height", n.Height)

	if err := s.workspace.UpdatePosition(ctx, id, x, y, width, height); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s moved to (%.0f, %.0f)", id, x, y)), nil
}

func (s *Server) handleArchiveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	if err := s.workspace.Archive(ctx, id); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s archived", id)), nil
}

func (s *Server) handleRestoreNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	if err := s.workspace.Restore(ctx, id); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s restored", id)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	if err := s.workspace.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s deleted", id)), nil
}

func (s *Server) handleSetReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("noteId", "")
	dateTime := req.GetString("dateTime", "")
	message := req.GetString("message", "")

	if _, err := domain.ParseReminderTime(dateTime); err != nil {
		return nil, fmt.Errorf("parse dateTime: %w", err)
	}
	if err := s.workspace.SetReminder(ctx, id, dateTime, message); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Reminder on %s set for %s", id, dateTime)), nil
}
