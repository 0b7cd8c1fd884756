package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"phasepad/internal/service"
)

func (s *Server) registerWorkspaceTools() {
	s.mcp.AddTool(mcp.NewTool("current_workspace",
		mcp.WithDescription("Get the active workspace name (home or work)"),
	), s.handleCurrentWorkspace)

	s.mcp.AddTool(mcp.NewTool("switch_workspace",
		mcp.WithDescription("Switch the active workspace"),
		mcp.WithString("workspace", mcp.Description("Workspace name: home or work"), mcp.Required()),
	), s.handleSwitchWorkspace)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search notes and saved documents in the active workspace"),
		mcp.WithString("query", mcp.Description("Search text"), mcp.Required()),
		mcp.WithBoolean("titles", mcp.Description("Match titles (all categories on when none set)")),
		mcp.WithBoolean("content", mcp.Description("Match content")),
		mcp.WithBoolean("tags", mcp.Description("Match tags")),
		mcp.WithBoolean("archived", mcp.Description("Include archived notes")),
	), s.handleSearchNotes)
}

func (s *Server) handleCurrentWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.workspace.Current()), nil
}

func (s *Server) handleSwitchWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("workspace", "")
	if err := s.workspace.SwitchWorkspace(ctx, name); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Switched to %s workspace", name)), nil
}

// searchHit flattens a search result for agent consumption.
type searchHit struct {
	NoteID         string `json:"noteId,omitempty"`
	Type           string `json:"type,omitempty"`
	Title          string `json:"title"`
	MatchedContent string `json:"matchedContent,omitempty"`
	Archived       bool   `json:"archived,omitempty"`
	DocumentID     string `json:"documentId,omitempty"`
	DocumentPath   string `json:"documentPath,omitempty"`
}

func (s *Server) handleSearchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	filters := service.Filters{
		Titles:   req.GetBool("titles", false),
		Content:  req.GetBool("content", false),
		Tags:     req.GetBool("tags", false),
		Archived: req.GetBool("archived", false),
	}

	hits := []searchHit{}
	for _, r := range s.search.Search(query, filters) {
		hit := searchHit{
			MatchedContent: r.MatchedContent,
			Archived:       r.Archived,
		}
		if r.IsDocument {
			hit.Title = r.DocumentTitle
			hit.DocumentID = r.DocumentID
			hit.DocumentPath = r.DocumentPath
		} else {
			hit.NoteID = r.Note.ID
			hit.Type = string(r.Note.Type)
			hit.Title = summarize(r.Note, r.Archived).Title
		}
		hits = append(hits, hit)
	}
	return jsonResult(hits)
}
