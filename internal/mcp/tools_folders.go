package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerFolderTools() {
	s.mcp.AddTool(mcp.NewTool("add_to_folder",
		mcp.WithDescription("File a note inside a folder note. Moves the note out of any previous folder"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithString("folderId", mcp.Description("Target folder note ID"), mcp.Required()),
	), s.handleAddToFolder)

	s.mcp.AddTool(mcp.NewTool("remove_from_folder",
		mcp.WithDescription("Detach a note from its folder, putting it back on the canvas"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleRemoveFromFolder)

	s.mcp.AddTool(mcp.NewTool("list_folder",
		mcp.WithDescription("List the notes inside a folder"),
		mcp.WithString("folderId", mcp.Description("Folder note ID"), mcp.Required()),
	), s.handleListFolder)
}

func (s *Server) handleAddToFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("noteId", "")
	folderID := req.GetString("folderId", "")
	if err := s.workspace.AddToFolder(ctx, noteID, folderID); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s filed in folder %s", noteID, folderID)), nil
}

func (s *Server) handleRemoveFromFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("noteId", "")
	if err := s.workspace.RemoveFromFolder(ctx, noteID); err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s removed from its folder", noteID)), nil
}

func (s *Server) handleListFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID := req.GetString("folderId", "")
	members, err := s.workspace.FolderMembers(folderID)
	if err != nil {
		return nil, err
	}
	summaries := make([]noteSummary, 0, len(members))
	for _, n := range members {
		summaries = append(summaries, summarize(n, false))
	}
	return jsonResult(summaries)
}
