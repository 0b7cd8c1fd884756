package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the saved-documents catalog"),
	), s.handleListDocuments)

	s.mcp.AddTool(mcp.NewTool("save_document",
		mcp.WithDescription("Save a document note to its file and the catalog"),
		mcp.WithString("noteId", mcp.Description("Document note ID"), mcp.Required()),
	), s.handleSaveDocument)

	s.mcp.AddTool(mcp.NewTool("open_document",
		mcp.WithDescription("Open a saved document as a fresh note on the canvas"),
		mcp.WithString("documentId", mcp.Description("Catalog document ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Placement X (defaults to canvas center)")),
		mcp.WithNumber("y", mcp.Description("Placement Y (defaults to canvas center)")),
	), s.handleOpenDocument)
}

func (s *Server) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.documents.List())
}

func (s *Server) handleSaveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("noteId", "")
	doc, err := s.documents.SaveNote(ctx, noteID, "")
	if err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Document saved to %s", doc.FilePath)), nil
}

func (s *Server) handleOpenDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID := req.GetString("documentId", "")
	x := req.GetFloat("x", 960)
	y := req.GetFloat("y", 540)

	n, err := s.documents.Open(ctx, documentID, x, y)
	if err != nil {
		return nil, err
	}
	s.emitNotesChanged(ctx)
	return jsonResult(summarize(n, false))
}
