package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"phasepad/internal/service"
)

// EventEmitter lets tool handlers notify the frontend about changes an
// agent made. The standalone server passes a no-op implementation.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Server exposes the note workspace to AI agents over MCP.
type Server struct {
	mcp     *server.MCPServer
	emitter EventEmitter

	workspace *service.WorkspaceService
	search    *service.SearchService
	documents *service.DocumentService
}

// Deps holds the services the tool handlers operate on, injected from the
// app layer.
type Deps struct {
	Emitter   EventEmitter
	Workspace *service.WorkspaceService
	Search    *service.SearchService
	Documents *service.DocumentService
}

// New creates an MCP server with the full tool set registered.
func New(deps Deps) *Server {
	s := &Server{
		emitter:   deps.Emitter,
		workspace: deps.Workspace,
		search:    deps.Search,
		documents: deps.Documents,
	}

	s.mcp = server.NewMCPServer(
		"phasepad-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerNoteTools()
	s.registerFolderTools()
	s.registerWorkspaceTools()
	s.registerDocumentTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// emitNotesChanged notifies the frontend that an agent changed the canvas.
func (s *Server) emitNotesChanged(ctx context.Context) {
	s.emitter.Emit(ctx, "mcp:notes-changed", map[string]string{
		"workspace": s.workspace.Current(),
	})
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
