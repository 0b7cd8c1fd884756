package app

import (
	"log"

	"phasepad/internal/config"
	mcpserver "phasepad/internal/mcp"
	"phasepad/internal/service"
	"phasepad/internal/storage"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. It shares the data directory with a running GUI instance: edits land
// in the same JSON files and the GUI's watcher picks them up.
func ServeMCP() {
	cfg := config.Load()
	store, err := storage.New(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	emitter := service.NullEmitter{}
	workspace := service.NewWorkspaceService(store, emitter)
	workspace.Load()
	search := service.NewSearchService(workspace, store)
	documents := service.NewDocumentService(workspace, store, emitter)

	srv := mcpserver.New(mcpserver.Deps{
		Emitter:   emitter,
		Workspace: workspace,
		Search:    search,
		Documents: documents,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := srv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
