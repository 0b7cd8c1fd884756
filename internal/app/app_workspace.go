package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"phasepad/internal/config"
	"phasepad/internal/domain"
	"phasepad/internal/service"
	"phasepad/internal/storage"
)

func notFound(id string) error {
	return fmt.Errorf("note %s not found", id)
}

// ─────────────────────────────────────────────────────────────
// Workspace, search, and settings bindings
// ─────────────────────────────────────────────────────────────

// GetWorkspaces returns the available workspace names.
func (a *App) GetWorkspaces() []string {
	return domain.WorkspaceNames
}

// GetCurrentWorkspace returns the active workspace name.
func (a *App) GetCurrentWorkspace() string {
	return a.workspace.Current()
}

// SwitchWorkspace changes the active workspace.
func (a *App) SwitchWorkspace(name string) error {
	return a.workspace.SwitchWorkspace(a.ctx, name)
}

// SearchNotes matches notes and saved documents against a query.
func (a *App) SearchNotes(query string, filters service.Filters) []service.Result {
	return a.search.Search(query, filters)
}

// ResetAllData wipes every note in both workspaces. The confirmation
// prompt happens in the frontend.
func (a *App) ResetAllData() {
	a.workspace.ResetAll(a.ctx)
}

// ── Settings ───────────────────────────────────────────────

// GetConfig returns the current configuration.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// SaveConfig persists configuration changes. The data path is managed
// through ChangeDataPath and ignored here.
func (a *App) SaveConfig(cfg config.Config) error {
	cfg.DataPath = a.cfg.DataPath
	if err := config.Save(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.Emit(a.ctx, "config:changed", cfg)
	return nil
}

// ── Data directory ─────────────────────────────────────────

// DataPathChoice describes a directory the user picked for relocation,
// so the frontend can ask whether to adopt its data or move the current
// data in.
type DataPathChoice struct {
	Path    string `json:"path"`
	HasData bool   `json:"hasData"`
}

// SelectDataDirectory opens a directory picker for the data location.
// An empty path means the user cancelled.
func (a *App) SelectDataDirectory() (DataPathChoice, error) {
	path, err := wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Choose Data Location",
		DefaultDirectory: a.store.DataPath(),
	})
	if err != nil {
		return DataPathChoice{}, err
	}
	if path == "" {
		return DataPathChoice{}, nil
	}
	return DataPathChoice{Path: path, HasData: storage.HasWorkspaceData(path)}, nil
}

// ChangeDataPath re-roots the data directory. With useExisting the app
// adopts whatever notes the directory already holds; otherwise the
// current data files are copied in first.
func (a *App) ChangeDataPath(path string, useExisting bool) error {
	if path == "" || path == a.store.DataPath() {
		return nil
	}

	if useExisting {
		if err := a.store.SetDataPath(path); err != nil {
			return err
		}
	} else {
		if err := a.store.MoveData(path); err != nil {
			return err
		}
	}

	a.cfg.DataPath = path
	if err := config.Save(a.cfg); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Failed to save config: %v", err)
	}

	a.workspace.Load()
	if err := a.watcher.Restart(a.ctx); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Failed to restart data watcher: %v", err)
	}
	a.Emit(a.ctx, "data:changed", nil)
	return nil
}

// ── File pickers ───────────────────────────────────────────

// SelectFile opens a file picker for file notes. Empty means cancelled.
func (a *App) SelectFile() (string, error) {
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Attach File",
	})
}

// SelectImage opens an image picker for image notes.
func (a *App) SelectImage() (string, error) {
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Choose Image",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Images", Pattern: "*.png;*.jpg;*.jpeg;*.gif;*.webp;*.bmp"},
		},
	})
}
