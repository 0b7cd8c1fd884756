package app

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"phasepad/internal/config"
	"phasepad/internal/service"
	"phasepad/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	cfg   config.Config
	store *storage.Store

	workspace *service.WorkspaceService
	timers    *service.TimerService
	reminders *service.ReminderService
	search    *service.SearchService
	documents *service.DocumentService
	watcher   *service.DataWatcher
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Emit implements service.EventEmitter by forwarding to the Wails event
// bus. Events emitted before startup are dropped.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.cfg = config.Load()

	store, err := storage.New(a.cfg.DataPath)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open data directory: %v", err)
		return
	}
	a.store = store

	a.workspace = service.NewWorkspaceService(store, a)
	a.timers = service.NewTimerService(a.workspace, a)
	a.reminders = service.NewReminderService(a.workspace, a)
	a.search = service.NewSearchService(a.workspace, store)
	a.documents = service.NewDocumentService(a.workspace, store, a)
	a.watcher = service.NewDataWatcher(a.workspace, store, a)
	a.workspace.SetTimerStop(a.timers.Stop)

	a.workspace.Load()
	a.timers.ResumeRunning(ctx)
	if err := a.reminders.Start(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start reminder checker: %v", err)
	}
	if err := a.watcher.Start(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start data watcher: %v", err)
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.reminders != nil {
		a.reminders.Stop()
	}
	if a.timers != nil {
		a.timers.StopAll()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.workspace != nil {
		a.workspace.Save()
	}
}
