package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"phasepad/internal/domain"
	"phasepad/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Workspace Service — authoritative note collections
// ─────────────────────────────────────────────────────────────

// WorkspaceService owns the in-memory note lists for both workspaces and
// funnels every mutation through one place so the folder and archive
// bookkeeping stays consistent. Every mutation persists the full workspace
// files — whole-file overwrite, last writer wins.
//
// The mutex exists because the reminder checker, timer ticks, and the data
// watcher run on their own goroutines; the original UI relied on a single
// event-loop thread instead.
type WorkspaceService struct {
	mu      sync.Mutex
	store   *storage.Store
	emitter EventEmitter

	current string
	data    map[string]*domain.Workspace

	// timerStop tears down a note's countdown loop. Wired by the app layer
	// after the TimerService exists; nil in tests that don't need it.
	timerStop func(noteID string)
}

// NewWorkspaceService creates a WorkspaceService over the given store.
func NewWorkspaceService(store *storage.Store, emitter EventEmitter) *WorkspaceService {
	return &WorkspaceService{
		store:   store,
		emitter: emitter,
		current: domain.WorkspaceHome,
		data: map[string]*domain.Workspace{
			domain.WorkspaceHome: domain.NewWorkspace(),
			domain.WorkspaceWork: domain.NewWorkspace(),
		},
	}
}

// SetTimerStop wires the timer-teardown hook.
func (s *WorkspaceService) SetTimerStop(stop func(noteID string)) {
	s.mu.Lock()
	s.timerStop = stop
	s.mu.Unlock()
}

// Load reads the workspace preference and both workspace files, running the
// one-shot legacy notes.json migration. It never fails: unreadable data
// loads as empty.
func (s *WorkspaceService) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.store.LoadPreference()
	for _, name := range domain.WorkspaceNames {
		s.data[name] = s.store.LoadWorkspace(name)
	}
	if s.store.MigrateLegacy(s.data[domain.WorkspaceHome]) {
		log.Printf("workspace: migrated legacy notes.json into home")
	}
}

// Current returns the active workspace name.
func (s *WorkspaceService) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Workspace returns a deep-copied snapshot of the active workspace. Every
// read accessor hands out clones: the live notes are only ever touched
// under the lock, so readers never race the mutators.
func (s *WorkspaceService) Workspace() *domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.data[s.current]
	return &domain.Workspace{
		Notes:         cloneNotes(ws.Notes),
		ArchivedNotes: cloneNotes(ws.ArchivedNotes),
	}
}

// Notes returns a snapshot of the active workspace's live notes.
func (s *WorkspaceService) Notes() []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.data[s.current].Notes)
}

// ArchivedNotes returns a snapshot of the active workspace's archive.
func (s *WorkspaceService) ArchivedNotes() []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.data[s.current].ArchivedNotes)
}

// Note finds a note by id in the active workspace, checking the live list
// first, then the archive. The returned note is a copy.
func (s *WorkspaceService) Note(id string) (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.findLocked(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// ActiveNote is Note restricted to the live list, skipping the archive.
func (s *WorkspaceService) ActiveNote(id string) (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ := s.activeLocked(id)
	if n == nil {
		return nil, false
	}
	return n.Clone(), true
}

func cloneNotes(notes []*domain.Note) []*domain.Note {
	out := make([]*domain.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

func (s *WorkspaceService) findLocked(id string) (*domain.Note, bool) {
	ws := s.data[s.current]
	for _, n := range ws.Notes {
		if n.ID == id {
			return n, true
		}
	}
	for _, n := range ws.ArchivedNotes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

func (s *WorkspaceService) activeLocked(id string) (*domain.Note, int) {
	ws := s.data[s.current]
	for i, n := range ws.Notes {
		if n.ID == id {
			return n, i
		}
	}
	return nil, -1
}

// saveLocked persists both workspace files. Failures are logged and the
// in-memory state stays authoritative until the next successful save.
func (s *WorkspaceService) saveLocked() {
	for _, name := range domain.WorkspaceNames {
		if err := s.store.SaveWorkspace(name, s.data[name]); err != nil {
			log.Printf("workspace: save %s: %v", name, err)
		}
	}
}

// Save persists both workspaces.
func (s *WorkspaceService) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked()
}

// ── Lifecycle ──────────────────────────────────────────────

// CreateNote builds a note of the given type near (x, y) and adds it to the
// active workspace. documentType picks the document subtype and is ignored
// for other types.
func (s *WorkspaceService) CreateNote(ctx context.Context, noteType string, x, y float64, documentType string) *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := domain.NewNote(domain.NoteType(noteType), x, y, documentType)
	ws := s.data[s.current]
	ws.Notes = append(ws.Notes, n)
	s.saveLocked()
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": n.ID})
	return n.Clone()
}

// InsertNote adds an already-built note to the active workspace. Used when
// reopening a saved document. The workspace keeps its own copy; the caller's
// note stays the caller's.
func (s *WorkspaceService) InsertNote(ctx context.Context, n *domain.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.data[s.current]
	ws.Notes = append(ws.Notes, n.Clone())
	s.saveLocked()
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": n.ID})
}

// Mutate applies fn to a note under the lock and persists the result.
func (s *WorkspaceService) Mutate(ctx context.Context, id string, fn func(*domain.Note)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.findLocked(id)
	if !ok {
		return fmt.Errorf("note %s not found", id)
	}
	fn(n)
	s.saveLocked()
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": n.ID})
	return nil
}

// UpdatePosition moves and resizes a note, flooring the size to the
// 200×150 minimum.
func (s *WorkspaceService) UpdatePosition(ctx context.Context, id string, x, y, width, height float64) error {
	width, height = domain.ClampSize(width, height)
	return s.Mutate(ctx, id, func(n *domain.Note) {
		n.X, n.Y, n.Width, n.Height = x, y, width, height
	})
}

// SetReminder stores a reminder schedule and re-arms the trigger.
func (s *WorkspaceService) SetReminder(ctx context.Context, id, dateTime, message string) error {
	return s.Mutate(ctx, id, func(n *domain.Note) {
		n.ReminderDateTime = dateTime
		n.ReminderMessage = message
		n.ReminderTriggered = false
	})
}

// ResetReminder re-arms an already-fired reminder. This is the only path
// that flips reminderTriggered back to false without changing the schedule.
func (s *WorkspaceService) ResetReminder(ctx context.Context, id string) error {
	return s.Mutate(ctx, id, func(n *domain.Note) {
		n.ReminderTriggered = false
	})
}

// Archive moves a live note into the archive, stamping archivedAt. A
// running timer is stopped and its pop-out window forgotten.
func (s *WorkspaceService) Archive(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, i := s.activeLocked(id)
	if n == nil {
		return fmt.Errorf("note %s not found", id)
	}

	n.ArchivedAt = time.Now().Format(time.RFC3339)
	if n.Type == domain.NoteTypeTimer {
		s.stopTimerLocked(n.ID)
		n.TimerRunning = false
		n.Detached = false
	}

	ws := s.data[s.current]
	ws.Notes = append(ws.Notes[:i], ws.Notes[i+1:]...)
	ws.ArchivedNotes = append(ws.ArchivedNotes, n)
	s.saveLocked()
	s.emitter.Emit(ctx, "note:archived", map[string]string{"noteId": id})
	return nil
}

// Restore moves an archived note back to the live list, clearing
// archivedAt. Timers come back stopped and reset to their full duration.
func (s *WorkspaceService) Restore(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.data[s.current]
	for i, n := range ws.ArchivedNotes {
		if n.ID != id {
			continue
		}
		n.ArchivedAt = ""
		if n.Type == domain.NoteTypeTimer {
			n.TimerRunning = false
			n.Detached = false
			n.TimerRemaining = n.TimerDuration
		}
		ws.ArchivedNotes = append(ws.ArchivedNotes[:i], ws.ArchivedNotes[i+1:]...)
		ws.Notes = append(ws.Notes, n)
		s.saveLocked()
		s.emitter.Emit(ctx, "note:restored", map[string]string{"noteId": id})
		return nil
	}
	return fmt.Errorf("archived note %s not found", id)
}

// Delete removes a note from whichever list holds it. Folder membership is
// cleaned up by scanning every folder, not just the note's recorded
// parentFolder — stale parent references must not leave dangling ids
// behind. The document save-or-discard prompt happens in the app layer
// before this is called.
func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.data[s.current]
	n, ok := s.findLocked(id)
	if !ok {
		return fmt.Errorf("note %s not found", id)
	}

	if n.Type == domain.NoteTypeTimer {
		s.stopTimerLocked(n.ID)
	}

	for _, other := range ws.Notes {
		if other.Type == domain.NoteTypeFolder {
			other.FolderItems = removeID(other.FolderItems, id)
		}
	}

	removed := false
	for i, candidate := range ws.Notes {
		if candidate.ID == id {
			ws.Notes = append(ws.Notes[:i], ws.Notes[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		for i, candidate := range ws.ArchivedNotes {
			if candidate.ID == id {
				ws.ArchivedNotes = append(ws.ArchivedNotes[:i], ws.ArchivedNotes[i+1:]...)
				break
			}
		}
	}

	s.saveLocked()
	s.emitter.Emit(ctx, "note:deleted", map[string]string{"noteId": id})
	return nil
}

func (s *WorkspaceService) stopTimerLocked(id string) {
	if s.timerStop != nil {
		s.timerStop(id)
	}
}

// ── Workspaces ─────────────────────────────────────────────

// SwitchWorkspace makes name the active workspace and persists the
// preference. Both workspaces stay resident; only the active pointer moves.
func (s *WorkspaceService) SwitchWorkspace(ctx context.Context, name string) error {
	if !domain.ValidWorkspace(name) {
		return fmt.Errorf("unknown workspace %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.current {
		return nil
	}
	s.current = name
	s.saveLocked()
	if err := s.store.SavePreference(name); err != nil {
		log.Printf("workspace: save preference: %v", err)
	}
	s.emitter.Emit(ctx, "workspace:switched", map[string]string{"workspace": name})
	return nil
}

// ResetAll wipes every note in both workspaces and persists the empty
// state. Settings are untouched.
func (s *WorkspaceService) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range domain.WorkspaceNames {
		s.data[name] = domain.NewWorkspace()
	}
	s.saveLocked()
	s.emitter.Emit(ctx, "workspace:reset", nil)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
