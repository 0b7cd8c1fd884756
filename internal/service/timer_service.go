package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Timer countdowns
// ─────────────────────────────────────────────────────────────

// Custom timer durations are clamped to 1..999 minutes.
const (
	minTimerMinutes = 1
	maxTimerMinutes = 999
)

// TimerService drives one countdown goroutine per running timer note. The
// remaining seconds live on the note itself, so a countdown survives
// restarts: a timer saved as running resumes from its persisted remainder.
type TimerService struct {
	mu      sync.Mutex
	ws      *WorkspaceService
	emitter EventEmitter
	ticking map[string]chan struct{}
}

// NewTimerService creates a TimerService over the workspace service.
func NewTimerService(ws *WorkspaceService, emitter EventEmitter) *TimerService {
	return &TimerService{
		ws:      ws,
		emitter: emitter,
		ticking: make(map[string]chan struct{}),
	}
}

// ResumeRunning restarts countdown loops for timers persisted as running.
func (s *TimerService) ResumeRunning(ctx context.Context) {
	for _, n := range s.ws.Notes() {
		if n.Type == domain.NoteTypeTimer && n.TimerRunning && n.TimerRemaining > 0 {
			s.startLoop(ctx, n.ID)
		}
	}
}

// Toggle starts a paused timer or pauses a running one. Only live notes
// qualify; an archived timer stays stopped until it is restored.
func (s *TimerService) Toggle(ctx context.Context, id string) error {
	n, ok := s.ws.ActiveNote(id)
	if !ok || n.Type != domain.NoteTypeTimer {
		return fmt.Errorf("note %s is not an active timer", id)
	}

	if n.TimerRunning {
		s.Stop(id)
		return s.ws.Mutate(ctx, id, func(n *domain.Note) {
			n.TimerRunning = false
		})
	}
	if n.TimerRemaining <= 0 {
		return fmt.Errorf("timer %s has no time remaining", id)
	}
	if err := s.ws.Mutate(ctx, id, func(n *domain.Note) {
		n.TimerRunning = true
	}); err != nil {
		return err
	}
	s.startLoop(ctx, id)
	return nil
}

// Reset stops a timer and reloads its full duration.
func (s *TimerService) Reset(ctx context.Context, id string) error {
	s.Stop(id)
	return s.ws.Mutate(ctx, id, func(n *domain.Note) {
		n.TimerRunning = false
		n.TimerRemaining = n.TimerDuration
	})
}

// SetPomodoro switches a stopped timer to the 25-minute pomodoro preset.
func (s *TimerService) SetPomodoro(ctx context.Context, id string) error {
	s.Stop(id)
	return s.ws.Mutate(ctx, id, func(n *domain.Note) {
		n.TimerType = "pomodoro"
		n.TimerDuration = domain.PomodoroSeconds
		n.TimerRemaining = domain.PomodoroSeconds
		n.TimerRunning = false
	})
}

// SetCustom switches a stopped timer to a custom duration in minutes,
// clamped to 1..999.
func (s *TimerService) SetCustom(ctx context.Context, id string, minutes int) error {
	if minutes < minTimerMinutes {
		minutes = minTimerMinutes
	}
	if minutes > maxTimerMinutes {
		minutes = maxTimerMinutes
	}
	s.Stop(id)
	return s.ws.Mutate(ctx, id, func(n *domain.Note) {
		n.TimerType = "custom"
		n.TimerDuration = minutes * 60
		n.TimerRemaining = minutes * 60
		n.TimerRunning = false
	})
}

// SetDetached tracks whether the timer is popped out into its own window.
// The flag is session state and resets on restart.
func (s *TimerService) SetDetached(ctx context.Context, id string, detached bool) error {
	return s.ws.Mutate(ctx, id, func(n *domain.Note) {
		n.Detached = detached
	})
}

// Stop halts a timer's countdown loop without touching its remaining time.
func (s *TimerService) Stop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.ticking[id]; ok {
		close(stop)
		delete(s.ticking, id)
	}
}

// StopAll halts every countdown loop. Called on shutdown.
func (s *TimerService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.ticking {
		close(stop)
		delete(s.ticking, id)
	}
}

func (s *TimerService) startLoop(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.ticking[id]; running {
		return
	}
	stop := make(chan struct{})
	s.ticking[id] = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if done := s.Tick(ctx, id); done {
					s.Stop(id)
					return
				}
			}
		}
	}()
}

// Tick advances a running timer by one second and reports whether its
// countdown loop should stop. Exported so tests can drive time directly.
func (s *TimerService) Tick(ctx context.Context, id string) bool {
	stale := false
	completed := false
	remaining := 0
	err := s.ws.Mutate(ctx, id, func(n *domain.Note) {
		if !n.TimerRunning || n.TimerRemaining <= 0 {
			stale = true
			return
		}
		n.TimerRemaining--
		remaining = n.TimerRemaining
		if n.TimerRemaining == 0 {
			n.TimerRunning = false
			completed = true
		}
	})
	if err != nil {
		log.Printf("timer: tick %s: %v", id, err)
		return true
	}
	if stale {
		return true
	}

	s.emitter.Emit(ctx, "timer:tick", map[string]any{"noteId": id, "remaining": remaining})
	if completed {
		s.emitter.Emit(ctx, "timer:completed", map[string]string{"noteId": id})
	}
	return completed
}
