package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Reminder checker
// ─────────────────────────────────────────────────────────────

// staleWindow bounds how late a reminder may still fire. A due time this
// far in the past or further (app was closed, machine asleep) is skipped
// rather than surprising the user with an old notification.
const staleWindow = 2 * time.Minute

// ReminderService scans the active workspace once a minute and fires due
// reminders exactly once.
type ReminderService struct {
	ws      *WorkspaceService
	emitter EventEmitter
	cron    *cron.Cron

	// now is swappable for tests.
	now func() time.Time
}

// NewReminderService creates a ReminderService over the workspace service.
func NewReminderService(ws *WorkspaceService, emitter EventEmitter) *ReminderService {
	return &ReminderService{
		ws:      ws,
		emitter: emitter,
		now:     time.Now,
	}
}

// SetNow swaps the clock. Tests use it to stage due and stale reminders.
func (s *ReminderService) SetNow(now func() time.Time) {
	s.now = now
}

// Start runs an immediate check and then one per minute until Stop.
func (s *ReminderService) Start(ctx context.Context) error {
	s.Check(ctx)

	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@every 1m", func() {
		s.Check(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the minute scan.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Check fires every due, unfired reminder in the active workspace. Due
// times older than the stale window are left alone.
func (s *ReminderService) Check(ctx context.Context) {
	now := s.now()

	for _, n := range s.ws.Notes() {
		if n.Type != domain.NoteTypeReminder || n.ReminderTriggered || n.ReminderDateTime == "" {
			continue
		}
		due, err := domain.ParseReminderTime(n.ReminderDateTime)
		if err != nil {
			log.Printf("reminder: bad time %q on %s: %v", n.ReminderDateTime, n.ID, err)
			continue
		}
		if now.Before(due) || now.Sub(due) >= staleWindow {
			continue
		}

		id := n.ID
		message := n.ReminderMessage
		title := domain.AutoTitle(n)
		if n.Title != "" {
			title = n.Title
		}
		if err := s.ws.Mutate(ctx, id, func(n *domain.Note) {
			n.ReminderTriggered = true
		}); err != nil {
			log.Printf("reminder: mark %s triggered: %v", id, err)
			continue
		}
		s.emitter.Emit(ctx, "reminder:fired", map[string]string{
			"noteId":  id,
			"title":   title,
			"message": message,
		})
	}
}
