package service_test

import (
	"context"
	"testing"
	"time"

	"phasepad/internal/domain"
	"phasepad/internal/service"
)

const reminderLayout = "2006-01-02T15:04:05"

func newReminderNote(t *testing.T, ws *service.WorkspaceService, due time.Time) *domain.Note {
	t.Helper()
	ctx := context.Background()
	n := ws.CreateNote(ctx, "reminder", 0, 0, "")
	if err := ws.SetReminder(ctx, n.ID, due.Format(reminderLayout), "stretch your legs"); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCheck_FiresDueReminderOnce(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	now := time.Now()
	reminders.SetNow(func() time.Time { return now })

	n := newReminderNote(t, ws, now.Add(-30*time.Second))

	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 1 {
		t.Fatalf("expected one reminder:fired, got %d", emitter.Count("reminder:fired"))
	}
	got, _ := ws.Note(n.ID)
	if !got.ReminderTriggered {
		t.Error("reminder not marked triggered")
	}

	// A later check must not fire it again.
	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 1 {
		t.Error("reminder fired twice")
	}
}

func TestCheck_SkipsFutureReminder(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	now := time.Now()
	reminders.SetNow(func() time.Time { return now })

	n := newReminderNote(t, ws, now.Add(10*time.Minute))

	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 0 {
		t.Error("future reminder fired")
	}
	got, _ := ws.Note(n.ID)
	if got.ReminderTriggered {
		t.Error("future reminder marked triggered")
	}
}

func TestCheck_SkipsStaleReminder(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	now := time.Now()
	reminders.SetNow(func() time.Time { return now })

	n := newReminderNote(t, ws, now.Add(-5*time.Minute))

	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 0 {
		t.Error("stale reminder fired")
	}
	got, _ := ws.Note(n.ID)
	if got.ReminderTriggered {
		t.Error("stale reminder must stay untriggered")
	}
}

func TestCheck_StaleWindowBoundary(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	now := time.Now()
	reminders.SetNow(func() time.Time { return now })

	// Exactly two minutes late is already stale.
	newReminderNote(t, ws, now.Add(-2*time.Minute))
	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 0 {
		t.Error("reminder exactly two minutes late must be skipped")
	}

	newReminderNote(t, ws, now.Add(-2*time.Minute+time.Second))
	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 1 {
		t.Errorf("reminder just inside the window must fire, got %d events", emitter.Count("reminder:fired"))
	}
}

func TestCheck_IgnoresBadDateTime(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	n := ws.CreateNote(ctx, "reminder", 0, 0, "")
	if err := ws.SetReminder(ctx, n.ID, "whenever", "nope"); err != nil {
		t.Fatal(err)
	}

	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 0 {
		t.Error("unparseable schedule fired")
	}
}

func TestSetReminder_RearmsTrigger(t *testing.T) {
	ws, emitter, _ := newTestWorkspace(t)
	ctx := context.Background()

	reminders := service.NewReminderService(ws, emitter)
	now := time.Now()
	reminders.SetNow(func() time.Time { return now })

	n := newReminderNote(t, ws, now.Add(-30*time.Second))
	reminders.Check(ctx)

	// Re-scheduling clears the fired state so the new time fires too.
	if err := ws.SetReminder(ctx, n.ID, now.Add(-20*time.Second).Format(reminderLayout), "again"); err != nil {
		t.Fatal(err)
	}
	reminders.Check(ctx)
	if emitter.Count("reminder:fired") != 2 {
		t.Errorf("expected rescheduled reminder to fire, got %d events", emitter.Count("reminder:fired"))
	}
}
