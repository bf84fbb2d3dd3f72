package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alert{ID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{ID: "alert", At: at}); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{ID: "bad"}); !errors.Is(err, ErrInvalidFireTime) {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestScheduleRejectsBadRepeatRule(t *testing.T) {
	engine := NewEngine(1)
	err := engine.Schedule(Alert{ID: "bad", At: time.Now().Add(time.Hour), Repeat: "not a cron expr"})
	if err == nil {
		t.Fatalf("expected repeat rule parse error")
	}
}

func TestRepeatingAlertIsRequeued(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	err := engine.Schedule(Alert{
		ID:     "daily",
		At:     time.Now().Add(20 * time.Millisecond),
		Repeat: "0 8 * * *",
	})
	if err != nil {
		t.Fatalf("schedule repeating: %v", err)
	}

	fired := waitAlert(t, engine.C(), time.Second)
	if fired.ID != "daily" {
		t.Fatalf("unexpected alert %s", fired.ID)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected repeating alert back in queue, pending=%d", engine.Pending())
	}
}

func TestDropRemovesPendingAlerts(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(time.Hour)
	if err := engine.Schedule(Alert{ID: "keep", At: at}); err != nil {
		t.Fatalf("schedule keep: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "gone", At: at}); err != nil {
		t.Fatalf("schedule gone: %v", err)
	}

	engine.Drop("gone")
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending after drop, got %d", engine.Pending())
	}
}

func TestDropMatchingClearsEveryOccurrence(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(time.Hour)
	for _, id := range []string{"lec@2026-03-04T09:00:00Z", "lec@2026-03-11T09:00:00Z", "lecture-notes"} {
		if err := engine.Schedule(Alert{ID: id, At: at}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}

	engine.DropMatching("lec")
	if engine.Pending() != 1 {
		t.Fatalf("expected only the unrelated alert, got %d pending", engine.Pending())
	}
}

func TestEventAlertsFireBeforeStart(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)
	start := now.Add(2 * time.Hour)
	end := start.Add(time.Hour)
	events := []model.Event{
		{ID: "lec", Title: "Lecture", Location: "Hall B", Start: &start, End: &end},
	}

	alerts := EventAlerts(events, now, now.Add(24*time.Hour))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if got, want := alerts[0].At, start.Add(-LeadTime); !got.Equal(want) {
		t.Fatalf("alert at %v, want %v", got, want)
	}
	if alerts[0].Title != "Lecture" {
		t.Fatalf("unexpected title %q", alerts[0].Title)
	}
}

func TestEventAlertsExpandWeeklyTemplates(t *testing.T) {
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	start := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	events := []model.Event{
		{ID: "sem", Title: "Seminar", Start: &start, End: &end, RepeatWeekly: true},
	}

	alerts := EventAlerts(events, now, now.AddDate(0, 0, 20))
	if len(alerts) != 3 {
		t.Fatalf("expected 3 weekly alerts, got %d", len(alerts))
	}
	seen := map[string]bool{}
	for _, a := range alerts {
		if seen[a.ID] {
			t.Fatalf("duplicate alert id %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestEventAlertsSkipPastAndDatelessEvents(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	pastEnd := past.Add(time.Hour)
	events := []model.Event{
		{ID: "past", Title: "Done", Start: &past, End: &pastEnd},
		{ID: "allday", Title: "Holiday", AllDay: true},
	}

	if alerts := EventAlerts(events, now, now.Add(24*time.Hour)); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
