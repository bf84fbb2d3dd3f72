package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	due := time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local)
	task := Task{
		ID:               "task-1",
		Title:            "Essay draft",
		EstimatedMinutes: 120,
		Due:              &due,
		Priority:         PriorityHigh,
		TimeOfDay:        TimeOfDayMorning,
		CreatedAt:        time.Now(),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	task.Priority = "Urgent"
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	task.Priority = PriorityLow
	task.TimeOfDay = "Night"
	if err := task.Validate(); !errors.Is(err, ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() || PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Fatalf("priority weights out of order: %d %d %d",
			PriorityHigh.Weight(), PriorityMedium.Weight(), PriorityLow.Weight())
	}
	if Priority("Whenever").Weight() != 0 {
		t.Fatalf("unknown priority should weigh zero")
	}
}

func TestTimeOfDayWindows(t *testing.T) {
	cases := []struct {
		pref       TimeOfDay
		start, end int
	}{
		{TimeOfDayAny, 0, 1440},
		{TimeOfDayMorning, 360, 720},
		{TimeOfDayAfternoon, 720, 1020},
		{TimeOfDayEvening, 1020, 1320},
		{TimeOfDay("Dawn"), 0, 1440},
	}
	for _, tc := range cases {
		s, e := tc.pref.Window()
		if s != tc.start || e != tc.end {
			t.Fatalf("%s window = [%d,%d), want [%d,%d)", tc.pref, s, e, tc.start, tc.end)
		}
	}
}

func TestEventValidate(t *testing.T) {
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	ev := Event{ID: "ev-1", Title: "Lecture", Start: &start, End: &end}
	if err := ev.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	ev.End = &start
	if err := ev.Validate(); !errors.Is(err, ErrInvalidEventTimes) {
		t.Fatalf("expected ErrInvalidEventTimes, got %v", err)
	}

	allDay := Event{ID: "ev-2", Title: "Conference", AllDay: true}
	if err := allDay.Validate(); err != nil {
		t.Fatalf("all-day event should not require times: %v", err)
	}
}

func TestEventStartsOn(t *testing.T) {
	start := time.Date(2026, 3, 4, 23, 30, 0, 0, time.Local)
	ev := Event{ID: "ev-1", Title: "Late show", Start: &start}

	if !ev.StartsOn(time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("event should match its own start date")
	}
	if ev.StartsOn(time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("event must not match the following day")
	}
	if (Event{ID: "x", Title: "No start"}).StartsOn(start) {
		t.Fatalf("event without start must never match")
	}
}

func TestPromoteToTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	a := Assignment{ID: "a-1", Title: "Problem set 4", Due: &due}

	task := a.PromoteToTask(now)
	if task.Title != a.Title || task.Priority != PriorityHigh || task.EstimatedMinutes != 60 {
		t.Fatalf("unexpected promoted task: %+v", task)
	}
	if task.Due == nil || !task.Due.Equal(due) {
		t.Fatalf("promoted task should keep the assignment due date")
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("promoted task invalid: %v", err)
	}

	noDue := Assignment{ID: "a-2", Title: "Reading response"}
	fallback := noDue.PromoteToTask(now)
	if fallback.Due == nil || !fallback.Due.Equal(now) {
		t.Fatalf("missing due should fall back to now")
	}
}
