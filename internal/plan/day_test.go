package plan

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

func TestWindowValidate(t *testing.T) {
	if err := (Window{StartHour: 6, EndHour: 22}).Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	bad := []Window{
		{StartHour: -1, EndHour: 10},
		{StartHour: 10, EndHour: 25},
		{StartHour: 12, EndHour: 12},
		{StartHour: 20, EndHour: 8},
	}
	for _, w := range bad {
		if err := w.Validate(); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("window %+v: expected ErrInvalidWindow, got %v", w, err)
		}
	}
}

func TestDayBusyTimedEvents(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	s1 := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	e1 := time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	s2 := time.Date(2026, 3, 5, 9, 0, 0, 0, time.Local) // different day
	e2 := time.Date(2026, 3, 5, 10, 0, 0, 0, time.Local)
	events := []model.Event{
		{ID: "a", Title: "Standup", Start: timePtr(s1), End: timePtr(e1)},
		{ID: "b", Title: "Tomorrow", Start: timePtr(s2), End: timePtr(e2)},
		{ID: "c", Title: "No times"},
	}

	got := DayBusy(day, events, Window{StartHour: 6, EndHour: 22})
	want := []Span{{Start: 540, End: 600}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("busy = %v, want %v", got, want)
	}
}

func TestDayBusyAllDay(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	events := []model.Event{{ID: "conf", Title: "Conference", AllDay: true, Start: timePtr(start)}}

	w := Window{StartHour: 6, EndHour: 22}
	got := DayBusy(day, events, w)
	want := []Span{{Start: 360, End: 1320}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("all-day busy = %v, want %v", got, want)
	}

	// Same event does not block the next day.
	if got := DayBusy(day.AddDate(0, 0, 1), events, w); len(got) != 0 {
		t.Fatalf("dated all-day event leaked onto the next day: %v", got)
	}
}

func TestDayBusyWeeklyTemplate(t *testing.T) {
	// Template: Wednesday 09:00-10:15, repeating weekly.
	tplStart := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	tplEnd := time.Date(2026, 3, 4, 10, 15, 0, 0, time.Local)
	events := []model.Event{{ID: "lec", Title: "Lecture", Start: timePtr(tplStart), End: timePtr(tplEnd), RepeatWeekly: true}}
	w := Window{StartHour: 0, EndHour: 24}

	nextWed := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	got := DayBusy(nextWed, events, w)
	want := []Span{{Start: 540, End: 615}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("weekly busy on matching weekday = %v, want %v", got, want)
	}

	thursday := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	if got := DayBusy(thursday, events, w); len(got) != 0 {
		t.Fatalf("weekly event appeared on the wrong weekday: %v", got)
	}
}
