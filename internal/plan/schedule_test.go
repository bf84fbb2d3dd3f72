package plan

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var testDay = time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)

func at(hour, minute int) *time.Time {
	t := time.Date(2026, 3, 4, hour, minute, 0, 0, time.Local)
	return &t
}

func TestBuildRejectsInvalidWindow(t *testing.T) {
	if _, err := Build(nil, nil, testDay, Window{StartHour: 22, EndHour: 6}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestBuildMorningEssayScenario(t *testing.T) {
	// One 09:00-10:00 event, one 120-minute morning task, window 6-22.
	events := []model.Event{{ID: "e1", Title: "Meeting", Start: at(9, 0), End: at(10, 0)}}
	tasks := []model.Task{{
		ID: "t1", Title: "Essay", EstimatedMinutes: 120,
		Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayMorning,
	}}

	got, err := Build(tasks, events, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	want := []Block{
		{Title: "Essay", Start: 360, End: 450, Kind: BlockKindTask},
		{Title: "Break", Start: 450, End: 460, Kind: BlockKindBreak},
		{Title: "Essay", Start: 460, End: 490, Kind: BlockKindTask},
		{Title: "Calendar Event", Start: 540, End: 600, Kind: BlockKindEvent},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("timeline = %+v, want %+v", got, want)
	}

	placed := 0
	for _, b := range got {
		if b.Kind == BlockKindTask {
			placed += b.End - b.Start
		}
	}
	if placed != 120 {
		t.Fatalf("placed %d task minutes, want 120", placed)
	}
}

func TestBuildPriorityBreaksDueTies(t *testing.T) {
	due := time.Date(2026, 3, 4, 18, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "low", Title: "Low", EstimatedMinutes: 60, Due: &due, Priority: model.PriorityLow, TimeOfDay: model.TimeOfDayAny},
		{ID: "high", Title: "High", EstimatedMinutes: 60, Due: &due, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny},
	}

	got, err := Build(tasks, nil, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	firstStart := func(title string) int {
		for _, b := range got {
			if b.Kind == BlockKindTask && b.Title == title {
				return b.Start
			}
		}
		t.Fatalf("no block placed for %q", title)
		return 0
	}
	if firstStart("High") > firstStart("Low") {
		t.Fatalf("high-priority task placed after low-priority one: %+v", got)
	}
}

func TestBuildEarlierDueBeatsPriority(t *testing.T) {
	early := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	late := time.Date(2026, 3, 6, 12, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "urgentLow", Title: "Urgent", EstimatedMinutes: 30, Due: &early, Priority: model.PriorityLow, TimeOfDay: model.TimeOfDayAny},
		{ID: "laterHigh", Title: "Later", EstimatedMinutes: 30, Due: &late, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny},
		{ID: "noDue", Title: "Someday", EstimatedMinutes: 30, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny},
	}

	got, err := Build(tasks, nil, testDay, Window{StartHour: 6, EndHour: 8})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(got) == 0 || got[0].Title != "Urgent" {
		t.Fatalf("earliest-due task should be placed first: %+v", got)
	}
}

func TestBuildAllDayEventLeavesNoRoom(t *testing.T) {
	events := []model.Event{{ID: "conf", Title: "Conference", AllDay: true, Start: at(0, 0)}}
	tasks := []model.Task{{ID: "t1", Title: "Anything", EstimatedMinutes: 60, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny}}

	got, err := Build(tasks, events, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, b := range got {
		if b.Kind != BlockKindEvent {
			t.Fatalf("expected only event blocks under an all-day event, got %+v", got)
		}
	}
}

func TestBuildNeverOverlaps(t *testing.T) {
	events := []model.Event{
		{ID: "e1", Title: "A", Start: at(9, 0), End: at(10, 30)},
		{ID: "e2", Title: "B", Start: at(10, 0), End: at(11, 0)}, // overlaps A
		{ID: "e3", Title: "C", Start: at(14, 0), End: at(15, 0)},
	}
	due := time.Date(2026, 3, 4, 20, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "t1", Title: "Deep work", EstimatedMinutes: 240, Due: &due, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayMorning},
		{ID: "t2", Title: "Email", EstimatedMinutes: 45, Priority: model.PriorityLow, TimeOfDay: model.TimeOfDayAfternoon},
		{ID: "t3", Title: "Reading", EstimatedMinutes: 180, Priority: model.PriorityMedium, TimeOfDay: model.TimeOfDayEvening},
	}

	got, err := Build(tasks, events, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Fatalf("blocks overlap: %+v then %+v", got[i-1], got[i])
		}
	}
	// Task and break blocks must stay clear of the merged busy spans.
	busy := Merge(Clamp(DayBusy(testDay, events, Window{StartHour: 6, EndHour: 22}), 360, 1320))
	for _, b := range got {
		if b.Kind == BlockKindEvent {
			continue
		}
		for _, sp := range busy {
			if b.Start < sp.End && b.End > sp.Start {
				t.Fatalf("block %+v intersects busy span %v", b, sp)
			}
		}
	}
}

func TestBuildCapacityConservation(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Title: "Huge", EstimatedMinutes: 999, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny},
		{ID: "t2", Title: "Tiny", EstimatedMinutes: 5, Priority: model.PriorityLow, TimeOfDay: model.TimeOfDayAny},
	}
	got, err := Build(tasks, nil, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	minutes := map[string]int{}
	for _, b := range got {
		if b.Kind == BlockKindTask {
			minutes[b.Title] += b.End - b.Start
		}
	}
	if minutes["Huge"] != MaxTaskMinutes {
		t.Fatalf("oversized estimate should clamp to %d, placed %d", MaxTaskMinutes, minutes["Huge"])
	}
	if minutes["Tiny"] != MinTaskMinutes {
		t.Fatalf("undersized estimate should clamp to %d, placed %d", MinTaskMinutes, minutes["Tiny"])
	}
}

func TestBuildSubFifteenFinalChunk(t *testing.T) {
	// 105 free morning minutes before a wall of events: a 100-minute
	// task carves 90, pays a 10-minute break, and the final 5-minute
	// sliver is still placed. The per-chunk minimum is intentionally
	// not enforced; only the initial duration floor is.
	events := []model.Event{{ID: "wall", Title: "Wall", Start: at(7, 45), End: at(22, 0)}}
	tasks := []model.Task{{ID: "t1", Title: "Draft", EstimatedMinutes: 100, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny}}

	got, err := Build(tasks, events, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []Block{
		{Title: "Draft", Start: 360, End: 450, Kind: BlockKindTask},
		{Title: "Break", Start: 450, End: 460, Kind: BlockKindBreak},
		{Title: "Draft", Start: 460, End: 465, Kind: BlockKindTask},
		{Title: "Calendar Event", Start: 465, End: 1320, Kind: BlockKindEvent},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("timeline = %+v, want %+v", got, want)
	}
}

func TestBuildCompletedTasksExcluded(t *testing.T) {
	tasks := []model.Task{{ID: "t1", Title: "Done already", EstimatedMinutes: 60, Completed: true, Priority: model.PriorityHigh, TimeOfDay: model.TimeOfDayAny}}
	got, err := Build(tasks, nil, testDay, Window{StartHour: 6, EndHour: 22})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("completed task must not be scheduled: %+v", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	events := []model.Event{{ID: "e1", Title: "Standup", Start: at(9, 0), End: at(9, 30)}}
	due := time.Date(2026, 3, 4, 18, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "t1", Title: "One", EstimatedMinutes: 75, Due: &due, Priority: model.PriorityMedium, TimeOfDay: model.TimeOfDayMorning},
		{ID: "t2", Title: "Two", EstimatedMinutes: 75, Due: &due, Priority: model.PriorityMedium, TimeOfDay: model.TimeOfDayMorning},
	}
	w := Window{StartHour: 6, EndHour: 22}

	a, err := Build(tasks, events, testDay, w)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b, err := Build(tasks, events, testDay, w)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different timelines:\n%+v\n%+v", a, b)
	}
	// Same-urgency tasks keep insertion order.
	var first string
	for _, blk := range a {
		if blk.Kind == BlockKindTask {
			first = blk.Title
			break
		}
	}
	if first != "One" {
		t.Fatalf("stable ordering violated, first task block is %q", first)
	}
}
