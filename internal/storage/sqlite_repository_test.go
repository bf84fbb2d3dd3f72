package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "plannerd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := localTime(t, "2026-03-02T12:00:00")
	due := localTime(t, "2026-03-06T23:59:00")

	task := model.Task{
		ID:               "task-1",
		Title:            "Write essay",
		EstimatedMinutes: 120,
		Due:              &due,
		Priority:         model.PriorityHigh,
		TimeOfDay:        model.TimeOfDayMorning,
		Category:         "Academics",
		Notes:            "outline first",
		CreatedAt:        created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Priority != model.PriorityHigh || got.TimeOfDay != model.TimeOfDayMorning {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if got.Due == nil || !got.Due.Equal(due) {
		t.Fatalf("due roundtrip: got %v want %v", got.Due, due)
	}
	if got.Due.Hour() != 23 || got.Due.Minute() != 59 {
		t.Fatalf("due must come back in local wall-clock, got %v", got.Due)
	}

	task.Title = "Write essay v2"
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	done := true
	completed, err := repo.ListTasks(ctx, TaskListFilter{Completed: &done})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID || completed[0].Title != "Write essay v2" {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	_, err = repo.GetTask(ctx, task.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestEventCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := localTime(t, "2026-03-02T08:00:00")
	start := localTime(t, "2026-03-04T09:00:00")
	end := localTime(t, "2026-03-04T10:15:00")

	ev := model.Event{
		ID:           "ev-1",
		Title:        "Algorithms",
		Location:     "Hall 3",
		Start:        &start,
		End:          &end,
		RepeatWeekly: true,
		CreatedAt:    created,
	}
	if err := repo.CreateEvent(ctx, ev); err != nil {
		t.Fatalf("create event: %v", err)
	}
	holiday := model.Event{
		ID:        "ev-2",
		Title:     "Reading Day",
		AllDay:    true,
		CreatedAt: created,
	}
	if err := repo.CreateEvent(ctx, holiday); err != nil {
		t.Fatalf("create all-day event: %v", err)
	}

	got, err := repo.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if !got.RepeatWeekly || got.Start == nil || !got.Start.Equal(start) {
		t.Fatalf("unexpected event: %#v", got)
	}
	if got.Start.Hour() != 9 {
		t.Fatalf("start must come back in local wall-clock, got %v", got.Start)
	}

	weekly := true
	repeating, err := repo.ListEvents(ctx, EventListFilter{RepeatWeekly: &weekly})
	if err != nil {
		t.Fatalf("list repeating: %v", err)
	}
	if len(repeating) != 1 || repeating[0].ID != ev.ID {
		t.Fatalf("unexpected repeating list: %#v", repeating)
	}

	all, err := repo.ListEvents(ctx, EventListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}

	if err := repo.DeleteEvent(ctx, holiday.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if err := repo.DeleteEvent(ctx, holiday.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got: %v", err)
	}
}

func TestAssignmentCreateListDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := localTime(t, "2026-03-02T12:00:00")
	due := localTime(t, "2026-03-09T23:59:00")

	a := model.Assignment{
		ID:        "asg-1",
		Title:     "Problem Set 2",
		Due:       &due,
		Source:    "PSet 2 due March 9",
		CreatedAt: created,
	}
	if err := repo.CreateAssignment(ctx, a); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	list, err := repo.ListAssignments(ctx, AssignmentListFilter{})
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(list) != 1 || list[0].Title != a.Title || list[0].Source != a.Source {
		t.Fatalf("unexpected assignment list: %#v", list)
	}

	if err := repo.DeleteAssignment(ctx, a.ID); err != nil {
		t.Fatalf("delete assignment: %v", err)
	}
	if err := repo.DeleteAssignment(ctx, a.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSettingsDefaultAndUpsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	got, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get default settings: %v", err)
	}
	if got != DefaultSettings {
		t.Fatalf("expected defaults %v, got %v", DefaultSettings, got)
	}

	if err := repo.SaveSettings(ctx, Settings{StartHour: 8, EndHour: 20}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := repo.SaveSettings(ctx, Settings{StartHour: 7, EndHour: 21}); err != nil {
		t.Fatalf("second save should upsert: %v", err)
	}

	got, err = repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if got.StartHour != 7 || got.EndHour != 21 {
		t.Fatalf("unexpected settings: %v", got)
	}
}
