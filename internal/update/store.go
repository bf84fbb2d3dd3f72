package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/notify"
	"github.com/sandeepkv93/plannerd/internal/storage"
)

const repoTimeout = 5 * time.Second

func (m *Model) repoCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), repoTimeout)
}

func (m *Model) loadAll() error {
	ctx, cancel := m.repoCtx()
	defer cancel()

	tasks, err := m.Repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	events, err := m.Repo.ListEvents(ctx, storage.EventListFilter{})
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	assignments, err := m.Repo.ListAssignments(ctx, storage.AssignmentListFilter{})
	if err != nil {
		return fmt.Errorf("load assignments: %w", err)
	}
	settings, err := m.Repo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	m.Tasks = tasks
	m.Events = events
	m.Assignments = assignments
	m.Settings = settings
	m.rebuildEventAlerts()
	return nil
}

// addTask parses quick-add text into a task. The title may carry the
// palette's key:value flags, so "read ch 4 est:45 pri:Low" works from
// the checklist input too.
func (m *Model) addTask(raw string) error {
	title, flags := splitInlineFlags(raw)
	if title == "" {
		return fmt.Errorf("task title is empty")
	}

	task := model.Task{
		ID:               model.NewID(),
		Title:            title,
		EstimatedMinutes: 30,
		Priority:         model.PriorityMedium,
		TimeOfDay:        model.TimeOfDayAny,
		Category:         "General",
		CreatedAt:        m.now(),
	}
	for key, value := range flags {
		switch key {
		case "est":
			if n, err := strconv.Atoi(value); err == nil {
				task.EstimatedMinutes = n
			}
		case "due":
			if t, ok := parseDueStamp(value, m.now()); ok {
				task.Due = &t
			}
		case "pri":
			task.Priority = model.Priority(canonicalCase(value))
		case "tod":
			task.TimeOfDay = model.TimeOfDay(canonicalCase(value))
		case "cat":
			task.Category = value
		}
	}
	if err := task.Validate(); err != nil {
		return err
	}

	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("store task: %w", err)
	}
	m.Tasks = append(m.Tasks, task)
	m.Log.Info().Str("task", task.ID).Str("title", task.Title).Msg("task added")
	return nil
}

func (m *Model) toggleTaskAt(idx int) error {
	if idx < 0 || idx >= len(m.Tasks) {
		return fmt.Errorf("no task selected")
	}
	task := m.Tasks[idx]
	task.Completed = !task.Completed

	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.UpdateTask(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	m.Tasks[idx] = task
	return nil
}

func (m *Model) deleteTaskAt(idx int) error {
	if idx < 0 || idx >= len(m.Tasks) {
		return fmt.Errorf("no task selected")
	}
	task := m.Tasks[idx]

	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	m.Tasks = append(m.Tasks[:idx], m.Tasks[idx+1:]...)
	m.Log.Info().Str("task", task.ID).Msg("task deleted")
	return nil
}

func (m *Model) addEvent(ev model.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.CreateEvent(ctx, ev); err != nil {
		return fmt.Errorf("store event: %w", err)
	}
	m.Events = append(m.Events, ev)
	m.rebuildEventAlerts()
	m.Log.Info().Str("event", ev.ID).Str("title", ev.Title).Msg("event added")
	return nil
}

func (m *Model) deleteEventAt(idx int) error {
	if idx < 0 || idx >= len(m.Events) {
		return fmt.Errorf("no event selected")
	}
	ev := m.Events[idx]

	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.DeleteEvent(ctx, ev.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	m.Events = append(m.Events[:idx], m.Events[idx+1:]...)
	if m.Engine != nil {
		m.Engine.DropMatching(ev.ID)
	}
	m.rebuildEventAlerts()
	m.Log.Info().Str("event", ev.ID).Msg("event deleted")
	return nil
}

func (m *Model) addAssignments(items []model.Assignment) (int, error) {
	ctx, cancel := m.repoCtx()
	defer cancel()

	seen := make(map[string]struct{}, len(m.Assignments))
	for _, existing := range m.Assignments {
		seen[assignmentKey(existing)] = struct{}{}
	}

	added := 0
	for _, item := range items {
		if _, dup := seen[assignmentKey(item)]; dup {
			continue
		}
		if err := m.Repo.CreateAssignment(ctx, item); err != nil {
			return added, fmt.Errorf("store assignment: %w", err)
		}
		seen[assignmentKey(item)] = struct{}{}
		m.Assignments = append(m.Assignments, item)
		added++
	}
	return added, nil
}

// promoteAssignmentAt turns a stored assignment into a checklist task
// and removes the assignment record.
func (m *Model) promoteAssignmentAt(idx int) error {
	if idx < 0 || idx >= len(m.Assignments) {
		return fmt.Errorf("no assignment selected")
	}
	a := m.Assignments[idx]
	task := a.PromoteToTask(m.now())

	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("store promoted task: %w", err)
	}
	if err := m.Repo.DeleteAssignment(ctx, a.ID); err != nil {
		return fmt.Errorf("delete promoted assignment: %w", err)
	}
	m.Tasks = append(m.Tasks, task)
	m.Assignments = append(m.Assignments[:idx], m.Assignments[idx+1:]...)
	m.Log.Info().Str("assignment", a.ID).Str("task", task.ID).Msg("assignment promoted")
	return nil
}

func (m *Model) saveHours(start, end int) error {
	next := storage.Settings{StartHour: start, EndHour: end}
	if err := (m.windowFor(next)).Validate(); err != nil {
		return err
	}
	ctx, cancel := m.repoCtx()
	defer cancel()
	if err := m.Repo.SaveSettings(ctx, next); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	m.Settings = next
	m.Log.Info().Int("start", start).Int("end", end).Msg("day window changed")
	return nil
}

// rebuildEventAlerts reschedules the lead alert for every upcoming
// event occurrence in the next week. Old pending alerts for an event
// are dropped by ID before its fresh set goes in.
func (m *Model) rebuildEventAlerts() {
	if m.Engine == nil {
		return
	}
	horizon := m.AlertHorizonDays
	if horizon <= 0 {
		horizon = 7
	}
	now := m.now()
	alerts := notify.EventAlerts(m.Events, now, now.AddDate(0, 0, horizon))
	for _, a := range alerts {
		m.Engine.Drop(a.ID)
		if err := m.Engine.Schedule(a); err != nil {
			m.Log.Warn().Err(err).Str("alert", a.ID).Msg("alert schedule failed")
		}
	}
}

func assignmentKey(a model.Assignment) string {
	key := strings.ToLower(a.Title) + "|"
	if a.Due != nil {
		key += a.Due.Format(time.RFC3339)
	}
	return key
}
