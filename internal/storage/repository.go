package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Settings is the single-row planner configuration: the day window
// the auto-scheduler fills.
type Settings struct {
	StartHour int
	EndHour   int
}

// DefaultSettings is what a fresh database answers before the user
// changes the day window.
var DefaultSettings = Settings{StartHour: 6, EndHour: 22}

type TaskListFilter struct {
	Completed *bool
	Category  string
	Limit     int
	Offset    int
}

type EventListFilter struct {
	RepeatWeekly *bool
	Limit        int
	Offset       int
}

type AssignmentListFilter struct {
	Limit  int
	Offset int
}

type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	CreateEvent(ctx context.Context, in model.Event) error
	GetEvent(ctx context.Context, id string) (model.Event, error)
	UpdateEvent(ctx context.Context, in model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, filter EventListFilter) ([]model.Event, error)

	CreateAssignment(ctx context.Context, in model.Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignments(ctx context.Context, filter AssignmentListFilter) ([]model.Assignment, error)

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, in Settings) error
}
