package model

import (
	"errors"
	"strings"
	"time"
)

// Assignment is a due-dated item detected in imported course material.
// It carries no duration; promoting it to a Task is an explicit user
// action.
type Assignment struct {
	ID        string
	Title     string
	Due       *time.Time
	Source    string
	CreatedAt time.Time
}

func (a Assignment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: assignment id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("model: assignment title is required")
	}
	return nil
}

// PromoteToTask converts an assignment into a schedulable task with
// the defaults the checklist uses for imported work.
func (a Assignment) PromoteToTask(now time.Time) Task {
	due := a.Due
	if due == nil {
		d := now
		due = &d
	}
	return Task{
		ID:               NewID(),
		Title:            a.Title,
		EstimatedMinutes: 60,
		Due:              due,
		Priority:         PriorityHigh,
		TimeOfDay:        TimeOfDayAny,
		Category:         "Academics",
		Notes:            "Imported from syllabus",
		CreatedAt:        now,
	}
}
