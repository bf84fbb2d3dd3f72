package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority  = errors.New("model: invalid task priority")
	ErrInvalidTimeOfDay = errors.New("model: invalid time-of-day preference")
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight is the tie-break rank used by the scheduler; an unknown
// priority weighs zero so malformed records sort last on ties.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type TimeOfDay string

const (
	TimeOfDayAny       TimeOfDay = "Any"
	TimeOfDayMorning   TimeOfDay = "Morning"
	TimeOfDayAfternoon TimeOfDay = "Afternoon"
	TimeOfDayEvening   TimeOfDay = "Evening"
)

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayAny, TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return true
	default:
		return false
	}
}

// Window returns the preference's minute-of-day range [start,end).
// Unknown values fall back to the full day, same as Any.
func (t TimeOfDay) Window() (int, int) {
	switch t {
	case TimeOfDayMorning:
		return 360, 720
	case TimeOfDayAfternoon:
		return 720, 1020
	case TimeOfDayEvening:
		return 1020, 1320
	default:
		return 0, 1440
	}
}

type Task struct {
	ID               string
	Title            string
	EstimatedMinutes int
	Due              *time.Time
	Priority         Priority
	TimeOfDay        TimeOfDay
	Category         string
	Notes            string
	Completed        bool
	CreatedAt        time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.TimeOfDay.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, t.TimeOfDay)
	}
	if t.EstimatedMinutes < 0 {
		return errors.New("model: task estimated minutes must not be negative")
	}
	return nil
}
