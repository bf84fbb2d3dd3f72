package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidEventTimes = errors.New("model: event end must be after start")

// Event is a fixed commitment on the calendar. When RepeatWeekly is
// set, Start and End act as a template: the event recurs on the same
// weekday at the same wall-clock times every week, beginning no
// earlier than the template's own start date. Expanded marks transient
// instances produced by recurrence expansion; they are never stored.
type Event struct {
	ID           string
	Title        string
	Location     string
	Start        *time.Time
	End          *time.Time
	AllDay       bool
	RepeatWeekly bool
	Expanded     bool
	CreatedAt    time.Time
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: event id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("model: event title is required")
	}
	if e.AllDay {
		return nil
	}
	if e.Start == nil || e.End == nil {
		return errors.New("model: event start and end are required")
	}
	if !e.End.After(*e.Start) {
		return ErrInvalidEventTimes
	}
	return nil
}

// StartsOn reports whether the event's start falls on the given local
// calendar day. Events without a start never match.
func (e Event) StartsOn(day time.Time) bool {
	if e.Start == nil {
		return false
	}
	y1, m1, d1 := e.Start.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
