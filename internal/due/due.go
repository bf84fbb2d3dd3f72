// Package due merges every due-dated record - tasks, imported
// assignments, and calendar events - into time-ordered feeds for the
// notification dock and the persistent due list.
package due

import (
	"sort"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

type Kind string

const (
	KindTask       Kind = "task"
	KindAssignment Kind = "assignment"
	KindEvent      Kind = "event"
)

// Entry is one due-dated item. Transient: rebuilt on every refresh.
type Entry struct {
	Kind  Kind
	Title string
	When  time.Time
}

// DefaultHorizon bounds the upcoming side of the notification feed.
const DefaultHorizon = 24 * time.Hour

// Partition splits the due-dated records around now: overdue entries
// strictly before now, upcoming entries within the horizon. Entries
// past the horizon are omitted; this is a notification feed, not a
// listing. Completed tasks and records without the relevant instant
// never appear. Events are taken as given; callers expand weekly
// templates for the window they care about first.
func Partition(tasks []model.Task, assignments []model.Assignment, events []model.Event, now time.Time, horizon time.Duration) (overdue, upcoming []Entry) {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	cutoff := now.Add(horizon)

	overdue = make([]Entry, 0)
	upcoming = make([]Entry, 0)
	for _, entry := range collect(tasks, assignments, events) {
		switch {
		case entry.When.Before(now):
			overdue = append(overdue, entry)
		case !entry.When.After(cutoff):
			upcoming = append(upcoming, entry)
		}
	}
	sortByWhen(overdue)
	sortByWhen(upcoming)
	return overdue, upcoming
}

// List returns the full merged union of all three streams sorted by
// instant, with no horizon applied.
func List(tasks []model.Task, assignments []model.Assignment, events []model.Event) []Entry {
	entries := collect(tasks, assignments, events)
	sortByWhen(entries)
	return entries
}

func collect(tasks []model.Task, assignments []model.Assignment, events []model.Event) []Entry {
	entries := make([]Entry, 0, len(tasks)+len(assignments)+len(events))
	for _, t := range tasks {
		if t.Completed || t.Due == nil {
			continue
		}
		entries = append(entries, Entry{Kind: KindTask, Title: t.Title, When: *t.Due})
	}
	for _, a := range assignments {
		if a.Due == nil {
			continue
		}
		entries = append(entries, Entry{Kind: KindAssignment, Title: a.Title, When: *a.Due})
	}
	for _, e := range events {
		if e.Start == nil {
			continue
		}
		entries = append(entries, Entry{Kind: KindEvent, Title: e.Title, When: *e.Start})
	}
	return entries
}

func sortByWhen(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].When.Before(entries[j].When)
	})
}
