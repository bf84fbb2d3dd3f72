package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var ErrInvalidWindow = errors.New("plan: invalid day window")

// Window bounds the schedulable part of a day in whole hours.
type Window struct {
	StartHour int
	EndHour   int
}

func (w Window) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: [%d,%d)", ErrInvalidWindow, w.StartHour, w.EndHour)
	}
	return nil
}

func (w Window) MinStart() int { return w.StartHour * 60 }
func (w Window) MaxEnd() int   { return w.EndHour * 60 }

// DayBusy materializes one day's busy minute spans from the full
// event collection: weekly templates are expanded over the single-day
// range, all-day events cover the whole window, and timed events
// contribute their minute-of-day span when they start on the target
// day. Events missing a required endpoint are left out. The result is
// raw; callers clamp and merge before using it.
func DayBusy(day time.Time, events []model.Event, w Window) []Span {
	dayStart := StartOfDay(day)
	expanded := ExpandWeekly(events, dayStart, dayStart.AddDate(0, 0, 1))

	busy := make([]Span, 0, len(expanded))
	for _, e := range expanded {
		if e.AllDay {
			// Dated all-day events block only their own day; an
			// all-day event with no date blocks every day.
			if e.Start == nil || e.StartsOn(dayStart) {
				busy = append(busy, Span{Start: w.MinStart(), End: w.MaxEnd()})
			}
			continue
		}
		if e.Start == nil || e.End == nil {
			continue
		}
		if !e.StartsOn(dayStart) {
			continue
		}
		busy = append(busy, Span{Start: MinuteOfDay(*e.Start), End: MinuteOfDay(*e.End)})
	}
	return busy
}

// MinuteOfDay converts a local instant to minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
