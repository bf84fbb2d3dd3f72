package plan

import (
	"math"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// ExpandWeekly resolves weekly-repeating events into dated instances
// inside the half-open range [rangeStart, rangeEnd). Non-repeating
// events pass through untouched in their original order; repeating
// events missing either endpoint cannot be expanded and are dropped.
// Instances keep the template's wall-clock times, shift only by whole
// days, and carry Expanded so callers can tell them from stored rows.
func ExpandWeekly(events []model.Event, rangeStart, rangeEnd time.Time) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !e.RepeatWeekly {
			out = append(out, e)
			continue
		}
		if e.Start == nil || e.End == nil {
			continue
		}

		tplStart := *e.Start
		tplEnd := *e.End
		tplDate := StartOfDay(tplStart)

		first := StartOfDay(rangeStart)
		delta := (int(tplStart.Weekday()) - int(first.Weekday()) + 7) % 7
		begin := first.AddDate(0, 0, delta)
		if begin.Before(tplDate) {
			begin = begin.AddDate(0, 0, 7)
		}

		for d := begin; d.Before(rangeEnd); d = d.AddDate(0, 0, 7) {
			shift := wholeDays(tplDate, d)
			s := tplStart.AddDate(0, 0, shift)
			en := tplEnd.AddDate(0, 0, shift)
			inst := e
			inst.Start = &s
			inst.End = &en
			inst.Expanded = true
			out = append(out, inst)
		}
	}
	return out
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// wholeDays counts calendar days from one local midnight to another,
// rounding so DST transitions do not skew the count.
func wholeDays(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
