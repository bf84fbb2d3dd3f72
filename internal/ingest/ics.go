package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
)

// ParseICS reads every VEVENT from an iCalendar stream. Weekly repeat
// comes from FREQ=WEEKLY in the RRULE; an all-day event is one whose
// DTSTART carries a DATE value. Events without a usable DTSTART are
// skipped.
func ParseICS(r io.Reader) ([]model.Event, error) {
	dec := ical.NewDecoder(r)

	events := make([]model.Event, 0)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: decode ics: %w", err)
		}
		for _, child := range cal.Children {
			if child.Name != ical.CompEvent {
				continue
			}
			if ev, ok := eventFromComponent(child); ok {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

func eventFromComponent(comp *ical.Component) (model.Event, bool) {
	summary := ""
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		summary = p.Value
	}

	ev := model.Event{
		ID:        model.NewID(),
		Title:     cleanTitle(summary),
		CreatedAt: time.Now(),
	}
	if ev.Title == "" {
		ev.Title = "Untitled"
	}

	if p := comp.Props.Get(ical.PropLocation); p != nil && p.Value != "" {
		ev.Location = p.Value
	} else {
		ev.Location = parenLocation(summary)
	}

	if p := comp.Props.Get(ical.PropRecurrenceRule); p != nil {
		ev.RepeatWeekly = strings.Contains(strings.ToUpper(p.Value), "FREQ=WEEKLY")
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return model.Event{}, false
	}
	if startProp.ValueType() == ical.ValueDate {
		ev.AllDay = true
	}

	icalEvent := ical.Event{Component: comp}
	start, err := icalEvent.DateTimeStart(time.Local)
	if err != nil {
		return model.Event{}, false
	}
	if ev.AllDay {
		day := plan.StartOfDay(start)
		ev.Start = &day
		return ev, true
	}
	ev.Start = &start

	if end, err := icalEvent.DateTimeEnd(time.Local); err == nil && !end.IsZero() {
		ev.End = &end
	}
	return ev, true
}

// WriteICS serializes a day plan as a VCALENDAR, one VEVENT per block.
func WriteICS(w io.Writer, blocks []plan.Block, day time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//plannerd//Day Plan//EN")

	midnight := plan.StartOfDay(day)
	stamp := time.Now().UTC()
	for _, b := range blocks {
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, model.NewID())
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ev.Props.SetDateTime(ical.PropDateTimeStart, midnight.Add(time.Duration(b.Start)*time.Minute))
		ev.Props.SetDateTime(ical.PropDateTimeEnd, midnight.Add(time.Duration(b.End)*time.Minute))
		ev.Props.SetText(ical.PropSummary, b.Title)
		ev.Props.SetText(ical.PropDescription, string(b.Kind))
		cal.Children = append(cal.Children, ev.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("ingest: encode ics: %w", err)
	}
	return nil
}
