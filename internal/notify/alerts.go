package notify

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
)

// LeadTime is how far ahead of an event's start its alert fires.
const LeadTime = 10 * time.Minute

// EventAlerts computes the lead alerts for every event starting in
// (from, until], expanding weekly templates over that window first.
// Alert IDs combine the event ID with the concrete start instant so
// each expanded occurrence alerts once. Events already past fire
// immediately rather than never.
func EventAlerts(events []model.Event, from, until time.Time) []Alert {
	expanded := plan.ExpandWeekly(events, plan.StartOfDay(from), until)

	alerts := make([]Alert, 0, len(expanded))
	for _, e := range expanded {
		if e.Start == nil {
			continue
		}
		start := *e.Start
		if !start.After(from) || start.After(until) {
			continue
		}
		at := start.Add(-LeadTime)
		if at.Before(from) {
			at = from
		}
		body := start.Format("Mon Jan 2 15:04")
		if e.Location != "" {
			body += " | " + e.Location
		}
		alerts = append(alerts, Alert{
			ID:    fmt.Sprintf("%s@%s", e.ID, start.Format(time.RFC3339)),
			Title: e.Title,
			Body:  body,
			At:    at,
		})
	}
	return alerts
}
