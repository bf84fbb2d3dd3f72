package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
}

// ParseCSV reads events from rows headed title,start,end,location
// (any order, extra columns ignored). Rows without a parseable start
// become dateless events rather than errors.
func ParseCSV(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	events := make([]model.Event, 0)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read csv row: %w", err)
		}

		title := cleanTitle(field(row, "title"))
		if title == "" {
			title = "Untitled"
		}
		ev := model.Event{
			ID:        model.NewID(),
			Title:     title,
			Location:  field(row, "location"),
			CreatedAt: time.Now(),
		}
		if t, ok := parseCSVTime(field(row, "start")); ok {
			ev.Start = &t
		}
		if t, ok := parseCSVTime(field(row, "end")); ok {
			ev.End = &t
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseCSVTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range csvTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
