package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
)

var (
	dayTokenRE  = regexp.MustCompile(`(?i)^(sun|mon|tue|wed|thu|fri|sat)[a-z]*\b`)
	timeRangeRE = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\s*[-\x{2013}\x{2014}]\s*(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
)

var dayIndex = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseText is the loose fallback for pasted schedules. Each line with
// a time range becomes an event: "mon 9:00-10:15 Algorithms" lands on
// the Monday of the week containing base, a line without a weekday
// lands on base's own day. Lines without a time range are ignored.
func ParseText(text string, base time.Time) []model.Event {
	weekStart := plan.StartOfDay(base).AddDate(0, 0, -int(base.Weekday()))

	events := make([]model.Event, 0)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		tm := timeRangeRE.FindStringSubmatch(line)
		if tm == nil {
			continue
		}

		day := plan.StartOfDay(base)
		rest := line
		if d := dayTokenRE.FindString(line); d != "" {
			day = weekStart.AddDate(0, 0, int(dayIndex[strings.ToLower(d[:3])]))
			rest = strings.TrimSpace(line[len(d):])
		}

		start := timeOnDay(day, tm[1], tm[2], tm[3])
		end := timeOnDay(day, tm[4], tm[5], tm[6])
		if start == nil || end == nil || !end.After(*start) {
			continue
		}

		title := cleanTitle(collapseSpaces(strings.Replace(rest, tm[0], "", 1)))
		location := roomRE.FindString(line)
		if location != "" {
			title = cleanTitle(collapseSpaces(strings.Replace(title, location, "", 1)))
		}
		if title == "" {
			title = "Untitled"
		}

		events = append(events, model.Event{
			ID:        model.NewID(),
			Title:     title,
			Location:  strings.TrimSpace(location),
			Start:     start,
			End:       end,
			CreatedAt: time.Now(),
		})
	}
	return events
}

func timeOnDay(day time.Time, hh, mm, meridiem string) *time.Time {
	h, err := strconv.Atoi(hh)
	if err != nil || h > 23 {
		return nil
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return nil
	}
	switch strings.ToLower(meridiem) {
	case "am":
		h = h % 12
	case "pm":
		h = h%12 + 12
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
	return &t
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
