package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/storage"
)

func (m Model) windowFor(s storage.Settings) plan.Window {
	return plan.Window{StartHour: s.StartHour, EndHour: s.EndHour}
}

// splitInlineFlags peels trailing key:value tokens off quick-add text,
// leaving the title. Flags may appear anywhere after the first word.
func splitInlineFlags(raw string) (string, map[string]string) {
	flags := make(map[string]string)
	title := make([]string, 0)
	for _, field := range strings.Fields(raw) {
		i := strings.Index(field, ":")
		if i > 0 && i < len(field)-1 {
			key := strings.ToLower(field[:i])
			switch key {
			case "est", "due", "pri", "tod", "cat":
				flags[key] = field[i+1:]
				continue
			}
		}
		title = append(title, field)
	}
	return strings.TrimSpace(strings.Join(title, " ")), flags
}

var dueStampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDueStamp accepts the datetime-local shapes the palette uses.
// A bare date is due end of that day.
func parseDueStamp(s string, now time.Time) (time.Time, bool) {
	for _, layout := range dueStampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, time.Local)
		}
		return t, true
	}
	if strings.EqualFold(s, "today") {
		return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location()), true
	}
	if strings.EqualFold(s, "tomorrow") {
		d := now.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, d.Location()), true
	}
	return time.Time{}, false
}

var weekdayTokens = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// parseDayToken resolves "today", "tomorrow", a weekday name (next
// occurrence, today counts), or YYYY-MM-DD to a local midnight.
func parseDayToken(token string, now time.Time) (time.Time, bool) {
	today := plan.StartOfDay(now)
	switch strings.ToLower(token) {
	case "", "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	}
	if len(token) >= 3 {
		if wd, ok := weekdayTokens[strings.ToLower(token[:3])]; ok {
			delta := (int(wd) - int(today.Weekday()) + 7) % 7
			return today.AddDate(0, 0, delta), true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", token, time.Local); err == nil {
		return plan.StartOfDay(t), true
	}
	return time.Time{}, false
}

func canonicalCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
