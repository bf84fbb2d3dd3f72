package views

import (
	"fmt"
	"strings"
)

type ChecklistItemData struct {
	ID        string
	Title     string
	Due       string
	Priority  string
	TimeOfDay string
	Category  string
	Completed bool
}

type ChecklistPanelData struct {
	QuickAddView string
	CaptureMode  bool
	Items        []ChecklistItemData
	Cursor       int
}

type TimelineBlockData struct {
	Title string
	Start int
	End   int
	Kind  string
}

type TimelinePanelData struct {
	Day    string
	Window string
	Blocks []TimelineBlockData
}

type MonthCellData struct {
	Day      int
	Selected bool
	Events   int
	Due      int
}

type MonthPanelData struct {
	Title string
	Weeks [][]MonthCellData
}

type DayDetailData struct {
	Label string
	Kind  string
}

type EventItemData struct {
	ID       string
	Title    string
	When     string
	Location string
	Weekly   bool
	AllDay   bool
}

type EventsPanelData struct {
	TableView string
	Items     []EventItemData
	Cursor    int
}

type DueItemData struct {
	Kind  string
	Title string
	When  string
}

type DuePanelData struct {
	Overdue  []DueItemData
	Upcoming []DueItemData
	All      []DueItemData
	ShowAll  bool
}

func RenderChecklistPanel(data ChecklistPanelData) string {
	var b strings.Builder
	b.WriteString("checklist:\n")
	b.WriteString(data.QuickAddView + "\n")
	if data.CaptureMode {
		b.WriteString("actions: [enter]add [esc]list mode\n")
	} else {
		b.WriteString("actions: [i]add [j/k]move [space]toggle [d]delete\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no tasks yet)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, priorityBadge(item.Priority), item.Title))
		if item.Due != "" {
			b.WriteString(" due:" + item.Due)
		}
		if item.TimeOfDay != "" && item.TimeOfDay != "Any" {
			b.WriteString(" tod:" + item.TimeOfDay)
		}
		if item.Category != "" {
			b.WriteString(" #" + item.Category)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("plan %s (window %s):\n", data.Day, data.Window))
	if len(data.Blocks) == 0 {
		b.WriteString("(nothing scheduled)")
		return b.String()
	}
	for _, block := range data.Blocks {
		b.WriteString(fmt.Sprintf("%s-%s %s %s\n",
			MinuteLabel(block.Start), MinuteLabel(block.End), kindBadge(block.Kind), block.Title))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderWeekPanel(days []TimelinePanelData) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, RenderTimelinePanel(day))
	}
	return strings.Join(parts, "\n\n")
}

func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("calendar %s:\n", data.Title))
	b.WriteString("actions: [h/l]month [arrows]day [enter]details\n")
	b.WriteString("  Su   Mo   Tu   We   Th   Fr   Sa\n")
	for _, week := range data.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString("     ")
				continue
			}
			mark := " "
			if cell.Due > 0 && cell.Events > 0 {
				mark = "*"
			} else if cell.Due > 0 {
				mark = "!"
			} else if cell.Events > 0 {
				mark = "."
			}
			if cell.Selected {
				b.WriteString(fmt.Sprintf("[%2d%s]", cell.Day, mark))
			} else {
				b.WriteString(fmt.Sprintf(" %2d%s ", cell.Day, mark))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderDayDetails(label string, items []DayDetailData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("day %s:\n", label))
	if len(items) == 0 {
		b.WriteString("(free)")
		return b.String()
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- [%s] %s\n", strings.ToUpper(item.Kind), item.Label))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderEventsPanel(data EventsPanelData) string {
	var b strings.Builder
	b.WriteString("events:\n")
	b.WriteString("actions: [j/k]move [d]delete | palette: event, import, export\n")
	if data.TableView != "" {
		b.WriteString(data.TableView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no events)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, item.When, item.Title))
		if item.Location != "" {
			b.WriteString(" @ " + item.Location)
		}
		if item.Weekly {
			b.WriteString(" (weekly)")
		}
		if item.AllDay {
			b.WriteString(" (all day)")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderDuePanel(data DuePanelData) string {
	var b strings.Builder
	b.WriteString("due:\n")
	b.WriteString("actions: [a]toggle all/horizon [p]promote assignment\n")
	renderDueSection(&b, "overdue", data.Overdue)
	renderDueSection(&b, "next 24h", data.Upcoming)
	if data.ShowAll {
		renderDueSection(&b, "everything", data.All)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderAlert(title, body string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	out := "alert: " + title
	if body != "" {
		out += " | " + body
	}
	return out
}

func RenderHelpPanel(currentView string, bindings []string, helpView string) string {
	return fmt.Sprintf("help:\nview: %s\n%s\n%s",
		strings.ToLower(currentView),
		strings.Join(bindings, "\n"),
		helpView,
	)
}

func MinuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func renderDueSection(b *strings.Builder, title string, items []DueItemData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- [%s] %s %s\n", strings.ToUpper(item.Kind), item.When, item.Title))
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "High":
		return "[RED]"
	case "Medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}

func kindBadge(kind string) string {
	switch kind {
	case "event":
		return "[EVT]"
	case "break":
		return "[BRK]"
	default:
		return "[TSK]"
	}
}
