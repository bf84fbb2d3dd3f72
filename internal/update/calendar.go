package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/due"
	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, -1, 0)
	case "l":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, 1, 0)
	case "left":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, 0, -1)
	case "right":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, 0, 1)
	case "up":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, 0, -7)
	case "down":
		m.Calendar.Selected = m.Calendar.Selected.AddDate(0, 0, 7)
	case "t":
		m.Calendar.Selected = plan.StartOfDay(m.now())
	case "enter":
		m.Calendar.ShowDetails = !m.Calendar.ShowDetails
	case "p":
		m.Plan.Day = plan.StartOfDay(m.Calendar.Selected)
		m.CurrentView = ViewPlan
		m.refreshPlan()
	}
	return m
}

func (m Model) renderCalendarView() string {
	sel := m.Calendar.Selected
	monthStart := time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, sel.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	// Expanded occurrences and due marks for the visible month.
	expanded := plan.ExpandWeekly(m.Events, monthStart, nextMonth)
	eventDays := make(map[int]int)
	for _, e := range expanded {
		if e.Start == nil || e.Start.Month() != sel.Month() || e.Start.Year() != sel.Year() {
			continue
		}
		eventDays[e.Start.Day()]++
	}
	dueDays := make(map[int]int)
	for _, entry := range due.List(m.Tasks, m.Assignments, nil) {
		if entry.When.Month() != sel.Month() || entry.When.Year() != sel.Year() {
			continue
		}
		dueDays[entry.When.Day()]++
	}

	weeks := make([][]views.MonthCellData, 0, 6)
	week := make([]views.MonthCellData, 0, 7)
	for i := 0; i < int(monthStart.Weekday()); i++ {
		week = append(week, views.MonthCellData{})
	}
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()
	for day := 1; day <= daysInMonth; day++ {
		week = append(week, views.MonthCellData{
			Day:      day,
			Selected: day == sel.Day(),
			Events:   eventDays[day],
			Due:      dueDays[day],
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]views.MonthCellData, 0, 7)
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}

	out := views.RenderMonthPanel(views.MonthPanelData{
		Title: sel.Format("January 2006"),
		Weeks: weeks,
	})
	if m.Calendar.ShowDetails {
		out += "\n\n" + m.renderDayDetails(sel, expanded)
	}
	return out
}

func (m Model) renderDayDetails(day time.Time, expanded []model.Event) string {
	items := make([]views.DayDetailData, 0)
	for _, e := range expanded {
		if !e.StartsOn(day) {
			continue
		}
		label := e.Title
		if e.AllDay {
			label += " (all day)"
		} else if e.Start != nil {
			label = e.Start.Format("15:04") + " " + label
		}
		items = append(items, views.DayDetailData{Label: label, Kind: "event"})
	}
	for _, entry := range due.List(m.Tasks, m.Assignments, nil) {
		if !sameDay(entry.When, day) {
			continue
		}
		items = append(items, views.DayDetailData{
			Label: fmt.Sprintf("%s %s", entry.When.Format("15:04"), entry.Title),
			Kind:  string(entry.Kind),
		})
	}
	return views.RenderDayDetails(day.Format("Mon Jan 2"), items)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
