package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/due"
	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m *Model) refreshDue() {
	now := m.now()
	// Weekly events only count once expanded into dated occurrences.
	horizonEvents := plan.ExpandWeekly(m.Events, plan.StartOfDay(now), now.Add(due.DefaultHorizon))
	m.Due.Overdue, m.Due.Upcoming = due.Partition(m.Tasks, m.Assignments, horizonEvents, now, due.DefaultHorizon)
	m.Due.All = due.List(m.Tasks, m.Assignments, m.Events)
}

func (m Model) handleDueKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "a":
		m.Due.ShowAll = !m.Due.ShowAll
	case "p":
		idx, ok := nextAssignmentIndex(m.Assignments)
		if !ok {
			m.Status = StatusBar{Text: "no assignment to promote", IsError: true}
			return m
		}
		title := m.Assignments[idx].Title
		if err := m.promoteAssignmentAt(idx); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "promoted to task: " + title, IsError: false}
			m.refreshDerived()
		}
	}
	return m
}

// nextAssignmentIndex picks the earliest-due assignment; dateless ones
// are only chosen when nothing dated exists.
func nextAssignmentIndex(assignments []model.Assignment) (int, bool) {
	best := -1
	for i, a := range assignments {
		if best == -1 {
			best = i
			continue
		}
		switch {
		case a.Due == nil:
		case assignments[best].Due == nil, a.Due.Before(*assignments[best].Due):
			best = i
		}
	}
	return best, best != -1
}

func (m Model) renderDueView() string {
	return views.RenderDuePanel(views.DuePanelData{
		Overdue:  dueItems(m.Due.Overdue),
		Upcoming: dueItems(m.Due.Upcoming),
		All:      dueItems(m.Due.All),
		ShowAll:  m.Due.ShowAll,
	})
}

// renderDueDock is the compact strip under every view: overdue and
// next-24h counts with the nearest entry.
func (m Model) renderDueDock() string {
	if len(m.Due.Overdue) == 0 && len(m.Due.Upcoming) == 0 {
		return ""
	}
	out := ""
	if n := len(m.Due.Overdue); n > 0 {
		first := m.Due.Overdue[0]
		out += fmt.Sprintf("overdue(%d): %s %s", n, first.When.Format("Jan 2 15:04"), first.Title)
	}
	if n := len(m.Due.Upcoming); n > 0 {
		if out != "" {
			out += " | "
		}
		first := m.Due.Upcoming[0]
		out += fmt.Sprintf("next 24h(%d): %s %s", n, first.When.Format("Jan 2 15:04"), first.Title)
	}
	return out
}

func dueItems(entries []due.Entry) []views.DueItemData {
	out := make([]views.DueItemData, 0, len(entries))
	for _, e := range entries {
		out = append(out, views.DueItemData{
			Kind:  string(e.Kind),
			Title: e.Title,
			When:  e.When.Format("Jan 2 15:04"),
		})
	}
	return out
}
