package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m Model) handleEventsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.EventsView.Cursor > 0 {
			m.EventsView.Cursor--
		}
	case "down", "j":
		if m.EventsView.Cursor < len(m.Events)-1 {
			m.EventsView.Cursor++
		}
	case "d":
		if err := m.deleteEventAt(m.EventsView.Cursor); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "event deleted", IsError: false}
			m.refreshDerived()
		}
	}
	m.syncEventsTable()
	return m
}

func (m *Model) syncEventsTable() {
	rows := make([]table.Row, 0, len(m.Events))
	for _, e := range m.Events {
		rows = append(rows, table.Row{eventWhen(e), e.Title, e.Location})
	}
	m.eventsTable.SetRows(rows)
	if m.EventsView.Cursor < len(rows) {
		m.eventsTable.SetCursor(m.EventsView.Cursor)
	}
}

func (m Model) renderEventsView() string {
	items := make([]views.EventItemData, 0, len(m.Events))
	for _, e := range m.Events {
		items = append(items, views.EventItemData{
			ID:       e.ID,
			Title:    e.Title,
			When:     eventWhen(e),
			Location: e.Location,
			Weekly:   e.RepeatWeekly,
			AllDay:   e.AllDay,
		})
	}
	return views.RenderEventsPanel(views.EventsPanelData{
		TableView: m.eventsTable.View(),
		Items:     items,
		Cursor:    m.EventsView.Cursor,
	})
}

func eventWhen(e model.Event) string {
	if e.AllDay {
		if e.Start == nil {
			return "every day"
		}
		return e.Start.Format("Jan 2") + " all day"
	}
	if e.Start == nil {
		return "(unscheduled)"
	}
	out := e.Start.Format("Mon Jan 2 15:04")
	if e.End != nil {
		out += "-" + e.End.Format("15:04")
	}
	return out
}
