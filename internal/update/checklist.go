package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m Model) handleChecklistKey(msg tea.KeyMsg) Model {
	if m.Checklist.CaptureMode {
		switch msg.String() {
		case "esc":
			m.Checklist.CaptureMode = false
			m.quickAddInput.Blur()
			m.Status = StatusBar{Text: "checklist list mode", IsError: false}
			return m
		case "enter":
			if err := m.addTask(m.quickAddInput.Value()); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: "task added", IsError: false}
				m.refreshDerived()
			}
			m.quickAddInput.SetValue("")
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "i", "enter":
		m.Checklist.CaptureMode = true
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "checklist capture mode", IsError: false}
	case "up", "k":
		if m.Checklist.Cursor > 0 {
			m.Checklist.Cursor--
		}
	case "down", "j":
		if m.Checklist.Cursor < len(m.Tasks)-1 {
			m.Checklist.Cursor++
		}
	case " ":
		if err := m.toggleTaskAt(m.Checklist.Cursor); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.refreshDerived()
		}
	case "d":
		if err := m.deleteTaskAt(m.Checklist.Cursor); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "task deleted", IsError: false}
			m.refreshDerived()
		}
	}
	return m
}

func (m Model) renderChecklistView() string {
	items := make([]views.ChecklistItemData, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		item := views.ChecklistItemData{
			ID:        t.ID,
			Title:     t.Title,
			Priority:  string(t.Priority),
			TimeOfDay: string(t.TimeOfDay),
			Category:  t.Category,
			Completed: t.Completed,
		}
		if t.Due != nil {
			item.Due = t.Due.Format("Jan 2 15:04")
		}
		items = append(items, item)
	}
	return views.RenderChecklistPanel(views.ChecklistPanelData{
		QuickAddView: m.quickAddInput.View(),
		CaptureMode:  m.Checklist.CaptureMode,
		Items:        items,
		Cursor:       m.Checklist.Cursor,
	})
}

// renderChecklistMetadata shows the selected task's notes rendered as
// markdown next to the list.
func (m Model) renderChecklistMetadata() string {
	if len(m.Tasks) == 0 || m.Checklist.Cursor >= len(m.Tasks) {
		return "details:\n(no selection)"
	}
	t := m.Tasks[m.Checklist.Cursor]
	due := "(none)"
	if t.Due != nil {
		due = t.Due.Format(time.RFC1123)
	}
	body := fmt.Sprintf("details:\nid: %s\nestimate: %dm\npriority: %s\nwindow: %s\ndue: %s",
		t.ID, t.EstimatedMinutes, t.Priority, t.TimeOfDay, due)
	if t.Notes != "" {
		body += "\n\nnotes:\n" + views.RenderMarkdown(t.Notes)
	}
	return body
}
