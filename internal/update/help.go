package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/plannerd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(string(m.CurrentView), plain, m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Checklist, Action: "switch to Checklist"},
		{Key: m.Keys.Plan, Action: "switch to Plan"},
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: m.Keys.Events, Action: "switch to Events"},
		{Key: m.Keys.Due, Action: "switch to Due"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewChecklist:
		return []KeyBinding{
			{Key: "i/enter", Action: "capture a task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle done"},
			{Key: "d", Action: "delete task"},
		}
	case ViewPlan:
		return []KeyBinding{
			{Key: "[/]", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
			{Key: "w", Action: "toggle week layout"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "arrows", Action: "move selected day"},
			{Key: "enter", Action: "toggle day details"},
			{Key: "p", Action: "plan the selected day"},
		}
	case ViewEvents:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "d", Action: "delete event"},
		}
	case ViewDue:
		return []KeyBinding{
			{Key: "a", Action: "toggle full list"},
			{Key: "p", Action: "promote next assignment to task"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
