package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/notify"
	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Engine != nil {
		return waitForAlertCmd(m.Engine.C())
	}
	return nil
}

func waitForAlertCmd(ch <-chan notify.Alert) tea.Cmd {
	return func() tea.Msg {
		return AlertMsg{Alert: <-ch}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewChecklist && m.Checklist.CaptureMode && keyStr != "ctrl+c" &&
			keyStr != m.Keys.Checklist && keyStr != m.Keys.Plan && keyStr != m.Keys.Calendar &&
			keyStr != m.Keys.Events && keyStr != m.Keys.Due &&
			keyStr != m.Keys.Help && keyStr != "/" && keyStr != m.Keys.Quit {
			return m.handleChecklistKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Checklist:
			m.CurrentView = ViewChecklist
			return m, nil
		case m.Keys.Plan:
			m.CurrentView = ViewPlan
			m.refreshPlan()
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Events:
			m.CurrentView = ViewEvents
			return m, nil
		case m.Keys.Due:
			m.CurrentView = ViewDue
			m.refreshDue()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewChecklist:
			return m.handleChecklistKey(typed), nil
		case ViewPlan:
			return m.handlePlanKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewEvents:
			return m.handleEventsKey(typed), nil
		case ViewDue:
			return m.handleDueKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewChecklist {
				m.Checklist.CaptureMode = true
				m.quickAddInput.Focus()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.Log.Error().Err(typed.Err).Msg("app error")
		}
		return m, nil
	case AlertMsg:
		m.AlertLog = append(m.AlertLog, typed.Alert)
		if len(m.AlertLog) > 20 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("alert: %s", typed.Alert.Title), IsError: false}
		m.Log.Info().Str("alert", typed.Alert.ID).Time("at", typed.Alert.At).Msg("alert fired")
		if m.Engine != nil {
			return m, waitForAlertCmd(m.Engine.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewChecklist:
		leftPane = m.renderChecklistView()
		rightPane = m.renderChecklistMetadata()
	case ViewPlan:
		leftPane = m.renderPlanView()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
	case ViewEvents:
		leftPane = m.renderEventsView()
	case ViewDue:
		leftPane = m.renderDueView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.Palette.Input),
		rightPane,
		m.renderHelpIfVisible(),
	}, "\n"))

	dock := m.renderDueDock()
	if len(m.AlertLog) > 0 {
		last := m.AlertLog[len(m.AlertLog)-1]
		dock = strings.TrimSpace(dock + "\n" + views.RenderAlert(last.Title, last.Body))
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("plannerd | view: %s | day window: %02d:00-%02d:00", m.CurrentView, m.Settings.StartHour, m.Settings.EndHour),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Dock:       dock,
		Footer: fmt.Sprintf("keys: %s checklist | %s plan | %s cal | %s events | %s due | / cmd | %s help | %s quit",
			m.Keys.Checklist, m.Keys.Plan, m.Keys.Calendar, m.Keys.Events, m.Keys.Due, m.Keys.Help, m.Keys.Quit),
	})
}
