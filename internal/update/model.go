package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/plannerd/internal/due"
	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/notify"
	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/storage"
)

type View string

const (
	ViewChecklist View = "Checklist"
	ViewPlan      View = "Plan"
	ViewCalendar  View = "Calendar"
	ViewEvents    View = "Events"
	ViewDue       View = "Due"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Checklist string
	Plan      string
	Calendar  string
	Events    string
	Due       string
	Help      string
	Quit      string
}

type ChecklistState struct {
	Cursor      int
	CaptureMode bool
}

type PlanState struct {
	Day    time.Time
	Week   bool
	Blocks []plan.Block
	// WeekBlocks[i] is the plan for Day's week starting Sunday.
	WeekBlocks [][]plan.Block
}

type CalendarState struct {
	Selected    time.Time
	ShowDetails bool
}

type EventsState struct {
	Cursor int
}

type DueState struct {
	ShowAll  bool
	Overdue  []due.Entry
	Upcoming []due.Entry
	All      []due.Entry
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Repo        storage.Repository
	Engine      *notify.Engine
	Log         zerolog.Logger

	Tasks       []model.Task
	Events      []model.Event
	Assignments []model.Assignment
	Settings    storage.Settings

	Checklist  ChecklistState
	Plan       PlanState
	Calendar   CalendarState
	EventsView EventsState
	Due        DueState
	Palette    CommandPaletteState

	// AlertHorizonDays bounds how far ahead event alerts are scheduled.
	AlertHorizonDays int

	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	AlertLog    []notify.Alert

	quickAddInput textinput.Model
	commandInput  textinput.Model
	eventsTable   table.Model
	helpModel     help.Model

	now func() time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AlertMsg struct {
	Alert notify.Alert
}

func NewModel(repo storage.Repository, engine *notify.Engine, log zerolog.Logger) Model {
	return NewModelWithConfig(repo, engine, log, DefaultRuntimeConfig())
}

func NewModelWithConfig(repo storage.Repository, engine *notify.Engine, log zerolog.Logger, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView: ViewChecklist,
		Repo:        repo,
		Engine:      engine,
		Log:         log,
		Settings:    storage.DefaultSettings,
		Keys: GlobalKeyMap{
			Checklist: "1",
			Plan:      "2",
			Calendar:  "3",
			Events:    "4",
			Due:       "5",
			Help:      "?",
			Quit:      "q",
		},
		AlertHorizonDays: cfg.AlertHorizon,
		now:              time.Now,
	}
	m.Plan.Day = plan.StartOfDay(m.now())
	m.Calendar.Selected = m.Plan.Day
	m.initComponents()
	if repo != nil {
		if err := m.loadAll(); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			m.Log.Error().Err(err).Msg("initial load failed")
		}
	}
	m.refreshDerived()
	return m
}

func (m *Model) initComponents() {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "task title, e.g. finish essay est:90 pri:High"
	quickAdd.CharLimit = 200
	m.quickAddInput = quickAdd

	command := textinput.New()
	command.Placeholder = "add | event | done | del | plan | hours | import | export"
	command.CharLimit = 250
	m.commandInput = command

	m.eventsTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 18},
			{Title: "Title", Width: 24},
			{Title: "Where", Width: 14},
		}),
		table.WithHeight(8),
	)

	m.helpModel = help.New()
}

// refreshDerived rebuilds everything computed from the stored records:
// the day plan, the due feeds, and the events table.
func (m *Model) refreshDerived() {
	m.refreshPlan()
	m.refreshDue()
	m.syncEventsTable()
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if m.Checklist.Cursor >= len(m.Tasks) {
		m.Checklist.Cursor = len(m.Tasks) - 1
	}
	if m.Checklist.Cursor < 0 {
		m.Checklist.Cursor = 0
	}
	if m.EventsView.Cursor >= len(m.Events) {
		m.EventsView.Cursor = len(m.Events) - 1
	}
	if m.EventsView.Cursor < 0 {
		m.EventsView.Cursor = 0
	}
}

func (m Model) window() plan.Window {
	return m.windowFor(m.Settings)
}

func isKnownView(v View) bool {
	switch v {
	case ViewChecklist, ViewPlan, ViewCalendar, ViewEvents, ViewDue:
		return true
	default:
		return false
	}
}
