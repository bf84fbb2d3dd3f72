package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/views"
)

func (m *Model) refreshPlan() {
	w := m.window()
	blocks, err := plan.Build(m.Tasks, m.Events, m.Plan.Day, w)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Plan.Blocks = nil
		return
	}
	m.Plan.Blocks = blocks

	if !m.Plan.Week {
		m.Plan.WeekBlocks = nil
		return
	}
	weekStart := m.Plan.Day.AddDate(0, 0, -int(m.Plan.Day.Weekday()))
	m.Plan.WeekBlocks = make([][]plan.Block, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		dayBlocks, buildErr := plan.Build(m.Tasks, m.Events, day, w)
		if buildErr != nil {
			continue
		}
		m.Plan.WeekBlocks[i] = dayBlocks
	}
}

func (m Model) handlePlanKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "[", "h":
		m.Plan.Day = m.Plan.Day.AddDate(0, 0, -1)
		m.refreshPlan()
	case "]", "l":
		m.Plan.Day = m.Plan.Day.AddDate(0, 0, 1)
		m.refreshPlan()
	case "t":
		m.Plan.Day = plan.StartOfDay(m.now())
		m.refreshPlan()
	case "w":
		m.Plan.Week = !m.Plan.Week
		m.refreshPlan()
	}
	return m
}

func (m Model) renderPlanView() string {
	if m.Plan.Week {
		weekStart := m.Plan.Day.AddDate(0, 0, -int(m.Plan.Day.Weekday()))
		days := make([]views.TimelinePanelData, 0, 7)
		for i, blocks := range m.Plan.WeekBlocks {
			days = append(days, m.timelineData(weekStart.AddDate(0, 0, i), blocks))
		}
		return views.RenderWeekPanel(days)
	}
	return views.RenderTimelinePanel(m.timelineData(m.Plan.Day, m.Plan.Blocks))
}

func (m Model) timelineData(day time.Time, blocks []plan.Block) views.TimelinePanelData {
	out := views.TimelinePanelData{
		Day:    day.Format("Mon Jan 2"),
		Window: views.MinuteLabel(m.window().MinStart()) + "-" + views.MinuteLabel(m.window().MaxEnd()),
	}
	for _, b := range blocks {
		out.Blocks = append(out.Blocks, views.TimelineBlockData{
			Title: b.Title,
			Start: b.Start,
			End:   b.End,
			Kind:  string(b.Kind),
		})
	}
	return out
}
