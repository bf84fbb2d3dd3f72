package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/plannerd/internal/commands"
	"github.com/sandeepkv93/plannerd/internal/ingest"
	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/plan"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add:    m.paletteAdd,
		Event:  m.paletteEvent,
		Done:   m.paletteDone,
		Del:    m.paletteDel,
		Plan:   m.palettePlan,
		Hours:  m.paletteHours,
		Import: m.paletteImport,
		Export: m.paletteExport,
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Log.Warn().Err(err).Str("input", raw).Msg("palette command failed")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	m.refreshDerived()

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m *Model) paletteAdd(a commands.AddArgs) (commands.Result, error) {
	parts := []string{a.Title}
	if a.Est > 0 {
		parts = append(parts, "est:"+strconv.Itoa(a.Est))
	}
	if a.Due != "" {
		parts = append(parts, "due:"+a.Due)
	}
	if a.Priority != "" {
		parts = append(parts, "pri:"+a.Priority)
	}
	if a.TimeOfDay != "" {
		parts = append(parts, "tod:"+a.TimeOfDay)
	}
	if a.Category != "" {
		parts = append(parts, "cat:"+a.Category)
	}
	if err := m.addTask(strings.Join(parts, " ")); err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
}

func (m *Model) paletteEvent(a commands.EventArgs) (commands.Result, error) {
	day, err := time.ParseInLocation("2006-01-02", a.Date, time.Local)
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad date %q", a.Date)}
	}
	start, end, err := parseTimeRangeOn(day, a.TimeRange)
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}

	ev := model.Event{
		ID:           model.NewID(),
		Title:        a.Title,
		Location:     a.Location,
		Start:        &start,
		End:          &end,
		RepeatWeekly: a.Weekly,
		CreatedAt:    m.now(),
	}
	if err := m.addEvent(ev); err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	return commands.Result{Message: fmt.Sprintf("added event: %s", a.Title)}, nil
}

func (m *Model) paletteDone(a commands.DoneArgs) (commands.Result, error) {
	idx, ok := m.findTask(a.Target)
	if !ok {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q", a.Target)}
	}
	if err := m.toggleTaskAt(idx); err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	state := "reopened"
	if m.Tasks[idx].Completed {
		state = "completed"
	}
	return commands.Result{Message: fmt.Sprintf("%s: %s", state, m.Tasks[idx].Title)}, nil
}

func (m *Model) paletteDel(a commands.DelArgs) (commands.Result, error) {
	switch a.Kind {
	case "event":
		idx, ok := findByNumberOrPrefix(len(m.Events), a.Target, func(i int) string { return m.Events[i].Title })
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no event matching %q", a.Target)}
		}
		title := m.Events[idx].Title
		if err := m.deleteEventAt(idx); err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		return commands.Result{Message: fmt.Sprintf("deleted event: %s", title)}, nil
	case "assignment":
		idx, ok := findByNumberOrPrefix(len(m.Assignments), a.Target, func(i int) string { return m.Assignments[i].Title })
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no assignment matching %q", a.Target)}
		}
		item := m.Assignments[idx]
		ctx, cancel := m.repoCtx()
		defer cancel()
		if err := m.Repo.DeleteAssignment(ctx, item.ID); err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		m.Assignments = append(m.Assignments[:idx], m.Assignments[idx+1:]...)
		return commands.Result{Message: fmt.Sprintf("deleted assignment: %s", item.Title)}, nil
	default:
		idx, ok := m.findTask(a.Target)
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q", a.Target)}
		}
		title := m.Tasks[idx].Title
		if err := m.deleteTaskAt(idx); err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		return commands.Result{Message: fmt.Sprintf("deleted task: %s", title)}, nil
	}
}

func (m *Model) palettePlan(a commands.PlanArgs) (commands.Result, error) {
	day, ok := parseDayToken(a.Day, m.now())
	if !ok {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad day %q", a.Day)}
	}
	m.Plan.Day = day
	m.Plan.Week = a.Week
	m.CurrentView = ViewPlan
	m.refreshPlan()
	scope := "day"
	if a.Week {
		scope = "week"
	}
	return commands.Result{Message: fmt.Sprintf("planned %s of %s", scope, day.Format("Jan 2"))}, nil
}

func (m *Model) paletteHours(a commands.HoursArgs) (commands.Result, error) {
	if err := m.saveHours(a.Start, a.End); err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	return commands.Result{Message: fmt.Sprintf("day window set to %02d:00-%02d:00", a.Start, a.End)}, nil
}

func (m *Model) paletteImport(a commands.ImportArgs) (commands.Result, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("read %s: %v", a.Path, err)}
	}

	if a.Kind == "syllabus" {
		found := ingest.ExtractAssignments(string(data), m.now())
		added, err := m.addAssignments(found)
		if err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		m.Log.Info().Str("file", a.Path).Int("found", len(found)).Int("added", added).Msg("syllabus imported")
		return commands.Result{Message: fmt.Sprintf("imported %d assignment(s) from %s", added, a.Path)}, nil
	}

	parsed, err := ingest.ParseScheduleFile(a.Path, data, m.now())
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	added := 0
	for _, ev := range parsed {
		if err := m.addEvent(ev); err != nil {
			m.Log.Warn().Err(err).Str("title", ev.Title).Msg("imported event skipped")
			continue
		}
		added++
	}
	m.Log.Info().Str("file", a.Path).Int("parsed", len(parsed)).Int("added", added).Msg("schedule imported")
	return commands.Result{Message: fmt.Sprintf("imported %d event(s) from %s", added, a.Path)}, nil
}

func (m *Model) paletteExport(a commands.ExportArgs) (commands.Result, error) {
	day, ok := parseDayToken(a.Day, m.now())
	if !ok {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad day %q", a.Day)}
	}
	blocks, err := plan.Build(m.Tasks, m.Events, day, m.window())
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}

	f, err := os.Create(a.Path)
	if err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("create %s: %v", a.Path, err)}
	}
	defer f.Close()
	if err := ingest.WriteICS(f, blocks, day); err != nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	m.Log.Info().Str("file", a.Path).Int("blocks", len(blocks)).Msg("plan exported")
	return commands.Result{Message: fmt.Sprintf("exported %d block(s) to %s", len(blocks), a.Path)}, nil
}

func (m Model) findTask(target string) (int, bool) {
	return findByNumberOrPrefix(len(m.Tasks), target, func(i int) string { return m.Tasks[i].Title })
}

// findByNumberOrPrefix resolves "3" to the third item, otherwise the
// first item whose title starts with the target, case-insensitive.
func findByNumberOrPrefix(n int, target string, title func(int) string) (int, bool) {
	if num, err := strconv.Atoi(strings.TrimSpace(target)); err == nil {
		if num >= 1 && num <= n {
			return num - 1, true
		}
		return 0, false
	}
	needle := strings.ToLower(strings.TrimSpace(target))
	for i := 0; i < n; i++ {
		if strings.HasPrefix(strings.ToLower(title(i)), needle) {
			return i, true
		}
	}
	return 0, false
}

func parseTimeRangeOn(day time.Time, timeRange string) (time.Time, time.Time, error) {
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("bad time range %q", timeRange)
	}
	start, err := clockOn(day, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := clockOn(day, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range %q ends before it starts", timeRange)
	}
	return start, end, nil
}

func clockOn(day time.Time, clock string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("bad time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h > 23 {
		return time.Time{}, fmt.Errorf("bad hour in %q", clock)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min > 59 {
		return time.Time{}, fmt.Errorf("bad minute in %q", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, min, 0, 0, day.Location()), nil
}
