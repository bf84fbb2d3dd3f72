// Package commands parses and dispatches command-palette input.
// Parsing is pure: handlers supplied by the caller do the work.
package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEvent  Type = "event"
	TypeDone   Type = "done"
	TypeDel    Type = "del"
	TypePlan   Type = "plan"
	TypeHours  Type = "hours"
	TypeImport Type = "import"
	TypeExport Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs describes a new checklist task. Flags ride along as
// key:value tokens, e.g. "add Essay draft est:90 pri:High tod:Morning".
type AddArgs struct {
	Title     string
	Est       int
	Due       string
	Priority  string
	TimeOfDay string
	Category  string
}

// EventArgs describes a new calendar event, e.g.
// "event Algorithms 2026-03-04 9:00-10:15 at:Hall 3 weekly".
type EventArgs struct {
	Title     string
	Date      string
	TimeRange string
	Location  string
	Weekly    bool
}

type DoneArgs struct {
	Target string
}

type DelArgs struct {
	Kind   string
	Target string
}

type PlanArgs struct {
	Day  string
	Week bool
}

type HoursArgs struct {
	Start int
	End   int
}

type ImportArgs struct {
	Kind string
	Path string
}

type ExportArgs struct {
	Path string
	Day  string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Event  *EventArgs
	Done   *DoneArgs
	Del    *DelArgs
	Plan   *PlanArgs
	Hours  *HoursArgs
	Import *ImportArgs
	Export *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEvent:
		return parseEvent(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDel:
		return parseDel(input, args)
	case TypePlan:
		return parsePlan(input, args)
	case TypeHours:
		return parseHours(input, args)
	case TypeImport:
		return parseImport(input, args)
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := splitFlag(arg)
		if !ok {
			title = append(title, arg)
			continue
		}
		switch key {
		case "est":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("est must be minutes: %q", value)}
			}
			out.Est = n
		case "due":
			out.Due = value
		case "pri":
			out.Priority = value
		case "tod":
			out.TimeOfDay = value
		case "cat":
			out.Category = value
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

var (
	dateArgRE      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRangeArgRE = regexp.MustCompile(`^\d{1,2}:\d{2}-\d{1,2}:\d{2}$`)
)

func parseEvent(raw string, args []string) (Command, error) {
	out := EventArgs{}
	title := make([]string, 0, len(args))
	location := make([]string, 0)
	inLocation := false
	for _, arg := range args {
		switch {
		case dateArgRE.MatchString(arg):
			out.Date = arg
			inLocation = false
		case timeRangeArgRE.MatchString(arg):
			out.TimeRange = arg
			inLocation = false
		case strings.EqualFold(arg, "weekly"):
			out.Weekly = true
			inLocation = false
		case strings.HasPrefix(strings.ToLower(arg), "at:"):
			inLocation = true
			if v := arg[len("at:"):]; v != "" {
				location = append(location, v)
			}
		case inLocation:
			location = append(location, arg)
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	out.Location = strings.TrimSpace(strings.Join(location, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "event requires a title"}
	}
	if out.Date == "" || out.TimeRange == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "event requires a YYYY-MM-DD date and a H:MM-H:MM range"}
	}
	return Command{Type: TypeEvent, Raw: raw, Event: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task number or title prefix"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.Join(args, " ")}}, nil
}

func parseDel(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "del requires a target"}
	}
	kind := "task"
	switch strings.ToLower(args[0]) {
	case "task", "event", "assignment":
		kind = strings.ToLower(args[0])
		args = args[1:]
	}
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "del requires a number or title prefix"}
	}
	return Command{Type: TypeDel, Raw: raw, Del: &DelArgs{Kind: kind, Target: strings.Join(args, " ")}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	out := PlanArgs{Day: "today"}
	for _, arg := range args {
		if strings.EqualFold(arg, "week") {
			out.Week = true
			continue
		}
		out.Day = strings.ToLower(arg)
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &out}, nil
}

func parseHours(raw string, args []string) (Command, error) {
	fields := args
	if len(fields) == 1 && strings.Contains(fields[0], "-") {
		fields = strings.SplitN(fields[0], "-", 2)
	}
	if len(fields) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "hours requires start and end, e.g. hours 7 21"}
	}
	start, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad start hour %q", fields[0])}
	}
	end, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad end hour %q", fields[1])}
	}
	return Command{Type: TypeHours, Raw: raw, Hours: &HoursArgs{Start: start, End: end}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	kind := "schedule"
	if strings.EqualFold(args[0], "syllabus") || strings.EqualFold(args[0], "schedule") {
		kind = strings.ToLower(args[0])
		args = args[1:]
	}
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Kind: kind, Path: strings.Join(args, " ")}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a file path"}
	}
	out := ExportArgs{Path: args[0], Day: "today"}
	if len(args) > 1 {
		out.Day = strings.ToLower(strings.Join(args[1:], " "))
	}
	return Command{Type: TypeExport, Raw: raw, Export: &out}, nil
}

func splitFlag(arg string) (key, value string, ok bool) {
	i := strings.Index(arg, ":")
	if i <= 0 || i == len(arg)-1 {
		return "", "", false
	}
	return strings.ToLower(arg[:i]), arg[i+1:], true
}
