package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Event  func(EventArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	Del    func(DelArgs) (Result, error)
	Plan   func(PlanArgs) (Result, error)
	Hours  func(HoursArgs) (Result, error)
	Import func(ImportArgs) (Result, error)
	Export func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeEvent:
		if handlers.Event == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "event handler not configured"}
		}
		return handlers.Event(*cmd.Event)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDel:
		if handlers.Del == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "del handler not configured"}
		}
		return handlers.Del(*cmd.Del)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "plan handler not configured"}
		}
		return handlers.Plan(*cmd.Plan)
	case TypeHours:
		if handlers.Hours == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "hours handler not configured"}
		}
		return handlers.Hours(*cmd.Hours)
	case TypeImport:
		if handlers.Import == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "import handler not configured"}
		}
		return handlers.Import(*cmd.Import)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
