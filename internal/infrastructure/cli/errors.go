package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tasker/pkg/application"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var genErr *todo.GenerationError
	if errors.As(err, &genErr) {
		return NewCLIError(application.UserMessage(err), generationHint(genErr.Kind), err)
	}

	switch {
	case errors.Is(err, todo.ErrEmptyText):
		return NewCLIError("task text is empty", "Pass the task text, e.g. 'tasker add Buy milk'", err)
	case errors.Is(err, todo.ErrInvalidFilter):
		return NewCLIError("unknown filter", "Use --filter all, active or completed", err)
	case errors.Is(err, todo.ErrEmptyGoal):
		return NewCLIError(application.UserMessage(err), "e.g. 'tasker generate Plan a weekend trip'", err)
	case errors.Is(err, todo.ErrGenerationEmpty):
		return NewCLIError(application.UserMessage(err), "Name a concrete outcome, e.g. 'Run a 10k in May'", err)
	case errors.Is(err, todo.ErrGenerationInFlight):
		return NewCLIError(application.UserMessage(err), "", err)
	case errors.Is(err, todo.ErrStorageWrite):
		return NewCLIError(application.UserMessage(err), "Check that the .tasker directory is writable", err)
	case errors.Is(err, todo.ErrStorageRead):
		return NewCLIError("saved tasks could not be read", "Inspect .tasker/smart-tasker-todos.json or remove it to start fresh", err)
	case errors.Is(err, application.ErrTaskNotFound):
		return NewCLIError("task not found", "Run 'tasker list' to see task ids", err)
	case errors.Is(err, application.ErrAmbiguousID):
		return NewCLIError("task id is ambiguous", "Use more characters of the id shown by 'tasker list'", err)
	}

	return err
}

func generationHint(kind todo.FailureKind) string {
	switch kind {
	case todo.FailureConfig:
		return "Set GEMINI_API_KEY (or API_KEY), or pick another provider with 'tasker ai configure'"
	case todo.FailureStatus:
		return "Check the API key and model with 'tasker ai show'"
	case todo.FailureMalformed, todo.FailureSchema:
		return "The model returned an unexpected answer; try again or rephrase the goal"
	default:
		return "Check your network connection and try again"
	}
}
