package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/tasker/pkg/application"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantHint bool
	}{
		{"empty text", todo.ErrEmptyText, "task text is empty", true},
		{"invalid filter", fmt.Errorf("%w: someday", todo.ErrInvalidFilter), "unknown filter", true},
		{"empty goal", todo.ErrEmptyGoal, "Please enter a goal to break down.", true},
		{"empty generation", todo.ErrGenerationEmpty, "AI couldn't generate tasks. Try a more specific goal.", true},
		{"in flight", todo.ErrGenerationInFlight, "Already generating tasks. Please wait.", false},
		{"storage write", &todo.StorageError{Op: todo.StorageOpWrite, Err: errors.New("disk full")}, "Your changes could not be saved to disk.", true},
		{"storage read", &todo.StorageError{Op: todo.StorageOpRead, Err: errors.New("bad json")}, "saved tasks could not be read", true},
		{"not found", application.ErrTaskNotFound, "task not found", true},
		{"ambiguous", application.ErrAmbiguousID, "task id is ambiguous", true},
		{"generation", &todo.GenerationError{Kind: todo.FailureConfig, Err: errors.New("missing key")}, "Something went wrong with the AI service. Please check your API key.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			var cliErr *CLIError
			if !errors.As(mapped, &cliErr) {
				t.Fatalf("expected CLIError, got %T", mapped)
			}
			if cliErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", cliErr.Message, tt.wantMsg)
			}
			if (cliErr.Hint != "") != tt.wantHint {
				t.Errorf("hint = %q, wantHint %v", cliErr.Hint, tt.wantHint)
			}
			if !errors.Is(mapped, tt.err) {
				t.Error("mapped error must wrap the original")
			}
			if cliErr.ExitCode != 1 {
				t.Errorf("exit code = %d", cliErr.ExitCode)
			}
		})
	}
}

func TestMapError_PassThrough(t *testing.T) {
	if MapError(nil) != nil {
		t.Error("nil must stay nil")
	}
	plain := errors.New("boom")
	if MapError(plain) != plain {
		t.Error("unknown errors must pass through unchanged")
	}
}

func TestGenerationHint_ByKind(t *testing.T) {
	kinds := []todo.FailureKind{todo.FailureConfig, todo.FailureStatus, todo.FailureMalformed, todo.FailureSchema, todo.FailureTransport}
	for _, k := range kinds {
		if generationHint(k) == "" {
			t.Errorf("missing hint for %s", k)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, NewCLIError("task not found", "Run 'tasker list'", nil))
	if got := buf.String(); got != "Error: task not found\nHint: Run 'tasker list'\n" {
		t.Errorf("unexpected output: %q", got)
	}

	buf.Reset()
	printError(&buf, errors.New("boom"))
	if !strings.HasPrefix(buf.String(), "Error: boom") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
