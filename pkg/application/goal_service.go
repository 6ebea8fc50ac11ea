package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

// GenerationResult is the outcome of a successful goal expansion.
type GenerationResult struct {
	Tasks []todo.Task
	// Warning is set when the tasks were added but could not be saved.
	Warning string
}

// GoalService runs goal expansion against the store, allowing one request at
// a time.
type GoalService struct {
	store    *TaskStore
	expander *GoalExpander
	logger   *slog.Logger

	mu      sync.Mutex
	machine *todo.GenerationMachine
}

func NewGoalService(store *TaskStore, expander *GoalExpander, logger *slog.Logger) (*GoalService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	machine, err := todo.NewGenerationMachine()
	if err != nil {
		return nil, err
	}
	return &GoalService{
		store:    store,
		expander: expander,
		logger:   logger,
		machine:  machine,
	}, nil
}

// Generating reports whether an expansion is outstanding.
func (s *GoalService) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Generating()
}

// GenerateFromGoal expands the goal and prepends the resulting tasks as one
// block. On any failure the store is left unchanged.
func (s *GoalService) GenerateFromGoal(ctx context.Context, goal string) (GenerationResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return GenerationResult{}, todo.ErrEmptyGoal
	}

	if err := s.begin(); err != nil {
		s.logger.Debug("generation rejected", "reason", err)
		return GenerationResult{}, err
	}
	defer s.finish()

	texts, err := s.expander.Expand(ctx, goal)
	if err != nil {
		return GenerationResult{}, err
	}
	if len(texts) == 0 {
		return GenerationResult{}, todo.ErrGenerationEmpty
	}

	tasks, err := s.store.AddBatch(texts)
	if len(tasks) == 0 && err == nil {
		return GenerationResult{}, todo.ErrGenerationEmpty
	}
	result := GenerationResult{Tasks: tasks}
	if err != nil {
		if !errors.Is(err, todo.ErrStorageWrite) {
			return GenerationResult{}, err
		}
		result.Warning = UserMessage(err)
	}
	s.logger.Info("tasks generated from goal", "count", len(tasks))
	return result, nil
}

func (s *GoalService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Begin()
}

func (s *GoalService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.Finish()
}

// UserMessage maps an error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, todo.ErrEmptyGoal):
		return "Please enter a goal to break down."
	case errors.Is(err, todo.ErrGenerationEmpty):
		return "AI couldn't generate tasks. Try a more specific goal."
	case errors.Is(err, todo.ErrGenerationInFlight):
		return "Already generating tasks. Please wait."
	case errors.Is(err, todo.ErrGenerationFailed):
		return "Something went wrong with the AI service. Please check your API key."
	case errors.Is(err, todo.ErrStorageWrite):
		return "Your changes could not be saved to disk."
	case errors.Is(err, todo.ErrStorageRead):
		return "Saved tasks could not be read. Starting with an empty list."
	case errors.Is(err, todo.ErrEmptyText):
		return "Please enter a task."
	case errors.Is(err, todo.ErrInvalidFilter):
		return "Unknown filter. Use all, active or completed."
	default:
		return err.Error()
	}
}
