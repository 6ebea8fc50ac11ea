package application

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/tasker/pkg/domain"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/google/uuid"
)

// ErrAmbiguousID is returned by ResolveID when a prefix matches several tasks.
var ErrAmbiguousID = errors.New("ambiguous task id")

// ErrTaskNotFound is returned by ResolveID when nothing matches.
var ErrTaskNotFound = errors.New("task not found")

// TaskStoreOption configures a TaskStore.
type TaskStoreOption func(*TaskStore)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) TaskStoreOption {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithIDGenerator overrides the task identifier source.
func WithIDGenerator(newID func() string) TaskStoreOption {
	return func(s *TaskStore) {
		s.newID = newID
	}
}

// TaskStore owns the task collection and the current view filter. Every
// mutation persists the whole collection before returning.
type TaskStore struct {
	mu     sync.RWMutex
	repo   domain.TaskRepository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	tasks  []todo.Task
	filter todo.Filter
}

func NewTaskStore(repo domain.TaskRepository, logger *slog.Logger, opts ...TaskStoreOption) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskStore{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		tasks:  []todo.Task{},
		filter: todo.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. Unreadable
// or corrupt data yields an empty collection; the failure is only logged.
func (s *TaskStore) Load() {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		s.logger.Warn("failed to load tasks, starting empty", "error", err)
		tasks = nil
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	s.logger.Debug("tasks loaded", "count", len(tasks))
}

// Add prepends a new active task. Blank text changes nothing and returns
// todo.ErrEmptyText.
func (s *TaskStore) Add(text string) (todo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := todo.NewTask(s.newID(), text, s.now())
	if err != nil {
		return todo.Task{}, err
	}

	s.tasks = append([]todo.Task{task}, s.tasks...)
	return task, s.persist("add")
}

// AddBatch prepends the non-blank texts as one block, keeping their order.
// All tasks in the batch share a creation time.
func (s *TaskStore) AddBatch(texts []string) ([]todo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	batch := make([]todo.Task, 0, len(texts))
	for _, text := range texts {
		task, err := todo.NewTask(s.newID(), text, now)
		if err != nil {
			continue
		}
		batch = append(batch, task)
	}
	if len(batch) == 0 {
		return nil, nil
	}

	s.tasks = append(batch, s.tasks...)
	return batch, s.persist("add_batch")
}

// Toggle flips the completion flag. An unknown id is a no-op reported as false.
func (s *TaskStore) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i] = s.tasks[i].Toggled()
	return true, s.persist("toggle")
}

// Delete removes the task. An unknown id is a no-op reported as false.
func (s *TaskStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true, s.persist("delete")
}

// ClearCompleted removes every completed task and returns how many went.
func (s *TaskStore) ClearCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]todo.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.persist("clear_completed")
}

// SetFilter changes the view filter. It is never persisted.
func (s *TaskStore) SetFilter(f todo.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", todo.ErrInvalidFilter, string(f))
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return nil
}

func (s *TaskStore) Filter() todo.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// View yields the tasks matching f in collection order. The sequence reads
// a snapshot taken when View is called and filters as it is consumed.
func (s *TaskStore) View(f todo.Filter) iter.Seq[todo.Task] {
	snapshot := s.snapshot()
	return func(yield func(todo.Task) bool) {
		for _, t := range snapshot {
			if !f.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// List collects View(f).
func (s *TaskStore) List(f todo.Filter) []todo.Task {
	out := []todo.Task{}
	for t := range s.View(f) {
		out = append(out, t)
	}
	return out
}

// Visible lists the tasks under the current filter.
func (s *TaskStore) Visible() []todo.Task {
	return s.List(s.Filter())
}

// ActiveCount counts incomplete tasks regardless of the current filter.
func (s *TaskStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

func (s *TaskStore) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks) - s.activeLocked()
}

// HasCompleted reports whether ClearCompleted would remove anything.
func (s *TaskStore) HasCompleted() bool {
	return s.CompletedCount() > 0
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *TaskStore) Get(id string) (todo.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return todo.Task{}, false
	}
	return s.tasks[i], true
}

// ResolveID expands a unique id prefix to the full task id. An exact match
// always wins.
func (s *TaskStore) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrTaskNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for _, t := range s.tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, prefix, len(matches))
	}
}

func (s *TaskStore) snapshot() []todo.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]todo.Task(nil), s.tasks...)
}

func (s *TaskStore) activeLocked() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection. The caller holds the write lock. On
// failure the in-memory change stands and the error is returned.
func (s *TaskStore) persist(op string) error {
	if err := s.repo.SaveTasks(s.tasks); err != nil {
		s.logger.Error("failed to persist tasks", "op", op, "count", len(s.tasks), "error", err)
		var se *todo.StorageError
		if errors.As(err, &se) {
			return err
		}
		return &todo.StorageError{Op: todo.StorageOpWrite, Err: err}
	}
	s.logger.Debug("tasks persisted", "op", op, "count", len(s.tasks))
	return nil
}
