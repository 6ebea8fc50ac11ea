package storage

import (
	"sync"

	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

// MemoryRepository keeps the collection in process memory. It backs the
// --ephemeral flag and stands in for the filesystem in tests.
type MemoryRepository struct {
	mu    sync.Mutex
	tasks []todo.Task
	saved bool

	LoadErr error
	SaveErr error
	Saves   int
}

func NewMemoryRepository(initial ...todo.Task) *MemoryRepository {
	r := &MemoryRepository{}
	if len(initial) > 0 {
		r.tasks = append([]todo.Task(nil), initial...)
		r.saved = true
	}
	return r
}

func (r *MemoryRepository) LoadTasks() ([]todo.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, &todo.StorageError{Op: todo.StorageOpRead, Err: r.LoadErr}
	}
	return append([]todo.Task{}, r.tasks...), nil
}

func (r *MemoryRepository) SaveTasks(tasks []todo.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saves++
	if r.SaveErr != nil {
		return &todo.StorageError{Op: todo.StorageOpWrite, Err: r.SaveErr}
	}
	r.tasks = append([]todo.Task{}, tasks...)
	r.saved = true
	return nil
}

// Snapshot returns what was last saved and whether anything was saved.
func (r *MemoryRepository) Snapshot() ([]todo.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]todo.Task{}, r.tasks...), r.saved
}

// SaveCount returns how many times SaveTasks was called.
func (r *MemoryRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Saves
}
