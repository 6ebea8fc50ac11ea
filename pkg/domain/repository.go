package domain

import "github.com/felixgeelhaar/tasker/pkg/domain/todo"

// TaskRepository is the durable slot holding the whole task collection.
// LoadTasks returns an empty collection when nothing has been saved yet.
type TaskRepository interface {
	LoadTasks() ([]todo.Task, error)
	SaveTasks(tasks []todo.Task) error
}
