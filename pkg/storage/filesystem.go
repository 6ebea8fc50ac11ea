package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

const StateDir = ".tasker"

// TasksFile is the single named slot holding the whole collection.
const TasksFile = "smart-tasker-todos.json"

const AIConfigFile = "ai.yaml"
const LogFile = "tasker.log"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// Dir returns the state directory under the root.
func (r *FilesystemRepository) Dir() string {
	return filepath.Join(r.root, StateDir)
}

// ResolvePath ensures the path is within the .tasker directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := r.Dir()
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Only direct children of the state directory are allowed.
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

// StatePath returns the path of the task collection file.
func (r *FilesystemRepository) StatePath() string {
	return filepath.Join(r.Dir(), TasksFile)
}

func (r *FilesystemRepository) Initialize() error {
	// G301: Use 0700 for directories
	if err := os.MkdirAll(r.Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", StateDir, err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(r.Dir())
	return err == nil
}

// LoadTasks reads the persisted collection. A missing file yields an empty
// collection. Transient read errors are retried; a corrupt file is not.
func (r *FilesystemRepository) LoadTasks() ([]todo.Task, error) {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return nil, &todo.StorageError{Op: todo.StorageOpRead, Err: err}
	}

	retryer := retry.New[[]byte](r.retryConfig)
	data, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return nil, &todo.StorageError{Op: todo.StorageOpRead, Err: fmt.Errorf("failed to read tasks file: %w", err)}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []todo.Task{}, nil
	}

	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &todo.StorageError{Op: todo.StorageOpRead, Err: fmt.Errorf("failed to unmarshal tasks: %w", err)}
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// SaveTasks overwrites the collection wholesale via a temp file and rename.
func (r *FilesystemRepository) SaveTasks(tasks []todo.Task) error {
	if err := r.saveTasks(tasks); err != nil {
		return &todo.StorageError{Op: todo.StorageOpWrite, Err: err}
	}
	return nil
}

func (r *FilesystemRepository) saveTasks(tasks []todo.Task) error {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return err
	}
	if err := r.Initialize(); err != nil {
		return err
	}

	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	tmpPath := path + ".tmp"
	// G306: Use 0600 for files
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write tasks file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename tasks file: %w", err)
	}
	return nil
}
