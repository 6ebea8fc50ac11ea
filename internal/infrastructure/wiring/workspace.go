package wiring

import (
	"log/slog"
	"path/filepath"

	"github.com/felixgeelhaar/tasker/pkg/domain"
	"github.com/felixgeelhaar/tasker/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Root   string
	Files  *storage.FilesystemRepository
	Repo   domain.TaskRepository
	Logger *slog.Logger
}

// NewWorkspace opens the task slot under root. With ephemeral set, tasks live
// only in memory while ai.yaml is still read from root.
func NewWorkspace(root string, ephemeral bool, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	files := storage.NewFilesystemRepository(root)

	var repo domain.TaskRepository = files
	if ephemeral {
		repo = storage.NewMemoryRepository()
	}

	return &Workspace{
		Root:   root,
		Files:  files,
		Repo:   repo,
		Logger: logger,
	}
}

// LogPath returns the log file used by the terminal UI.
func (w *Workspace) LogPath() string {
	return filepath.Join(w.Files.Dir(), storage.LogFile)
}
