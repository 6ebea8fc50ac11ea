package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/tasker/internal/infrastructure/config"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/logging"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/wiring"
)

func getWorkspaceRoot() (string, error) {
	root, err := config.ResolveRoot(rootPath)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid workspace path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace path %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace path %q is not a directory", abs)
	}
	return abs, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return logging.New(w, logging.Level(verbose || config.DebugEnabled()))
}

func loadServices(logger *slog.Logger) (*wiring.AppServices, error) {
	root, err := getWorkspaceRoot()
	if err != nil {
		return nil, err
	}
	services, err := wiring.BuildAppServices(root, wiring.Options{
		Ephemeral: ephemeral,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, nil
}
