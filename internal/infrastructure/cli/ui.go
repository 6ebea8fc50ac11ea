package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/config"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/logging"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Interactive task list",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := uiLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		services, err := loadServices(logger)
		if err != nil {
			return err
		}
		if os.Getenv("TASKER_SKIP_UI_RUN") == "true" {
			return nil
		}

		m := newUIModel(cmd.Context(), services.Store, services.Goals)
		p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("ui run failed: %w", err)
		}
		return nil
	},
}

// uiLogger writes to the state directory log file since the screen belongs to
// the program. Ephemeral sessions leave no trace on disk.
func uiLogger() (*slog.Logger, func(), error) {
	if ephemeral {
		return logging.Discard(), func() {}, nil
	}
	root, err := getWorkspaceRoot()
	if err != nil {
		return nil, nil, err
	}
	ws := wiring.NewWorkspace(root, false, nil)
	if err := ws.Files.Initialize(); err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.OpenFile(ws.LogPath(), logging.Level(verbose || config.DebugEnabled()))
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

func init() {
	RootCmd.AddCommand(uiCmd)
}
