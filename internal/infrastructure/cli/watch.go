package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/felixgeelhaar/tasker/internal/infrastructure/watch"
	"github.com/felixgeelhaar/tasker/pkg/application"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/felixgeelhaar/tasker/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	watchFilter   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the task list and reprint it whenever it changes on disk",
	Long: `Watch the task file and reprint the list after every change made by
another tasker process. The watcher only reads; it never writes the file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ephemeral {
			return NewCLIError("watch needs the task file", "Run without --ephemeral", nil)
		}
		filter, err := todo.ParseFilter(watchFilter)
		if err != nil {
			return MapError(err)
		}
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr())
		repo := storage.NewFilesystemRepository(root)
		if err := repo.Initialize(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		render := func() {
			store := application.NewTaskStore(repo, logger)
			store.Load()
			printTaskList(out, store.List(filter), filter, store.ActiveCount())
		}

		w, err := watch.NewDirWatcher(
			repo.Dir(),
			watch.NewNameFilter([]string{storage.TasksFile}, []string{"*.tmp"}),
			watchDebounce,
			func(e watch.ChangeEvent) {
				logger.Debug("task file changed", "path", e.Path, "change", e.Kind)
				printWatchHeader(out, time.Now())
				render()
			},
		)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Watching %s for changes... (Ctrl+C to stop)\n\n", repo.StatePath())
		render()

		err = w.Run(cmd.Context())
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	},
}

func printWatchHeader(w io.Writer, at time.Time) {
	fmt.Fprintf(w, "\nTask list changed at %s\n", at.Format("15:04:05"))
}

func init() {
	watchCmd.Flags().StringVarP(&watchFilter, "filter", "f", "all", "Show all, active or completed tasks")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Quiet period before reprinting")
	RootCmd.AddCommand(watchCmd)
}
