package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

func checkbox(t todo.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func printTask(w io.Writer, t todo.Task) {
	fmt.Fprintf(w, "  %s %s  %s\n", checkbox(t), t.ShortID(), t.Text)
}

// printTaskList renders the tasks for filter f followed by the remaining count.
func printTaskList(w io.Writer, tasks []todo.Task, f todo.Filter, active int) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, f.EmptyMessage())
	}
	for _, t := range tasks {
		printTask(w, t)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, todo.RemainingLabel(active))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
