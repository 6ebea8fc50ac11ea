package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommandFlags restores every flag to its default so package-level flag
// variables do not leak between Execute calls.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher's callback goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLIContext(ctx context.Context, t *testing.T, root, stdin string, args ...string) cliResult {
	t.Helper()
	resetCommandFlags(RootCmd)
	t.Setenv("TASKER_HOME", "")

	out, errOut := &syncBuffer{}, &syncBuffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(errOut)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(append([]string{"--root", root}, args...))

	err := RootCmd.ExecuteContext(ctx)
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func runCLI(t *testing.T, root string, args ...string) cliResult {
	t.Helper()
	return runCLIContext(context.Background(), t, root, "", args...)
}

// useMockAI routes goal expansion to the offline mock provider.
func useMockAI(t *testing.T) {
	t.Helper()
	t.Setenv("TASKER_AI_PROVIDER", "mock")
	t.Setenv("TASKER_AI_MODEL", "")
}

func listTasks(t *testing.T, root string, filter string) []todo.Task {
	t.Helper()
	res := runCLI(t, root, "list", "--json", "--filter", filter)
	if res.err != nil {
		t.Fatalf("list --json: %v", res.err)
	}
	var tasks []todo.Task
	if err := json.Unmarshal([]byte(res.stdout), &tasks); err != nil {
		t.Fatalf("decode list output %q: %v", res.stdout, err)
	}
	return tasks
}
