package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "service=tasker") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLevel(t *testing.T) {
	if Level(true) != slog.LevelDebug {
		t.Error("verbose should select DEBUG")
	}
	if Level(false) != slog.LevelWarn {
		t.Error("default should be WARN")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"unknown", "WARN"},
		{"", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input).String()
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasker.log")
	l, closer, err := OpenFile(path, slog.LevelDebug)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestOpenFileMissingDir(t *testing.T) {
	if _, _, err := OpenFile(filepath.Join(t.TempDir(), "nope", "x.log"), slog.LevelDebug); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
