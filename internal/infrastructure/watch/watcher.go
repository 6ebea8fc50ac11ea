package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is the quiet period used when NewDirWatcher gets zero.
const DefaultSettle = 200 * time.Millisecond

// ChangeKind classifies the last filesystem operation seen on a file.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "create"
	ChangeWritten ChangeKind = "write"
	ChangeRemoved ChangeKind = "remove"
	ChangeRenamed ChangeKind = "rename"
)

// ChangeEvent represents a settled change to a watched file.
type ChangeEvent struct {
	Path string
	Kind ChangeKind
}

// DirWatcher watches a single directory and reports debounced changes to the
// files its filter accepts. Atomic saves show up as a create of the target.
type DirWatcher struct {
	fs       *fsnotify.Watcher
	settle   time.Duration
	filter   *NameFilter
	onChange func(ChangeEvent)
}

// NewDirWatcher starts watching dir. The directory must already exist.
func NewDirWatcher(dir string, filter *NameFilter, settle time.Duration, onChange func(ChangeEvent)) (*DirWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &DirWatcher{fs: fs, settle: settle, filter: filter, onChange: onChange}, nil
}

// Run delivers settled changes until ctx is done, then closes the watcher.
func (w *DirWatcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	debouncer := NewDebouncer(w.settle, w.deliver)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e, keep := w.accept(event); keep {
				debouncer.Trigger(e)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *DirWatcher) accept(event fsnotify.Event) (ChangeEvent, bool) {
	kind := kindOf(event.Op)
	if kind == "" || !w.filter.Matches(event.Name) {
		return ChangeEvent{}, false
	}
	return ChangeEvent{Path: event.Name, Kind: kind}, true
}

func (w *DirWatcher) deliver(e ChangeEvent) {
	if w.onChange != nil {
		w.onChange(e)
	}
}

// kindOf ignores chmod-only events.
func kindOf(op fsnotify.Op) ChangeKind {
	switch {
	case op.Has(fsnotify.Create):
		return ChangeCreated
	case op.Has(fsnotify.Write):
		return ChangeWritten
	case op.Has(fsnotify.Remove):
		return ChangeRemoved
	case op.Has(fsnotify.Rename):
		return ChangeRenamed
	}
	return ""
}
