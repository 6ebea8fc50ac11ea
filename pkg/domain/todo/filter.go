package todo

import (
	"fmt"
	"strings"
)

// Filter is a view-only partition of tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "ALL"
	FilterActive    Filter = "ACTIVE"
	FilterCompleted Filter = "COMPLETED"
)

// AllFilters returns the filter modes in display order.
func AllFilters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter accepts a filter name in any case. An empty value means ALL.
func ParseFilter(value string) (Filter, error) {
	switch Filter(strings.ToUpper(strings.TrimSpace(value))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, value)
	}
}

// IsValid returns true for one of the three known modes.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether the task belongs in this view.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Label is the title-cased name shown on filter tabs.
func (f Filter) Label() string {
	s := string(f)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// EmptyMessage is shown when the filtered view has no tasks.
func (f Filter) EmptyMessage() string {
	switch f {
	case FilterCompleted:
		return "No completed tasks yet."
	case FilterActive:
		return "No active tasks. Good job!"
	default:
		return "Your list is empty. Add a task to get started."
	}
}

func (f Filter) String() string {
	return string(f)
}

// RemainingLabel renders the active task counter.
func RemainingLabel(n int) string {
	if n == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", n)
}
