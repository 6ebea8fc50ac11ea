package watch

import (
	"path/filepath"
)

// NameFilter selects files by base name. Exclude globs win over Include globs;
// an empty Include accepts every name that is not excluded.
type NameFilter struct {
	Include []string
	Exclude []string
}

// NewNameFilter creates a filter over base names.
func NewNameFilter(include, exclude []string) *NameFilter {
	return &NameFilter{
		Include: include,
		Exclude: exclude,
	}
}

// Matches reports whether the base name of path passes the filter.
func (f *NameFilter) Matches(path string) bool {
	if f == nil {
		return true
	}
	base := filepath.Base(path)

	for _, pattern := range f.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
