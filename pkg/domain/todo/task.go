// Package todo holds the task list domain: tasks, view filters and the errors
// shared by the store and the goal expansion flow.
package todo

import (
	"strings"
	"time"
)

// Task is a single to-do item. Only Completed changes after creation.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// NewTask builds an active task from user or AI supplied text.
// The text is trimmed; blank text is rejected with ErrEmptyText.
func NewTask(id, text string, now time.Time) (Task, error) {
	text = NormalizeText(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now.UnixMilli(),
	}, nil
}

// NormalizeText trims surrounding whitespace and folds newlines into spaces so
// a task always renders on one line.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// Created returns the creation time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Toggled returns a copy with the completion flag flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// ShortID returns the first eight characters of the ID for display.
func (t Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}
