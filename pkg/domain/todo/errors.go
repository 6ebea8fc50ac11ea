package todo

import (
	"errors"
	"fmt"
)

// Domain errors for the task list and goal expansion.
var (
	// ErrEmptyText indicates a task was submitted with blank text.
	ErrEmptyText = errors.New("task text is empty")

	// ErrInvalidFilter indicates an unknown filter mode.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrEmptyGoal indicates goal expansion was requested with a blank goal.
	ErrEmptyGoal = errors.New("goal is empty")

	// ErrGenerationEmpty indicates the service answered but produced no tasks.
	ErrGenerationEmpty = errors.New("no tasks generated")

	// ErrGenerationFailed is the single condition callers see for any
	// transport, status, parsing or schema failure during expansion.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrGenerationInFlight indicates a second expansion was started while one
	// was still outstanding.
	ErrGenerationInFlight = errors.New("generation already in progress")

	// ErrStorageRead indicates persisted tasks could not be read or parsed.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite indicates the collection could not be persisted.
	ErrStorageWrite = errors.New("storage write failed")
)

// StorageOp names the storage operation that failed.
type StorageOp string

const (
	StorageOpRead  StorageOp = "read"
	StorageOpWrite StorageOp = "write"
)

// StorageError wraps a failure of the durable task slot.
type StorageError struct {
	Op  StorageOp
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrStorageRead or ErrStorageWrite by operation.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrStorageRead:
		return e.Op == StorageOpRead
	case ErrStorageWrite:
		return e.Op == StorageOpWrite
	}
	return false
}

// FailureKind classifies a generation failure for diagnostics.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureMalformed FailureKind = "malformed"
	FailureSchema    FailureKind = "schema"
	FailureConfig    FailureKind = "config"
)

// GenerationError carries the kind of failure behind ErrGenerationFailed.
type GenerationError struct {
	Kind FailureKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Kind)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrGenerationFailed) for every kind.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
