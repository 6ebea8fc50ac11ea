package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/tasker/pkg/ai"
	"github.com/felixgeelhaar/tasker/pkg/application"
	domainai "github.com/felixgeelhaar/tasker/pkg/domain/ai"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/felixgeelhaar/tasker/pkg/storage"
)

// blockingProvider holds Complete open until release is closed.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) ID() string { return "blocking" }

func (p *blockingProvider) Complete(ctx context.Context, req domainai.CompletionRequest) (*domainai.CompletionResponse, error) {
	close(p.started)
	select {
	case <-p.release:
		return &domainai.CompletionResponse{Text: `["slow task"]`}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newGoalService(t *testing.T, provider domainai.Provider, repo *storage.MemoryRepository) (*application.GoalService, *application.TaskStore) {
	t.Helper()
	store := newTestStore(t, repo)
	svc, err := application.NewGoalService(store, application.NewGoalExpander(provider, nil, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	return svc, store
}

func TestGoalService_GeneratePrependsBatch(t *testing.T) {
	repo := storage.NewMemoryRepository()
	svc, store := newGoalService(t, &ai.MockProvider{Text: `["Book flights","Reserve hotel","Pack bags"]`}, repo)
	_, _ = store.Add("existing")

	result, err := svc.GenerateFromGoal(context.Background(), "Plan a trip")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Tasks) != 3 || result.Warning != "" {
		t.Errorf("result = %+v", result)
	}
	got := texts(store.List(todo.FilterAll))
	want := []string{"Book flights", "Reserve hotel", "Pack bags", "existing"}
	if !equalStrings(got, want) {
		t.Errorf("store = %v, want %v", got, want)
	}
	if svc.Generating() {
		t.Error("flag should be cleared after completion")
	}
}

func TestGoalService_EmptyGoal(t *testing.T) {
	provider := &ai.MockProvider{}
	svc, _ := newGoalService(t, provider, storage.NewMemoryRepository())

	if _, err := svc.GenerateFromGoal(context.Background(), "  "); !errors.Is(err, todo.ErrEmptyGoal) {
		t.Errorf("err = %v, want ErrEmptyGoal", err)
	}
	if provider.Calls() != 0 {
		t.Error("blank goal must not call the provider")
	}
}

func TestGoalService_EmptyResult(t *testing.T) {
	repo := storage.NewMemoryRepository()
	svc, store := newGoalService(t, &ai.MockProvider{Text: `"not a list"`}, repo)

	_, err := svc.GenerateFromGoal(context.Background(), "vague")
	if !errors.Is(err, todo.ErrGenerationEmpty) {
		t.Fatalf("err = %v, want ErrGenerationEmpty", err)
	}
	if store.Len() != 0 || repo.SaveCount() != 0 {
		t.Error("empty result must leave the store untouched")
	}
	if application.UserMessage(err) != "AI couldn't generate tasks. Try a more specific goal." {
		t.Errorf("message = %q", application.UserMessage(err))
	}
	if svc.Generating() {
		t.Error("flag should be cleared after empty result")
	}
}

func TestGoalService_FailureLeavesStoreUnchanged(t *testing.T) {
	repo := storage.NewMemoryRepository()
	svc, store := newGoalService(t, &ai.MockProvider{Err: errors.New("network down")}, repo)
	_, _ = store.Add("keep me")
	saves := repo.SaveCount()

	_, err := svc.GenerateFromGoal(context.Background(), "anything")
	if !errors.Is(err, todo.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if !equalStrings(texts(store.List(todo.FilterAll)), []string{"keep me"}) {
		t.Error("store changed after failure")
	}
	if repo.SaveCount() != saves {
		t.Error("failure must not write")
	}
	if svc.Generating() {
		t.Error("flag should be cleared after failure")
	}
}

func TestGoalService_RejectsOverlappingRequests(t *testing.T) {
	provider := &blockingProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc, store := newGoalService(t, provider, storage.NewMemoryRepository())

	done := make(chan error, 1)
	go func() {
		_, err := svc.GenerateFromGoal(context.Background(), "first")
		done <- err
	}()

	select {
	case <-provider.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the provider")
	}
	if !svc.Generating() {
		t.Error("Generating should be true while a request is outstanding")
	}

	if _, err := svc.GenerateFromGoal(context.Background(), "second"); !errors.Is(err, todo.ErrGenerationInFlight) {
		t.Errorf("overlapping err = %v, want ErrGenerationInFlight", err)
	}

	close(provider.release)
	if err := <-done; err != nil {
		t.Fatalf("first request: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	if svc.Generating() {
		t.Error("flag should be cleared")
	}
}

func TestGoalService_WriteFailureBecomesWarning(t *testing.T) {
	repo := storage.NewMemoryRepository()
	svc, store := newGoalService(t, &ai.MockProvider{Text: `["a","b"]`}, repo)
	repo.SaveErr = errors.New("read-only filesystem")

	result, err := svc.GenerateFromGoal(context.Background(), "goal")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if result.Warning == "" {
		t.Error("expected a save warning")
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{todo.ErrEmptyGoal, "Please enter a goal to break down."},
		{todo.ErrGenerationEmpty, "AI couldn't generate tasks. Try a more specific goal."},
		{&todo.GenerationError{Kind: todo.FailureStatus}, "Something went wrong with the AI service. Please check your API key."},
		{todo.ErrGenerationInFlight, "Already generating tasks. Please wait."},
		{&todo.StorageError{Op: todo.StorageOpWrite, Err: errors.New("x")}, "Your changes could not be saved to disk."},
	}
	for _, tt := range tests {
		if got := application.UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
