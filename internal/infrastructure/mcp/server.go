package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tasker/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/tasker/pkg/application"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

type Server struct {
	mcpServer *mcp.Server
	store     *application.TaskStore
	goals     *application.GoalService
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted; only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// NewServer exposes the task store and goal expansion as MCP tools.
func NewServer(services *wiring.AppServices) (*Server, error) {
	if services == nil || services.Store == nil || services.Goals == nil {
		return nil, fmt.Errorf("services initialization returned nil")
	}

	info := mcp.ServerInfo{
		Name:    "tasker",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Tasker MCP Server"),
			mcp.WithDescription("Tasker exposes a personal to-do list with AI goal breakdown to MCP clients."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/tasker"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to add, toggle, delete and list tasks, or break a goal down into tasks with tasker_generate."),
		),
		store: services.Store,
		goals: services.Goals,
	}

	s.registerTools()
	s.registerTasksResource()
	s.registerSchemaResource()
	return s, nil
}

type AddArgs struct {
	Text string `json:"text" jsonschema:"description=The task text"`
}

type TaskIDArgs struct {
	ID string `json:"id" jsonschema:"description=Task id or a unique prefix of it"`
}

type ListArgs struct {
	Filter string `json:"filter,omitempty" jsonschema:"description=all, active or completed (default all)"`
}

type GenerateArgs struct {
	Goal string `json:"goal" jsonschema:"description=A goal to break down into 3 to 6 tasks"`
}

// TaskView is the JSON shape of a task returned to clients.
type TaskView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

type ListResult struct {
	Filter    string     `json:"filter"`
	Tasks     []TaskView `json:"tasks"`
	Remaining string     `json:"remaining"`
	Empty     string     `json:"empty_message,omitempty"`
}

type GenerateResult struct {
	Tasks   []TaskView `json:"tasks"`
	Warning string     `json:"warning,omitempty"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("tasker_add").
		Description("Add a task to the top of the list").
		Handler(s.handleAdd)

	s.mcpServer.Tool("tasker_toggle").
		Description("Toggle a task between active and completed").
		Handler(s.handleToggle)

	s.mcpServer.Tool("tasker_delete").
		Description("Delete a task").
		Handler(s.handleDelete)

	s.mcpServer.Tool("tasker_clear_completed").
		Description("Remove every completed task").
		Handler(s.handleClearCompleted)

	s.mcpServer.Tool("tasker_list").
		Description("List tasks, optionally filtered to active or completed").
		Handler(s.handleList)

	s.mcpServer.Tool("tasker_active_count").
		Description("Count the tasks that are not yet completed").
		Handler(s.handleActiveCount)

	s.mcpServer.Tool("tasker_generate").
		Description("Break a goal down into 3 to 6 tasks with AI and add them to the top of the list").
		Handler(s.handleGenerate)
}

func toView(t todo.Task) TaskView {
	return TaskView{ID: t.ID, Text: t.Text, Completed: t.Completed, CreatedAt: t.CreatedAt}
}

func toViews(tasks []todo.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toView(t))
	}
	return out
}

func (s *Server) resolve(id string) (string, error) {
	full, err := s.store.ResolveID(id)
	if err != nil {
		if errors.Is(err, application.ErrAmbiguousID) {
			return "", mcpErr(fmt.Sprintf("Task id '%s' is ambiguous. Use more characters.", id))
		}
		return "", mcpErr(fmt.Sprintf("Task '%s' not found. Use tasker_list to see task ids.", id))
	}
	return full, nil
}

func (s *Server) handleAdd(ctx context.Context, args AddArgs) (any, error) {
	task, err := s.store.Add(args.Text)
	if errors.Is(err, todo.ErrEmptyText) {
		return nil, mcpErr("Task text is empty. Provide some text to add.")
	}
	if err != nil {
		return nil, mcpErr(application.UserMessage(err))
	}
	return toView(task), nil
}

func (s *Server) handleToggle(ctx context.Context, args TaskIDArgs) (any, error) {
	id, err := s.resolve(args.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Toggle(id); err != nil {
		return nil, mcpErr(application.UserMessage(err))
	}
	task, _ := s.store.Get(id)
	return toView(task), nil
}

func (s *Server) handleDelete(ctx context.Context, args TaskIDArgs) (string, error) {
	id, err := s.resolve(args.ID)
	if err != nil {
		return "", err
	}
	if _, err := s.store.Delete(id); err != nil {
		return "", mcpErr(application.UserMessage(err))
	}
	return fmt.Sprintf("Task %s deleted", id), nil
}

func (s *Server) handleClearCompleted(ctx context.Context, args struct{}) (string, error) {
	n, err := s.store.ClearCompleted()
	if err != nil {
		return "", mcpErr(application.UserMessage(err))
	}
	return fmt.Sprintf("Cleared %d completed task(s)", n), nil
}

func (s *Server) handleList(ctx context.Context, args ListArgs) (any, error) {
	filter, err := todo.ParseFilter(args.Filter)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Unknown filter '%s'. Use all, active or completed.", args.Filter))
	}
	tasks := s.store.List(filter)
	result := ListResult{
		Filter:    filter.String(),
		Tasks:     toViews(tasks),
		Remaining: todo.RemainingLabel(s.store.ActiveCount()),
	}
	if len(tasks) == 0 {
		result.Empty = filter.EmptyMessage()
	}
	return result, nil
}

func (s *Server) handleActiveCount(ctx context.Context, args struct{}) (any, error) {
	n := s.store.ActiveCount()
	return map[string]any{"active": n, "label": todo.RemainingLabel(n)}, nil
}

func (s *Server) handleGenerate(ctx context.Context, args GenerateArgs) (any, error) {
	result, err := s.goals.GenerateFromGoal(ctx, args.Goal)
	if err != nil {
		return nil, mcpErr(application.UserMessage(err))
	}
	return GenerateResult{Tasks: toViews(result.Tasks), Warning: result.Warning}, nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
