package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

// SchemaVersion is the current MCP tool schema version (semver).
const SchemaVersion = "1.0.0"

const (
	tasksResourceURI  = "tasker://tasks"
	schemaResourceURI = "tasker://schema"
)

type schemaResponse struct {
	SchemaVersion string   `json:"schema_version"`
	ServerVersion string   `json:"server_version"`
	Tools         []string `json:"tools"`
}

func toolNames() []string {
	return []string{
		"tasker_add",
		"tasker_toggle",
		"tasker_delete",
		"tasker_clear_completed",
		"tasker_list",
		"tasker_active_count",
		"tasker_generate",
	}
}

func (s *Server) registerSchemaResource() {
	s.mcpServer.Resource(schemaResourceURI).
		Name(schemaResourceURI).
		Description("MCP tool schema version and tool list").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			return jsonResource(schemaResourceURI, schemaResponse{
				SchemaVersion: SchemaVersion,
				ServerVersion: Version,
				Tools:         toolNames(),
			})
		})
}

// registerTasksResource publishes the whole collection in its stored shape.
func (s *Server) registerTasksResource() {
	s.mcpServer.Resource(tasksResourceURI).
		Name(tasksResourceURI).
		Description("All tasks, newest first").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			return jsonResource(tasksResourceURI, toViews(s.store.List(todo.FilterAll)))
		})
}

func jsonResource(uri string, v any) (*mcplib.ResourceContent, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcplib.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
