package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/tasker/pkg/domain/ai"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/xeipuuv/gojsonschema"
)

// GoalTemperature keeps suggestions focused while allowing some variety.
const GoalTemperature float32 = 0.3

const goalPromptTemplate = `Break down the following goal into a list of 3 to 6 concise, actionable todo list items. Keep them short and direct. Goal: "%s"`

const goalSchemaJSON = `{
  "type": "array",
  "items": { "type": "string" }
}`

var goalSchemaLoader = gojsonschema.NewStringLoader(goalSchemaJSON)

// GoalSchema returns the response contract sent to providers: an array of strings.
func GoalSchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

// GoalPrompt renders the instruction sent for a trimmed goal.
func GoalPrompt(goal string) string {
	return fmt.Sprintf(goalPromptTemplate, goal)
}

// GoalExpander turns a free-form goal into short task texts using an AI provider.
type GoalExpander struct {
	provider    ai.Provider
	logger      *slog.Logger
	maxTasks    int
	temperature float32
}

// NewGoalExpander creates an expander. maxTasks caps the result when positive;
// zero leaves the "3 to 6" range to the prompt.
func NewGoalExpander(provider ai.Provider, logger *slog.Logger, maxTasks int) *GoalExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalExpander{
		provider:    provider,
		logger:      logger,
		maxTasks:    maxTasks,
		temperature: GoalTemperature,
	}
}

// WithTemperature overrides the sampling temperature. Non-positive values
// keep GoalTemperature.
func (e *GoalExpander) WithTemperature(t float32) *GoalExpander {
	if t > 0 {
		e.temperature = t
	}
	return e
}

// Expand asks the provider for task texts. A blank goal fails with
// todo.ErrEmptyGoal before any request. A well formed answer that is not an
// array yields an empty result. Every other failure matches
// todo.ErrGenerationFailed.
func (e *GoalExpander) Expand(ctx context.Context, goal string) ([]string, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, todo.ErrEmptyGoal
	}
	if e.provider == nil {
		return nil, e.fail(&todo.GenerationError{Kind: todo.FailureConfig, Err: errors.New("no AI provider configured")})
	}

	resp, err := e.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:           GoalPrompt(goal),
		Temperature:      e.temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   GoalSchema(),
	})
	if err != nil {
		return nil, e.fail(&todo.GenerationError{Kind: classifyProviderError(err), Err: err})
	}

	items, err := parseGoalItems(resp.Text)
	if err != nil {
		return nil, e.fail(err)
	}
	if e.maxTasks > 0 && len(items) > e.maxTasks {
		e.logger.Debug("truncating generated tasks", "count", len(items), "max", e.maxTasks)
		items = items[:e.maxTasks]
	}

	e.logger.Debug("goal expanded",
		"provider", e.provider.ID(),
		"items", len(items),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return items, nil
}

func (e *GoalExpander) fail(err error) error {
	providerID := "none"
	if e.provider != nil {
		providerID = e.provider.ID()
	}
	e.logger.Error("goal expansion failed", "provider", providerID, "error", err)
	return err
}

func classifyProviderError(err error) todo.FailureKind {
	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		return todo.FailureStatus
	}
	var cfgErr *ai.ConfigError
	if errors.As(err, &cfgErr) {
		return todo.FailureConfig
	}
	return todo.FailureTransport
}

// parseGoalItems decodes the provider text. Non-array JSON is treated as an
// empty answer; arrays must hold only strings.
func parseGoalItems(text string) ([]string, error) {
	clean := stripCodeFence(text)
	if clean == "" {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal([]byte(clean), &value); err != nil {
		return nil, &todo.GenerationError{Kind: todo.FailureMalformed, Err: err}
	}
	raw, ok := value.([]any)
	if !ok {
		return nil, nil
	}

	result, err := gojsonschema.Validate(goalSchemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, &todo.GenerationError{Kind: todo.FailureSchema, Err: err}
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &todo.GenerationError{Kind: todo.FailureSchema, Err: errors.New(strings.Join(issues, "; "))}
	}

	items := make([]string, 0, len(raw))
	for _, v := range raw {
		s := todo.NormalizeText(v.(string))
		if s != "" {
			items = append(items, s)
		}
	}
	return items, nil
}

func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
