package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/tasker/internal/infrastructure/config"
	"github.com/felixgeelhaar/tasker/pkg/application"
	domainai "github.com/felixgeelhaar/tasker/pkg/domain/ai"
)

// AppServices exposes the application layer wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	AIConfig  *config.AIConfig
	Provider  domainai.Provider
	Store     *application.TaskStore
	Expander  *application.GoalExpander
	Goals     *application.GoalService
}

// Options tune BuildAppServices.
type Options struct {
	Ephemeral bool
	Logger    *slog.Logger
	// Provider replaces the configured provider when set.
	Provider domainai.Provider
}

// BuildAppServices constructs the store and goal services for a root and
// loads the persisted tasks.
func BuildAppServices(root string, opts Options) (*AppServices, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workspace := NewWorkspace(root, opts.Ephemeral, logger)

	cfg, err := LoadAIConfig(root)
	if err != nil {
		return nil, fmt.Errorf("load AI config: %w", err)
	}

	provider := opts.Provider
	if provider == nil {
		provider, err = LoadAIProvider(cfg)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("AI provider selected", "provider", provider.ID())

	store := application.NewTaskStore(workspace.Repo, logger)
	store.Load()

	expander := application.NewGoalExpander(provider, logger, cfg.MaxTasks).WithTemperature(cfg.Temperature)
	goals, err := application.NewGoalService(store, expander, logger)
	if err != nil {
		return nil, fmt.Errorf("build goal service: %w", err)
	}

	return &AppServices{
		Workspace: workspace,
		AIConfig:  cfg,
		Provider:  provider,
		Store:     store,
		Expander:  expander,
		Goals:     goals,
	}, nil
}
