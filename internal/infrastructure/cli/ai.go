package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tasker/internal/infrastructure/config"
	infraai "github.com/felixgeelhaar/tasker/pkg/ai"
	"github.com/spf13/cobra"
)

var (
	aiProvider    string
	aiModel       string
	aiTemperature float32
	aiMaxTasks    int
	aiInteractive bool
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Manage AI configuration",
}

var aiConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the AI provider used for goal breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return fmt.Errorf("resolve workspace path: %w", err)
		}

		aiCfg, err := config.LoadAIConfig(root)
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}
		if aiCfg == nil {
			aiCfg = config.DefaultAIConfig()
		}

		if aiInteractive {
			reader := bufio.NewReader(cmd.InOrStdin())
			if err := promptAIConfig(reader, cmd.OutOrStdout(), aiCfg); err != nil {
				return err
			}
		} else {
			if err := applyAIFlags(cmd, aiCfg); err != nil {
				return err
			}
		}

		if err := validateAIConfig(aiCfg); err != nil {
			return err
		}

		if err := config.SaveAIConfig(root, aiCfg); err != nil {
			return fmt.Errorf("failed to save AI config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "AI configuration saved.")
		fmt.Fprintln(out, "- Provider/model defaults live in .tasker/ai.yaml and drive the CLI, UI and MCP")
		fmt.Fprintln(out, "- API keys are read from the environment only (GEMINI_API_KEY, OPENAI_API_KEY or API_KEY)")
		return nil
	},
}

var aiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective AI configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return fmt.Errorf("resolve workspace path: %w", err)
		}
		stored, err := config.LoadAIConfig(root)
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}
		cfg := stored.Merge(config.DefaultAIConfig())

		keyStatus := "not set"
		if config.APIKey(cfg.Provider) != "" {
			keyStatus = "set"
		}
		maxTasks := "no limit"
		if cfg.MaxTasks > 0 {
			maxTasks = strconv.Itoa(cfg.MaxTasks)
		}
		source := "defaults"
		if stored != nil {
			source = ".tasker/ai.yaml"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:    %s\n", cfg.Provider)
		fmt.Fprintf(out, "Model:       %s\n", defaultString(cfg.Model, "(provider default)"))
		fmt.Fprintf(out, "Temperature: %g\n", cfg.Temperature)
		fmt.Fprintf(out, "Max tasks:   %s\n", maxTasks)
		fmt.Fprintf(out, "API key:     %s\n", keyStatus)
		fmt.Fprintf(out, "Source:      %s\n", source)
		return nil
	},
}

func promptAIConfig(reader *bufio.Reader, out io.Writer, aiCfg *config.AIConfig) error {
	provider, err := promptString(reader, out, "AI provider (gemini/openai/ollama/mock)", defaultString(aiCfg.Provider, infraai.ProviderGemini))
	if err != nil {
		return err
	}
	if provider != aiCfg.Provider {
		aiCfg.Model = ""
	}
	aiCfg.Provider = provider

	model, err := promptString(reader, out, "AI model (empty = provider default)", aiCfg.Model)
	if err != nil {
		return err
	}
	aiCfg.Model = model

	limit, err := promptInt(reader, out, "Max tasks per goal (0 = no limit)", aiCfg.MaxTasks)
	if err != nil {
		return err
	}
	aiCfg.MaxTasks = limit

	return nil
}

func applyAIFlags(cmd *cobra.Command, aiCfg *config.AIConfig) error {
	if aiProvider == "" && aiModel == "" &&
		!cmd.Flags().Changed("temperature") && !cmd.Flags().Changed("max-tasks") {
		return fmt.Errorf("no configuration provided; use flags or --interactive")
	}

	if aiProvider != "" {
		if aiProvider != aiCfg.Provider && aiModel == "" {
			aiCfg.Model = ""
		}
		aiCfg.Provider = aiProvider
	}
	if aiModel != "" {
		aiCfg.Model = aiModel
	}
	if cmd.Flags().Changed("temperature") {
		aiCfg.Temperature = aiTemperature
	}
	if cmd.Flags().Changed("max-tasks") {
		aiCfg.MaxTasks = aiMaxTasks
	}

	return nil
}

func validateAIConfig(aiCfg *config.AIConfig) error {
	aiCfg.Provider = strings.ToLower(strings.TrimSpace(aiCfg.Provider))
	if _, err := infraai.NewProvider(aiCfg.Provider, aiCfg.Model, ""); err != nil {
		return err
	}
	if aiCfg.Temperature < 0 || aiCfg.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if aiCfg.MaxTasks < 0 {
		return fmt.Errorf("max tasks must not be negative")
	}
	return nil
}

func promptString(reader *bufio.Reader, out io.Writer, label string, def string) (string, error) {
	fmt.Fprintf(out, "%s [%s]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return def, nil
	}
	return value, nil
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, def int) (int, error) {
	for {
		fmt.Fprintf(out, "%s [%d]: ", label, def)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		value := strings.TrimSpace(line)
		if value == "" {
			return def, nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number.")
			continue
		}
		return parsed, nil
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func init() {
	aiConfigureCmd.Flags().StringVar(&aiProvider, "provider", "", "AI provider (gemini/openai/ollama/mock)")
	aiConfigureCmd.Flags().StringVar(&aiModel, "model", "", "AI model identifier")
	aiConfigureCmd.Flags().Float32Var(&aiTemperature, "temperature", 0.3, "Sampling temperature")
	aiConfigureCmd.Flags().IntVar(&aiMaxTasks, "max-tasks", 0, "Cap on tasks per goal (0 = no limit)")
	aiConfigureCmd.Flags().BoolVar(&aiInteractive, "interactive", false, "Prompt for AI configuration interactively")

	aiCmd.AddCommand(aiConfigureCmd, aiShowCmd)
	RootCmd.AddCommand(aiCmd)
}
