package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <goal...>",
	Short: "Break a goal down into tasks with AI",
	Long: `Send a goal to the configured AI provider and add the 3 to 6 tasks it
suggests to the top of the list, in the order given.`,
	Example: `  tasker generate Plan a trip to Japan`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		goal := strings.Join(args, " ")
		fmt.Fprintf(cmd.ErrOrStderr(), "Generating tasks with %s...\n", services.Provider.ID())
		result, err := services.Goals.GenerateFromGoal(cmd.Context(), goal)
		if err != nil {
			return MapError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %d task(s):\n", len(result.Tasks))
		for _, t := range result.Tasks {
			printTask(out, t)
		}
		if result.Warning != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", result.Warning)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
}
