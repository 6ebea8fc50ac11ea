package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
	"github.com/spf13/cobra"
)

var (
	listFilter string
	listJSON   bool
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task to the top of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		task, err := services.Store.Add(strings.Join(args, " "))
		if err != nil {
			return MapError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", task.ShortID(), task.Text)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := todo.ParseFilter(listFilter)
		if err != nil {
			return MapError(err)
		}
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		store := services.Store
		if err := store.SetFilter(filter); err != nil {
			return MapError(err)
		}

		tasks := store.Visible()
		if listJSON {
			return printJSON(cmd.OutOrStdout(), tasks)
		}
		printTaskList(cmd.OutOrStdout(), tasks, filter, store.ActiveCount())
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task completed, or active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		store := services.Store
		id, err := store.ResolveID(args[0])
		if err != nil {
			return MapError(err)
		}
		if _, err := store.Toggle(id); err != nil {
			return MapError(err)
		}
		task, _ := store.Get(id)
		verb := "Reopened"
		if task.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", verb, task.ShortID(), task.Text)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		store := services.Store
		id, err := store.ResolveID(args[0])
		if err != nil {
			return MapError(err)
		}
		task, _ := store.Get(id)
		if _, err := store.Delete(id); err != nil {
			return MapError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s  %s\n", task.ShortID(), task.Text)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		n, err := services.Store.ClearCompleted()
		if err != nil {
			return MapError(err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks to clear.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed task(s).\n", n)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Show all, active or completed tasks")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print tasks as JSON in their stored shape")

	RootCmd.AddCommand(addCmd, listCmd, toggleCmd, rmCmd, clearCmd)
}
