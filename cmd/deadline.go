package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	deadlineDoneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
	deadlineDoingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

var deadlineCmd = &cobra.Command{
	Use:     "deadline",
	Aliases: []string{"dl"},
	Short:   "Manage your deadline list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return deadlineListCmd.RunE(cmd, args)
	},
}

var deadlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deadlines in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deadlines, err := app.services.Deadlines.List(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(deadlines)
		}

		if len(deadlines) == 0 {
			fmt.Println("No deadlines. Add one with \"focusmate deadline add\".")
			return nil
		}
		for _, d := range deadlines {
			line := fmt.Sprintf("%3d  %s  %s", d.ID, d.DeadlineDate, d.Task)
			switch {
			case d.Done:
				line = deadlineDoneStyle.Render(line)
			case d.CurrentDoing:
				line = deadlineDoingStyle.Render(line + "  ← doing")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var deadlineAddCmd = &cobra.Command{
	Use:   "add <task> <date>",
	Short: "Add a deadline (date as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.services.Deadlines.Add(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Added %q due %s\n", args[0], args[1])
		return nil
	},
}

var (
	editTask string
	editDate string
)

var deadlineEditCmd = &cobra.Command{
	Use:   "edit <id|task>",
	Short: "Edit a deadline's task text or date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editTask == "" && editDate == "" {
			return fmt.Errorf("nothing to change; pass --task and/or --date")
		}
		return app.services.Deadlines.Edit(context.Background(), args[0], editTask, editDate)
	},
}

var deadlineRemoveCmd = &cobra.Command{
	Use:     "remove <id|task>",
	Aliases: []string{"rm"},
	Short:   "Remove a deadline",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.services.Deadlines.Remove(context.Background(), args[0])
	},
}

var deadlineDoneCmd = &cobra.Command{
	Use:   "done <id|task>",
	Short: "Mark a deadline as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.services.Deadlines.SetDone(context.Background(), args[0], true)
	},
}

var deadlineUndoneCmd = &cobra.Command{
	Use:   "undone <id|task>",
	Short: "Mark a deadline as not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.services.Deadlines.SetDone(context.Background(), args[0], false)
	},
}

var deadlineDoingCmd = &cobra.Command{
	Use:   "doing <id|task>",
	Short: "Mark a deadline as the one you are working on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.services.Deadlines.SetDoing(context.Background(), args[0])
	},
}

var deadlineMoveCmd = &cobra.Command{
	Use:   "move <id|task> <position>",
	Short: "Move a deadline to a new position in the list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position must be a number, got %q", args[1])
		}
		return app.services.Deadlines.Move(context.Background(), args[0], position)
	},
}

func init() {
	deadlineEditCmd.Flags().StringVar(&editTask, "task", "", "New task text")
	deadlineEditCmd.Flags().StringVar(&editDate, "date", "", "New date (YYYY-MM-DD)")

	deadlineCmd.AddCommand(deadlineListCmd)
	deadlineCmd.AddCommand(deadlineAddCmd)
	deadlineCmd.AddCommand(deadlineEditCmd)
	deadlineCmd.AddCommand(deadlineRemoveCmd)
	deadlineCmd.AddCommand(deadlineDoneCmd)
	deadlineCmd.AddCommand(deadlineUndoneCmd)
	deadlineCmd.AddCommand(deadlineDoingCmd)
	deadlineCmd.AddCommand(deadlineMoveCmd)
}
