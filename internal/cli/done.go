package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as completed. The id may be shortened to any unique prefix.

Examples:
  taskpad done 3f2a
  taskpad done 3f2a --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not done")
}

func runDone(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	task, err := resolveTask(s, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	done := !doneUndo
	if task.Completed == done {
		fmt.Fprintf(out, "Nothing to do: %q is already %s\n", task.Description, doneLabel(done))
		return nil
	}

	if _, err := s.ToggleComplete(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if done {
		fmt.Fprintf(out, "✓ Completed: %q\n", task.Description)
	} else {
		fmt.Fprintf(out, "○ Reopened: %q\n", task.Description)
	}
	return nil
}

func doneLabel(done bool) string {
	if done {
		return "completed"
	}
	return "open"
}
