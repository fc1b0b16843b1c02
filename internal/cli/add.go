package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a new task",
	Long: `Add a new task to the board.

Examples:
  taskpad add "Buy groceries"
  taskpad add "Meeting with team" -p high
  taskpad add "File taxes" -p high --due 2024-04-15`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority string
	addDue      string
)

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(model.PriorityMedium), "Priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority, ok := model.ParsePriority(addPriority)
	if !ok {
		return fmt.Errorf("%w: %q (want high, medium or low)", store.ErrInvalidPriority, addPriority)
	}
	due, err := model.ParseDate(addDue)
	if err != nil {
		return err
	}

	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	task, err := s.Add(cmd.Context(), strings.Join(args, " "), priority, due)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Added [%s]: %q (%s)", shortID(task.ID), task.Description, task.Priority)
	if task.HasDueDate() {
		fmt.Fprintf(out, " due %s", task.DueDate)
	}
	fmt.Fprintln(out)
	return nil
}
