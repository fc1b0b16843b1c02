package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [priority]",
	Short: "Move a task to another priority column",
	Long: `Change a task's priority, the command-line version of dragging its card.

Examples:
  taskpad move 3f2a high`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	priority, ok := model.ParsePriority(args[1])
	if !ok {
		return fmt.Errorf("%w: %q (want high, medium or low)", store.ErrInvalidPriority, args[1])
	}

	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	task, err := resolveTask(s, args[0])
	if err != nil {
		return err
	}

	if _, err := s.Reprioritize(cmd.Context(), task.ID, priority); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "↔ Moved %q: %s → %s\n", task.Description, task.Priority, priority)
	return nil
}
