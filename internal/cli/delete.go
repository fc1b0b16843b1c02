package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or a unique ID prefix.

Examples:
  taskpad delete 3f2a
  taskpad rm 3f2a --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
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
	if cfg.ConfirmDelete && !deleteForce {
		fmt.Fprintf(out, "About to delete: %q (ID: %s)\n", task.Description, task.ID)
		if !confirm(cmd.InOrStdin(), out, "Are you sure?") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if _, err := s.Remove(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Fprintf(out, "🗑️  Deleted: %q\n", task.Description)
	return nil
}
