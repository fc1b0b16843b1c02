package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/model"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	Long: `Delete every task on the board. Use 'taskpad export' first if you
want to keep a copy.`,
	RunE: runClear,
}

var clearForce bool

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	out := cmd.OutOrStdout()
	if !clearForce && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete all %d tasks?", s.Len())) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	n := s.Len()
	if err := s.ReplaceAll(cmd.Context(), []model.Task{}); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	fmt.Fprintf(out, "🧹 Cleared %d tasks.\n", n)
	return nil
}
