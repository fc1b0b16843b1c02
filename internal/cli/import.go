package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/transfer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all tasks with the contents of a JSON export",
	Long: `Replace the whole task list with the tasks in a JSON export.

This is a replace, not a merge: tasks that are not in the file are gone
afterwards. A malformed file changes nothing.

Examples:
  taskpad import tasks.json
  taskpad import backup.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importForce bool

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Do not ask for confirmation")
}

func runImport(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	out := cmd.OutOrStdout()
	if s.Len() > 0 && !importForce {
		prompt := fmt.Sprintf("Importing replaces all %d existing tasks. Continue?", s.Len())
		if !confirm(cmd.InOrStdin(), out, prompt) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := transfer.NewCodec(s).ImportFile(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Imported %d tasks from %s\n", s.Len(), args[0])
	return nil
}
