package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/transfer"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks to tasks.json",
	Long: `Write every task to tasks.json as an indented JSON array.

Examples:
  taskpad export
  taskpad export --dir ~/backups
  taskpad export --stdout > tasks.json`,
	RunE: runExport,
}

var (
	exportDir    string
	exportStdout bool
)

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to write into (default from config)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write to stdout instead of a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	codec := transfer.NewCodec(s)
	if exportStdout {
		return codec.Export(cmd.OutOrStdout())
	}

	dir := cfg.ExportDir
	if exportDir != "" {
		dir = exportDir
	}
	path, err := codec.ExportFile(dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tasks to %s\n", s.Len(), path)
	return nil
}
