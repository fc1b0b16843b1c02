package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/transfer"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a paginated task report",
	Long: `Write tasks-report.txt: a statistics summary followed by every task,
split into pages separated by form feeds.

Examples:
  taskpad report
  taskpad report --stdout --lines 40`,
	RunE: runReport,
}

var (
	reportDir    string
	reportLines  int
	reportStdout bool
)

func init() {
	reportCmd.Flags().StringVar(&reportDir, "dir", "", "Directory to write into (default from config)")
	reportCmd.Flags().IntVar(&reportLines, "lines", 0, "Lines per page (default from config)")
	reportCmd.Flags().BoolVar(&reportStdout, "stdout", false, "Write to stdout instead of a file")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	lines := cfg.ReportLinesPerPage
	if reportLines > 0 {
		lines = reportLines
	}

	if reportStdout {
		_, err := transfer.BuildReport(s.Snapshot(), now(), lines).WriteTo(cmd.OutOrStdout())
		return err
	}

	dir := cfg.ExportDir
	if reportDir != "" {
		dir = reportDir
	}
	path, err := transfer.NewCodec(s).ExportReportFile(dir, now(), lines)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written to %s\n", path)
	return nil
}
