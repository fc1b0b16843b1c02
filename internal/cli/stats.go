package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/model"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE:  runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	stats := derive.ComputeStats(s.Snapshot(), now())
	out := cmd.OutOrStdout()

	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Total Tasks:      %d\n", stats.Total)
	fmt.Fprintf(out, "Completed Tasks:  %d\n", stats.Completed)
	fmt.Fprintf(out, "Active Tasks:     %d\n", stats.Active)
	fmt.Fprintf(out, "Completion Rate:  %d%%\n", stats.CompletionRate)
	fmt.Fprintf(out, "Due Today:        %d\n", stats.DueToday)
	fmt.Fprintf(out, "Overdue:          %d\n", stats.Overdue)
	fmt.Fprintln(out)

	heights := derive.BarHeights(stats.Distribution)
	for i, p := range model.Priorities {
		fmt.Fprintf(out, "%-8s %-20s %d\n", p, strings.Repeat("█", heights[i]/5), stats.Distribution.Get(p))
	}
	return nil
}
