package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/model"
	"github.com/spf13/cobra"
)

var upcomingCmd = &cobra.Command{
	Use:     "upcoming",
	Aliases: []string{"due"},
	Short:   "Show overdue, due today and upcoming tasks",
	RunE:    runUpcoming,
}

var upcomingDays int

func init() {
	upcomingCmd.Flags().IntVar(&upcomingDays, "days", 0, "Upcoming window in days (default from config)")
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	window := cfg.UpcomingDays
	if upcomingDays > 0 {
		window = upcomingDays
	}

	var notifier derive.Notifier = derive.DueNotifier{WindowDays: window}
	asOf := now()
	summary := notifier.Summarize(s.Snapshot(), asOf)

	out := cmd.OutOrStdout()
	if summary.Empty() {
		fmt.Fprintf(out, "Nothing due in the next %d days.\n", window)
		return nil
	}

	printBucket(out, "Overdue", summary.Overdue, asOf)
	printBucket(out, "Due today", summary.DueToday, asOf)
	printBucket(out, fmt.Sprintf("Next %d days", window), summary.Upcoming, asOf)
	return nil
}

func printBucket(w io.Writer, title string, tasks []model.Task, asOf time.Time) {
	if len(tasks) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d)\n", title, len(tasks))
	for _, t := range tasks {
		printTask(w, t, asOf)
	}
	fmt.Fprintln(w)
}
