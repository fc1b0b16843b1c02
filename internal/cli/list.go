package cli

import (
	"fmt"

	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks grouped by priority column.

Examples:
  taskpad list
  taskpad list --priority high
  taskpad list --search milk`,
	RunE: runList,
}

var (
	listPriority string
	listSearch   string
)

func init() {
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Only show open tasks of this priority")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show tasks whose description contains this text")
}

func runList(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	tasks := s.Snapshot()
	if listSearch != "" {
		tasks = derive.Search(tasks, listSearch)
	}

	out := cmd.OutOrStdout()
	if listPriority == "" {
		printBoard(out, tasks, now())
		return nil
	}

	priority, ok := model.ParsePriority(listPriority)
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrInvalidPriority, listPriority)
	}
	printSection(out, string(priority), derive.FilterByPriorityActive(tasks, priority), now())
	return nil
}
