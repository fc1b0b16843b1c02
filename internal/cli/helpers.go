package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/existflow/taskpad/internal/db"
	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
	"golang.org/x/term"
)

// now is the clock for due-date views; tests replace it
var now = time.Now

// openStore opens the configured database and loads the task store
func openStore(ctx context.Context) (*store.Store, func(), error) {
	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", logger.F("path", cfg.DBPath), logger.F("error", err))
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := store.New(dbConn, store.WithLogger(logger.WithFields(
		logger.F("component", "store"),
		logger.F("db", cfg.DBPath),
	)))
	s.Load(ctx)

	return s, func() {
		_ = dbConn.Close()
		logger.Debug("Database closed")
	}, nil
}

// resolveTask finds a task by full id or unique id prefix
func resolveTask(s *store.Store, ref string) (model.Task, error) {
	t, ok := s.Resolve(ref)
	if !ok {
		return model.Task{}, fmt.Errorf("task not found: %s", ref)
	}
	return t, nil
}

// confirm asks a yes/no question. Without a terminal on stdin there is
// nobody to ask, so the answer is yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return true
	}
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printBoard writes the four board columns as plain text
func printBoard(w io.Writer, tasks []model.Task, asOf time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Add one with: taskpad add \"Your task\"")
		return
	}

	for _, p := range model.Priorities {
		printSection(w, strings.ToUpper(string(p)[:1])+string(p)[1:], derive.FilterByPriorityActive(tasks, p), asOf)
	}
	printSection(w, "Completed", derive.FilterCompleted(tasks), asOf)

	completed, total, percent := derive.Progress(tasks)
	fmt.Fprintf(w, "%d/%d completed (%d%%)\n", completed, total, percent)
}

func printSection(w io.Writer, title string, tasks []model.Task, asOf time.Time) {
	fmt.Fprintf(w, "\n%s (%d)\n", title, len(tasks))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  No tasks")
	}
	for _, t := range tasks {
		printTask(w, t, asOf)
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task, asOf time.Time) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	due := ""
	if t.HasDueDate() {
		due = t.DueDate.Format("Jan 2")
		switch {
		case t.IsOverdueOn(asOf):
			due += " !"
		case t.IsDueOn(asOf):
			due += " *"
		}
	}

	content := t.OneLine()
	if r := []rune(content); len(r) > 40 {
		content = string(r[:37]) + "..."
	}

	fmt.Fprintf(w, "  %s  %-8s  %-40s  %-8s  %s\n", icon, shortID(t.ID), content, due, t.Priority)
}
