package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/existflow/taskpad/internal/model"
)

// FilterByPriorityActive returns open tasks of priority p in store order
func FilterByPriorityActive(tasks []model.Task, p model.Priority) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Priority == p && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// FilterCompleted returns completed tasks in store order
func FilterCompleted(tasks []model.Task) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// MatchesSearch reports whether description contains term, ignoring case.
// An empty term matches everything.
func MatchesSearch(description, term string) bool {
	return strings.Contains(strings.ToLower(description), strings.ToLower(term))
}

// Search returns the tasks whose description matches term
func Search(tasks []model.Task, term string) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if MatchesSearch(t.Description, term) {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingWindowDays is how far ahead the upcoming bucket looks
const UpcomingWindowDays = 7

// Summary buckets open, dated tasks by due day. Each bucket is sorted by due date.
type Summary struct {
	DueToday []model.Task
	Overdue  []model.Task
	Upcoming []model.Task
}

// Empty reports whether no bucket has tasks
func (s Summary) Empty() bool {
	return len(s.DueToday)+len(s.Overdue)+len(s.Upcoming) == 0
}

// ClassifyUpcoming buckets open tasks with a due date relative to asOf's
// calendar day. Tasks due more than UpcomingWindowDays ahead, and tasks
// without a due date, land in no bucket.
func ClassifyUpcoming(tasks []model.Task, asOf time.Time) Summary {
	return classify(tasks, asOf, UpcomingWindowDays)
}

func classify(tasks []model.Task, asOf time.Time, windowDays int) Summary {
	today := model.DateOf(asOf)
	horizon := today.AddDays(windowDays)

	s := Summary{
		DueToday: []model.Task{},
		Overdue:  []model.Task{},
		Upcoming: []model.Task{},
	}
	for _, t := range tasks {
		if t.Completed || !t.HasDueDate() {
			continue
		}
		switch {
		case t.DueDate.Equal(today):
			s.DueToday = append(s.DueToday, t)
		case t.DueDate.Before(today):
			s.Overdue = append(s.Overdue, t)
		case !t.DueDate.After(horizon):
			s.Upcoming = append(s.Upcoming, t)
		}
	}

	sortByDue(s.DueToday)
	sortByDue(s.Overdue)
	sortByDue(s.Upcoming)
	return s
}

func sortByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}

// Notifier produces the due/overdue/upcoming summary behind reminders.
// Rendering the summary is up to the caller.
type Notifier interface {
	Summarize(tasks []model.Task, asOf time.Time) Summary
}

// DueNotifier is the default Notifier
type DueNotifier struct {
	// WindowDays overrides UpcomingWindowDays when positive
	WindowDays int
}

// Summarize implements Notifier
func (n DueNotifier) Summarize(tasks []model.Task, asOf time.Time) Summary {
	window := n.WindowDays
	if window <= 0 {
		window = UpcomingWindowDays
	}
	return classify(tasks, asOf, window)
}
