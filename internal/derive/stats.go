// Package derive computes statistics and filtered views from a task snapshot.
// Nothing in here mutates its input.
package derive

import (
	"math"
	"time"

	"github.com/existflow/taskpad/internal/model"
)

// Distribution counts tasks per priority, completed ones included
type Distribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Get returns the count for p
func (d Distribution) Get(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return d.High
	case model.PriorityMedium:
		return d.Medium
	case model.PriorityLow:
		return d.Low
	}
	return 0
}

// Stats is the summary shown in the stats panel and the report
type Stats struct {
	Total          int          `json:"totalTasks"`
	Completed      int          `json:"completedTasks"`
	Active         int          `json:"activeTasks"`
	CompletionRate int          `json:"completionRate"`
	Distribution   Distribution `json:"priorityDistribution"`
	DueToday       int          `json:"dueToday"`
	Overdue        int          `json:"overdue"`
}

// Percent returns round(part/total*100), or 0 when total is 0
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// ComputeStats summarizes tasks as of the calendar day of asOf
func ComputeStats(tasks []model.Task, asOf time.Time) Stats {
	var s Stats
	s.Total = len(tasks)

	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.Distribution.High++
		case model.PriorityMedium:
			s.Distribution.Medium++
		case model.PriorityLow:
			s.Distribution.Low++
		}
		if t.IsDueOn(asOf) {
			s.DueToday++
		}
		if t.IsOverdueOn(asOf) {
			s.Overdue++
		}
	}

	s.Active = s.Total - s.Completed
	s.CompletionRate = Percent(s.Completed, s.Total)
	return s
}

// Progress returns the completed count, the total and the rounded percentage
func Progress(tasks []model.Task) (completed, total, percent int) {
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		}
	}
	total = len(tasks)
	return completed, total, Percent(completed, total)
}

// MinBarHeight keeps empty priorities visible in the chart
const MinBarHeight = 10

// BarHeights scales each priority count against the largest one, in
// percent, high/medium/low order
func BarHeights(d Distribution) [3]int {
	counts := [3]int{d.High, d.Medium, d.Low}
	top := max(d.High, d.Medium, d.Low)

	var heights [3]int
	for i, c := range counts {
		h := 0
		if top > 0 {
			h = int(float64(c) / float64(top) * 100)
		}
		heights[i] = max(h, MinBarHeight)
	}
	return heights
}
