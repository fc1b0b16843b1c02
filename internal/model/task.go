package model

import (
	"strings"
	"time"
)

// Priority is the column a task is placed in
type Priority string

// Priority levels for tasks
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the valid priorities in column order
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the three known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority converts user input ("High", " low ") to a Priority
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Task represents a single todo item
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     Date      `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasDueDate returns true if the task carries a due date
func (t *Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// IsDueOn returns true if the task is still open and due on asOf's calendar day
func (t *Task) IsDueOn(asOf time.Time) bool {
	if t.Completed || !t.HasDueDate() {
		return false
	}
	return t.DueDate.Equal(DateOf(asOf))
}

// IsOverdueOn returns true if the task is still open and its due day is before asOf's
func (t *Task) IsOverdueOn(asOf time.Time) bool {
	if t.Completed || !t.HasDueDate() {
		return false
	}
	return t.DueDate.Before(DateOf(asOf))
}

// OneLine returns the description with runs of whitespace, newlines included, collapsed to single spaces
func (t *Task) OneLine() string {
	return strings.Join(strings.Fields(t.Description), " ")
}
