package tui

import (
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/reconcile"
)

// card is one rendered task
type card struct {
	task    model.Task
	hooks   reconcile.Hooks
	visible bool
}

func (c *card) TaskID() string          { return c.task.ID }
func (c *card) Description() string     { return c.task.Description }
func (c *card) SetVisible(visible bool) { c.visible = visible }

// column is a rendered list of cards for one board column
type column struct {
	id    reconcile.Column
	title string
	cards []*card
	empty bool
}

func newColumn(id reconcile.Column) *column {
	titles := map[reconcile.Column]string{
		reconcile.ColumnHigh:      "High",
		reconcile.ColumnMedium:    "Medium",
		reconcile.ColumnLow:       "Low",
		reconcile.ColumnCompleted: "Completed",
	}
	return &column{id: id, title: titles[id]}
}

func (c *column) Clear()                  { c.cards = c.cards[:0] }
func (c *column) Append(n reconcile.Node) { c.cards = append(c.cards, n.(*card)) }
func (c *column) SetEmpty(empty bool)     { c.empty = empty }

// shown returns the cards not hidden by search
func (c *column) shown() []*card {
	out := make([]*card, 0, len(c.cards))
	for _, cd := range c.cards {
		if cd.visible {
			out = append(out, cd)
		}
	}
	return out
}

// cardRenderer builds cards for the reconciler
type cardRenderer struct{}

func (cardRenderer) Render(t model.Task, hooks reconcile.Hooks) reconcile.Node {
	return &card{task: t, hooks: hooks, visible: true}
}

// board owns the columns the reconciler writes into. It is shared by pointer
// so that copies of the bubbletea model see the same render state.
type board struct {
	columns  []*column
	snapshot []model.Task
	alert    string
}

func newBoard() *board {
	b := &board{}
	for _, id := range reconcile.Columns {
		b.columns = append(b.columns, newColumn(id))
	}
	return b
}

func (b *board) lists() map[reconcile.Column]reconcile.List {
	out := make(map[reconcile.Column]reconcile.List, len(b.columns))
	for _, c := range b.columns {
		out[c.id] = c
	}
	return out
}
