// Package tui is the interactive task board: one column per priority plus a
// completed column, kept in sync with the store by a reconcile.Reconciler.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/taskpad/internal/config"
	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/reconcile"
	"github.com/existflow/taskpad/internal/store"
	"github.com/existflow/taskpad/internal/transfer"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeSearch
	ModeMove
	ModeConfirmDelete
	ModeStats
	ModeNotify
	ModeExport
	ModeImport
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	ctx      context.Context
	store    *store.Store
	rec      *reconcile.Reconciler
	codec    *transfer.Codec
	stats    *derive.Cache
	notifier derive.Notifier
	cfg      *config.Config
	board    *board
	now      func() time.Time

	// UI state
	width     int
	height    int
	mode      Mode
	focus     int
	cursor    []int
	collapsed bool

	// Input
	form  addForm
	input textinput.Model
	help  help.Model

	// Move (keyboard drag and drop)
	moving   string
	moveFrom int

	pendingDelete string
	message       string
}

// Option configures a Model
type Option func(*Model)

// WithClock overrides the clock used for due-date derived views
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithContext sets the context for store calls
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel creates a new TUI model over a loaded store
func NewModel(s *store.Store, cfg *config.Config, opts ...Option) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		ctx:      context.Background(),
		store:    s,
		codec:    transfer.NewCodec(s),
		stats:    derive.NewCache(s),
		notifier: derive.DueNotifier{WindowDays: cfg.UpcomingDays},
		cfg:      cfg,
		board:    newBoard(),
		now:      time.Now,
		mode:     ModeNormal,
		cursor:   make([]int, len(reconcile.Columns)),
		form:     newAddForm(),
		input:    ti,
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	b := m.board
	m.rec = reconcile.New(s, cardRenderer{}, b.lists(),
		reconcile.WithImporter(m.codec),
		reconcile.WithContext(m.ctx),
		reconcile.OnChange(func(snapshot []model.Task) { b.snapshot = snapshot }),
		reconcile.OnAlert(func(err error) { b.alert = err.Error() }),
	)
	m.rec.Render()

	if summary := m.notifier.Summarize(b.snapshot, m.now()); len(summary.DueToday)+len(summary.Overdue) > 0 {
		m.message = fmt.Sprintf("%d due today, %d overdue (press n)", len(summary.DueToday), len(summary.Overdue))
	}

	logger.Debug("TUI model initialized", logger.F("tasks", len(b.snapshot)))
	return m
}

func (m *Model) focusedColumn() *column {
	return m.board.columns[m.focus]
}

// cardsIn returns the selectable cards of column i
func (m *Model) cardsIn(i int) []*card {
	c := m.board.columns[i]
	if m.collapsed && c.id == reconcile.ColumnCompleted {
		return nil
	}
	return c.shown()
}

// currentCard returns the selected card, or nil
func (m *Model) currentCard() *card {
	cards := m.cardsIn(m.focus)
	if len(cards) == 0 {
		return nil
	}
	m.clampCursor()
	return cards[m.cursor[m.focus]]
}

func (m *Model) clampCursor() {
	n := len(m.cardsIn(m.focus))
	if m.cursor[m.focus] >= n {
		m.cursor[m.focus] = max(n-1, 0)
	}
}

// selectTask moves focus and cursor onto id if it is shown
func (m *Model) selectTask(id string) {
	for i := range m.board.columns {
		for j, c := range m.cardsIn(i) {
			if c.task.ID == id {
				m.focus = i
				m.cursor[i] = j
				return
			}
		}
	}
}
