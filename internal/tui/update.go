package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/store"
	"github.com/existflow/taskpad/internal/transfer"
)

// tickMsg is sent every minute so due-date views follow the clock
type tickMsg time.Time

// importLoadedMsg carries an import file read off the UI loop
type importLoadedMsg struct {
	path string
	raw  []byte
	err  error
}

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readImportCmd reads path in the background
func readImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := transfer.ReadImportFile(path)
		return importLoadedMsg{path: path, raw: raw, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case importLoadedMsg:
		return m.finishImport(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.board.alert = ""

		switch m.mode {
		case ModeAddTask:
			return m.updateAddTask(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeImport:
			return m.updateImport(msg)
		case ModeMove:
			return m.updateMove(msg), nil
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg), nil
		case ModeExport:
			return m.updateExport(msg), nil
		case ModeStats, ModeNotify, ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor[m.focus] < len(m.cardsIn(m.focus))-1 {
			m.cursor[m.focus]++
		}

	case key.Matches(msg, keys.Left):
		m.focus = (m.focus + len(m.board.columns) - 1) % len(m.board.columns)
		m.clampCursor()

	case key.Matches(msg, keys.Right):
		m.focus = (m.focus + 1) % len(m.board.columns)
		m.clampCursor()

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		cmd := m.form.reset()
		return m, cmd

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		if c := m.currentCard(); c != nil {
			c.hooks.Complete()
			m.clampCursor()
		}

	case key.Matches(msg, keys.Delete):
		c := m.currentCard()
		if c == nil {
			break
		}
		if m.cfg.ConfirmDelete {
			m.pendingDelete = c.task.ID
			m.mode = ModeConfirmDelete
			break
		}
		c.hooks.Delete()
		m.clampCursor()

	case key.Matches(msg, keys.Move):
		if c := m.currentCard(); c != nil {
			m.moving = c.task.ID
			m.moveFrom = m.focus
			m.mode = ModeMove
		}

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.input.SetValue(m.rec.SearchTerm())
		m.input.Placeholder = "search"
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, keys.Escape):
		if m.rec.SearchTerm() != "" {
			m.rec.Search("")
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Stats):
		m.mode = ModeStats

	case key.Matches(msg, keys.Notify):
		m.mode = ModeNotify

	case key.Matches(msg, keys.Export):
		m.mode = ModeExport

	case key.Matches(msg, keys.Import):
		m.mode = ModeImport
		m.input.SetValue(filepath.Join(m.cfg.ExportDir, transfer.ExportFileName))
		m.input.Placeholder = "path to tasks.json"
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, keys.Collapse):
		m.collapsed = !m.collapsed
		m.clampCursor()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) updateAddTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Tab):
		cmd := m.form.next()
		return m, cmd

	case key.Matches(msg, keys.Enter):
		desc, prio, due, err := m.form.values()
		if err != nil {
			m.form.err = err.Error()
			cmd := m.form.setFocus(fieldDue)
			return m, cmd
		}

		task, err := m.rec.Add(desc, prio, due)
		if err != nil {
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				m.form.err = validationMessage(verr)
				if verr.Field == "priority" {
					cmd := m.form.setFocus(fieldPriority)
					return m, cmd
				}
				cmd := m.form.setFocus(fieldDescription)
				return m, cmd
			}
			m.mode = ModeNormal
			return m, nil
		}

		m.mode = ModeNormal
		m.selectTask(task.ID)
		m.message = "Task added"
		return m, nil
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func validationMessage(err *store.ValidationError) string {
	if err.Field == "priority" {
		return "priority must be high, medium or low"
	}
	return err.Error()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.rec.Search("")
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.input.Blur()
		m.mode = ModeNormal
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.rec.Search(m.input.Value())
	m.clampCursor()
	return m, cmd
}

// updateMove handles the keyboard drag: left/right pick the target column,
// enter or m drops the grabbed card there.
func (m Model) updateMove(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, keys.Escape):
		m.focus = m.moveFrom
		m.moving = ""
		m.mode = ModeNormal

	case key.Matches(msg, keys.Left):
		m.focus = (m.focus + len(m.board.columns) - 1) % len(m.board.columns)

	case key.Matches(msg, keys.Right):
		m.focus = (m.focus + 1) % len(m.board.columns)

	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Move):
		id, target := m.moving, m.focusedColumn().id
		m.moving = ""
		m.mode = ModeNormal

		tag := target.PriorityTag()
		m.rec.Drop(id, tag)
		if tag == "" {
			m.message = "Tasks can only be dropped on a priority column"
			m.focus = m.moveFrom
		} else {
			m.message = fmt.Sprintf("Moved to %s", target)
		}
		m.selectTask(id)
		m.clampCursor()
	}
	return m
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) Model {
	if msg.String() == "y" || msg.String() == "Y" {
		for _, c := range m.cardsIn(m.focus) {
			if c.task.ID == m.pendingDelete {
				c.hooks.Delete()
				m.message = "Task deleted"
				break
			}
		}
	}
	m.pendingDelete = ""
	m.mode = ModeNormal
	m.clampCursor()
	return m
}

func (m Model) updateExport(msg tea.KeyMsg) Model {
	var (
		path string
		err  error
	)
	switch msg.String() {
	case "j":
		path, err = m.codec.ExportFile(m.cfg.ExportDir)
	case "r":
		path, err = m.codec.ExportReportFile(m.cfg.ExportDir, m.now(), m.cfg.ReportLinesPerPage)
	default:
		m.mode = ModeNormal
		return m
	}

	m.mode = ModeNormal
	if err != nil {
		logger.Error("Export failed", logger.F("error", err))
		m.board.alert = err.Error()
		return m
	}
	m.message = "Exported to " + path
	return m
}

func (m Model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		path := m.input.Value()
		m.input.Blur()
		m.mode = ModeNormal
		m.message = "Importing..."
		return m, readImportCmd(path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// finishImport commits a loaded import file. The store is only touched here,
// on the UI loop.
func (m Model) finishImport(msg importLoadedMsg) Model {
	m.message = ""
	if msg.err != nil {
		logger.Warn("Import file unreadable", logger.F("path", msg.path), logger.F("error", msg.err))
		m.board.alert = msg.err.Error()
		return m
	}
	if err := m.rec.Import(msg.raw); err != nil {
		return m
	}

	for i := range m.cursor {
		m.cursor[i] = 0
	}
	m.message = fmt.Sprintf("Imported %d tasks from %s", m.store.Len(), filepath.Base(msg.path))
	return m
}
