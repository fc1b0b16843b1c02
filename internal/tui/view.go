package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/reconcile"
	"github.com/existflow/taskpad/internal/transfer"
)

const collapsedWidth = 20

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var body string
	switch m.mode {
	case ModeAddTask:
		body = m.place(bodyHeight, m.renderAddModal())
	case ModeStats:
		body = m.place(bodyHeight, m.renderStatsModal())
	case ModeNotify:
		body = m.place(bodyHeight, m.renderNotifyModal())
	case ModeExport:
		body = m.place(bodyHeight, m.renderExportModal())
	case ModeImport:
		body = m.place(bodyHeight, m.renderImportModal())
	case ModeConfirmDelete:
		body = m.place(bodyHeight, m.renderConfirmModal())
	case ModeHelp:
		body = m.place(bodyHeight, ModalStyle.Render(
			lipgloss.NewStyle().Bold(true).Render("Keyboard Shortcuts")+"\n\n"+
				m.help.FullHelpView(keys.FullHelp())+"\n\n"+
				HelpStyle.Render("Press any key to close")))
	default:
		body = m.renderBoard(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m Model) place(height int, modal string) string {
	return lipgloss.Place(m.width, max(height, lipgloss.Height(modal)),
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderHeader() string {
	s := m.stats.Stats(m.now())

	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Taskpad")
	counters := fmt.Sprintf("Active %d", s.Active)
	if s.DueToday > 0 {
		counters += "  " + DueTodayStyle.Render(fmt.Sprintf("Due today %d", s.DueToday))
	} else {
		counters += fmt.Sprintf("  Due today %d", s.DueToday)
	}
	if s.Overdue > 0 {
		counters += "  " + OverdueStyle.Render(fmt.Sprintf("Overdue %d", s.Overdue))
	}

	progress := fmt.Sprintf("%s %d/%d (%d%%)", bar(s.CompletionRate, 20, Completed), s.Completed, s.Total, s.CompletionRate)

	return HeaderStyle.Render(title + "  " + HelpStyle.Render(counters) + "    " + progress)
}

func (m Model) renderBoard(height int) string {
	cols := m.board.columns
	n := len(cols)
	avail := m.width
	if m.collapsed {
		avail -= collapsedWidth
		n--
	}
	// width counts padding but not the border
	width := max(avail/max(n, 1)-2, 10)

	var rendered []string
	for i, c := range cols {
		if m.collapsed && c.id == reconcile.ColumnCompleted {
			rendered = append(rendered, m.renderCollapsed(i, c, height))
			continue
		}
		rendered = append(rendered, m.renderColumn(i, c, width, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) columnStyle(i int) lipgloss.Style {
	switch {
	case m.mode == ModeMove && i == m.focus:
		return ColumnDropTargetStyle
	case i == m.focus:
		return ColumnFocusedStyle
	}
	return ColumnStyle
}

func (m Model) renderCollapsed(i int, c *column, height int) string {
	// border and padding take 4 cells
	inner := collapsedWidth - 4
	label := ColumnTitleStyle(c.id).Render(truncate(m.columnTitle(c), inner))
	hint := HelpStyle.Render("c to expand")
	return m.columnStyle(i).
		Width(collapsedWidth - 2).
		Height(max(height-2, 1)).
		Render(label + "\n" + hint)
}

// columnTitle shows shown/total while a search hides cards
func (m Model) columnTitle(c *column) string {
	if m.rec.SearchTerm() != "" && !c.empty {
		return fmt.Sprintf("%s (%d/%d)", c.title, len(c.shown()), len(c.cards))
	}
	return fmt.Sprintf("%s (%d)", c.title, len(c.cards))
}

func (m Model) renderColumn(i int, c *column, width, height int) string {
	var b strings.Builder
	inner := width - 2

	b.WriteString(ColumnTitleStyle(c.id).Render(truncate(m.columnTitle(c), inner)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n")

	cards := c.shown()
	rows := max(height-4, 1)

	switch {
	case c.empty:
		b.WriteString(HelpStyle.Render("No tasks"))
	case len(cards) == 0:
		b.WriteString(HelpStyle.Render("No matches"))
	default:
		start := 0
		if i == m.focus && m.cursor[i] >= rows {
			start = m.cursor[i] - rows + 1
		}
		end := min(start+rows, len(cards))
		for j := start; j < end; j++ {
			b.WriteString(m.renderCard(cards[j], i == m.focus && j == m.cursor[i], inner))
			b.WriteString("\n")
		}
	}

	return m.columnStyle(i).
		Width(width).
		Height(max(height-2, 1)).
		Render(b.String())
}

func (m Model) renderCard(c *card, selected bool, width int) string {
	t := c.task

	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	due := ""
	dueStyle := HelpStyle
	if t.HasDueDate() {
		due = " " + t.DueDate.Format("Jan 2")
		switch {
		case t.IsOverdueOn(m.now()):
			dueStyle = OverdueStyle
		case t.IsDueOn(m.now()):
			dueStyle = DueTodayStyle
		}
	}

	text := truncate(t.OneLine(), max(width-4-lipgloss.Width(due), 4))
	line := icon + " " + text

	style := CardStyle
	switch {
	case m.mode == ModeMove && t.ID == m.moving:
		style = CardGrabbedStyle
		line = "↔ " + text
	case t.Completed:
		style = CardDoneStyle
	}
	if selected && m.mode != ModeMove {
		style = style.Inherit(CardSelectedStyle)
	}

	return style.Render(line) + dueStyle.Render(due)
}

func (m Model) renderStatusBar() string {
	switch m.mode {
	case ModeSearch:
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View())
	case ModeMove:
		return StatusBarStyle.Width(m.width).Render("←/→ choose column  enter: drop  esc: cancel")
	}

	line := m.help.ShortHelpView(keys.ShortHelp())
	switch {
	case m.board.alert != "":
		line = AlertStyle.Render(m.board.alert)
	case m.message != "":
		line = m.message
	case m.rec.SearchTerm() != "":
		line = fmt.Sprintf("/%s  esc: clear", m.rec.SearchTerm())
	}
	return StatusBarStyle.Width(m.width).Render(line)
}

func (m Model) renderAddModal() string {
	labels := []string{"Description", "Priority", "Due date"}

	content := lipgloss.NewStyle().Bold(true).Render("New Task") + "\n\n"
	for i, in := range m.form.inputs {
		content += HelpStyle.Render(labels[i]) + "\n" + in.View() + "\n\n"
	}
	if m.form.err != "" {
		content += AlertStyle.Render(m.form.err) + "\n\n"
	}
	content += HelpStyle.Render("Tab:next field  Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderStatsModal() string {
	const barWidth = 30
	s := m.stats.Stats(m.now())

	content := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Statistics") + "\n\n"
	content += fmt.Sprintf("Total      %d\n", s.Total)
	content += fmt.Sprintf("Completed  %d\n", s.Completed)
	content += fmt.Sprintf("Active     %d\n", s.Active)
	content += fmt.Sprintf("Due today  %d\n", s.DueToday)
	content += fmt.Sprintf("Overdue    %d\n\n", s.Overdue)

	content += "Completion " + bar(s.CompletionRate, barWidth, Completed) + fmt.Sprintf(" %d%%\n\n", s.CompletionRate)

	heights := derive.BarHeights(s.Distribution)
	for i, p := range model.Priorities {
		label := fmt.Sprintf("%-10s ", p)
		content += label + bar(heights[i], barWidth, PriorityColor(p)) + fmt.Sprintf(" %d\n", s.Distribution.Get(p))
	}

	content += "\n" + HelpStyle.Render("Press any key to close")
	return ModalStyle.Render(content)
}

func (m Model) renderNotifyModal() string {
	summary := m.notifier.Summarize(m.store.Snapshot(), m.now())

	content := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Reminders") + "\n\n"
	if summary.Empty() {
		content += HelpStyle.Render("Nothing due in the coming week") + "\n"
	}

	section := func(title string, style lipgloss.Style, tasks []model.Task) {
		if len(tasks) == 0 {
			return
		}
		content += style.Bold(true).Render(fmt.Sprintf("%s (%d)", title, len(tasks))) + "\n"
		for _, t := range tasks {
			content += fmt.Sprintf("  %s  %s\n", t.DueDate.Format("Mon Jan 2"), truncate(t.OneLine(), 40))
		}
		content += "\n"
	}
	section("Overdue", OverdueStyle, summary.Overdue)
	section("Due today", DueTodayStyle, summary.DueToday)
	section("Upcoming", lipgloss.NewStyle().Foreground(Primary), summary.Upcoming)

	content += HelpStyle.Render("Press any key to close")
	return ModalStyle.Render(content)
}

func (m Model) renderExportModal() string {
	content := lipgloss.NewStyle().Bold(true).Render("Export") + "\n\n"
	content += "[j] JSON   (" + transfer.ExportFileName + ")\n"
	content += "[r] Report (" + transfer.ReportFileName + ")\n\n"
	content += HelpStyle.Render("into " + m.cfg.ExportDir + "  Esc:cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderImportModal() string {
	content := lipgloss.NewStyle().Bold(true).Render("Import") + "\n\n"
	content += m.input.View() + "\n\n"
	content += AlertStyle.Render("Replaces every task on the board.") + "\n"
	content += HelpStyle.Render("Enter:import  Esc:cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderConfirmModal() string {
	desc := ""
	if t, ok := m.store.Get(m.pendingDelete); ok {
		desc = truncate(t.OneLine(), 40)
	}
	content := lipgloss.NewStyle().Bold(true).Render("Delete task?") + "\n\n"
	content += desc + "\n\n"
	content += HelpStyle.Render("y:delete  any other key:cancel")
	return ModalStyle.Render(content)
}
