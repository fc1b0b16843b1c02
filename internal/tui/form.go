package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskpad/internal/model"
)

const (
	fieldDescription = iota
	fieldPriority
	fieldDue
)

// addForm is the new-task dialog
type addForm struct {
	inputs []textinput.Model
	focus  int
	err    string
}

func newAddForm() addForm {
	desc := textinput.New()
	desc.Placeholder = "What needs doing?"
	desc.CharLimit = 256
	desc.Width = 40

	prio := textinput.New()
	prio.Placeholder = "high / medium / low"
	prio.CharLimit = 10
	prio.Width = 20

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD (optional)"
	due.CharLimit = 10
	due.Width = 20

	return addForm{inputs: []textinput.Model{desc, prio, due}}
}

// reset clears the form and focuses the description
func (f *addForm) reset() tea.Cmd {
	f.inputs[fieldDescription].SetValue("")
	f.inputs[fieldPriority].SetValue(string(model.PriorityMedium))
	f.inputs[fieldDue].SetValue("")
	f.err = ""
	return f.setFocus(fieldDescription)
}

func (f *addForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

func (f *addForm) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values reads the form. An unknown priority is passed through so the store
// reports it; a malformed due date is rejected here.
func (f addForm) values() (string, model.Priority, model.Date, error) {
	desc := f.inputs[fieldDescription].Value()

	raw := f.inputs[fieldPriority].Value()
	prio, ok := model.ParsePriority(raw)
	if !ok {
		prio = model.Priority(strings.TrimSpace(raw))
	}

	due, err := model.ParseDate(f.inputs[fieldDue].Value())
	if err != nil {
		return "", "", model.Date{}, err
	}
	return desc, prio, due, nil
}
