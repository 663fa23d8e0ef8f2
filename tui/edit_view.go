// ABOUTME: Modal form view backing both add and edit dialogs
// ABOUTME: Maps text inputs onto the form draft, including repeatable link rows
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vestryhq/vestry/controller"
)

// inputSpec ties one on-screen input to a form field; listIndex is the slot
// within a repeatable field, or -1 for scalars.
type inputSpec struct {
	field     controller.Field
	listIndex int
}

// rebuildFormInputs regenerates the input set from the form draft. Called
// whenever the draft changes shape (open, add row, remove row); the current
// input values must be read back into the draft first.
func (m *Model) rebuildFormInputs() {
	form := m.current().form
	draft := form.Draft()

	m.formInputs = nil
	m.inputSpecs = nil

	for _, field := range form.Fields() {
		switch {
		case field.Repeatable:
			list := draft.Lists[field.Name]
			if len(list) == 0 {
				list = []string{""}
			}
			for j, v := range list {
				in := textinput.New()
				in.Placeholder = field.Label
				in.CharLimit = 200
				in.SetValue(v)
				m.formInputs = append(m.formInputs, in)
				m.inputSpecs = append(m.inputSpecs, inputSpec{field: field, listIndex: j})
			}
		case field.File:
			in := textinput.New()
			in.Placeholder = field.Label + " (local path)"
			in.CharLimit = 400
			in.SetValue(draft.Files[field.Name])
			m.formInputs = append(m.formInputs, in)
			m.inputSpecs = append(m.inputSpecs, inputSpec{field: field, listIndex: -1})
		case field.Bool:
			in := textinput.New()
			in.Placeholder = field.Label + " (true/false)"
			in.CharLimit = 5
			in.SetValue(draft.Values[field.Name])
			m.formInputs = append(m.formInputs, in)
			m.inputSpecs = append(m.inputSpecs, inputSpec{field: field, listIndex: -1})
		default:
			in := textinput.New()
			in.Placeholder = field.Label
			in.CharLimit = 500
			in.SetValue(draft.Values[field.Name])
			m.formInputs = append(m.formInputs, in)
			m.inputSpecs = append(m.inputSpecs, inputSpec{field: field, listIndex: -1})
		}
	}

	if m.focusIndex >= len(m.formInputs) {
		m.focusIndex = 0
	}
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

// collectList gathers the on-screen values of one repeatable field in row
// order, for read-back into the draft.
func (m Model) collectList(fieldName string) []string {
	var values []string
	for i, spec := range m.inputSpecs {
		if spec.field.Name == fieldName && spec.listIndex >= 0 {
			values = append(values, m.formInputs[i].Value())
		}
	}
	return values
}

// readBackInputs syncs every on-screen value into the form draft. The full
// re-render model does not track keystrokes, so this runs before any draft
// reshape or submit.
func (m Model) readBackInputs() {
	form := m.current().form
	seen := make(map[string]bool)
	for i, spec := range m.inputSpecs {
		switch {
		case spec.listIndex >= 0:
			if !seen[spec.field.Name] {
				form.ReadBack(spec.field.Name, m.collectList(spec.field.Name))
				seen[spec.field.Name] = true
			}
		case spec.field.File:
			form.AttachFile(spec.field.Name, strings.TrimSpace(m.formInputs[i].Value()))
		default:
			form.SetValue(spec.field.Name, m.formInputs[i].Value())
		}
	}
}

func (m Model) renderEditView() string {
	e := m.current()
	var s strings.Builder

	if e.form.Updating() {
		s.WriteString(titleStyle.Render("EDIT " + strings.ToUpper(e.spec.label)))
	} else {
		s.WriteString(titleStyle.Render("NEW " + strings.ToUpper(e.spec.label)))
	}
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		if m.inputSpecs[i].listIndex >= 0 {
			s.WriteString(helpStyle.Render("  [row]"))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if e.form.Submitting() {
		s.WriteString("Saving...\n")
	}
	if toast := m.renderToast(); toast != "" {
		s.WriteString(toast)
		s.WriteString("\n")
	}
	s.WriteString(m.renderEditHelp())
	return s.String()
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Ctrl+A: Add row",
		"Ctrl+X: Remove row",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.current()

	switch msg.String() {
	case "esc":
		e.page.CloseAll()
		m.viewMode = ViewList
		return m, nil

	case "tab", "down":
		if len(m.formInputs) > 0 {
			m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
			m.updateFormFocus()
		}
		return m, nil

	case "shift+tab", "up":
		if len(m.formInputs) > 0 {
			m.focusIndex = (m.focusIndex - 1 + len(m.formInputs)) % len(m.formInputs)
			m.updateFormFocus()
		}
		return m, nil

	case "ctrl+a":
		if spec, ok := m.focusedSpec(); ok && spec.field.Repeatable {
			e.form.AddRepeatable(spec.field.Name, m.collectList(spec.field.Name))
			m.rebuildFormInputs()
		}
		return m, nil

	case "ctrl+x":
		if spec, ok := m.focusedSpec(); ok && spec.field.Repeatable {
			e.form.RemoveRepeatable(spec.field.Name, m.collectList(spec.field.Name), spec.listIndex)
			m.rebuildFormInputs()
		}
		return m, nil

	case "enter":
		if e.form.Submitting() {
			return m, nil
		}
		m.readBackInputs()
		form := e.form
		return m, func() tea.Msg {
			form.Submit(context.Background())
			return opDoneMsg{}
		}
	}

	if m.focusIndex < len(m.formInputs) {
		var cmd tea.Cmd
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) focusedSpec() (inputSpec, bool) {
	if m.focusIndex < 0 || m.focusIndex >= len(m.inputSpecs) {
		return inputSpec{}, false
	}
	return m.inputSpecs[m.focusIndex], true
}
