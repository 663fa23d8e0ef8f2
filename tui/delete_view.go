// ABOUTME: Delete confirmation view for the admin console
// ABOUTME: Renders a centered warning box and drives the confirm controller
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	e := m.current()
	ent := e.confirm.Entity()
	if ent == nil {
		return "Nothing selected."
	}

	label := strings.TrimSuffix(strings.ToLower(e.spec.label), "s")
	name := entityDisplayName(entityMap(ent))

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", label)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(label), name)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// entityDisplayName picks the best human label an entity offers.
func entityDisplayName(obj map[string]any) string {
	for _, key := range []string{"title", "name", "method", "action"} {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	if v, ok := obj["id"]; ok {
		return fmt.Sprintf("%v", v)
	}
	return "(unknown)"
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.current()

	switch msg.String() {
	case "y", "Y":
		confirm := e.confirm
		return m, func() tea.Msg {
			confirm.Confirm(context.Background())
			return opDoneMsg{}
		}
	case "n", "N", "esc":
		e.confirm.Cancel()
		e.page.CloseAll()
		m.viewMode = ViewList
	}
	return m, nil
}
