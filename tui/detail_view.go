// ABOUTME: Read-only detail view with per-item asset deletion
// ABOUTME: Renders markdown description fields through glamour
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(14)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	assetSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9"))
)

func (m Model) renderDetailView() string {
	e := m.current()
	ent := e.detail.Entity()
	if ent == nil {
		return "Nothing selected."
	}
	obj := entityMap(ent)

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(e.spec.label) + " DETAIL"))
	s.WriteString("\n\n")

	for _, df := range e.spec.detailFields {
		s.WriteString(m.renderField(df.label, fieldString(obj, df.name)))
	}

	if e.spec.markdownField != "" {
		if body := fieldString(obj, e.spec.markdownField); body != "" {
			s.WriteString("\n")
			s.WriteString(renderMarkdown(body, m.width))
			s.WriteString("\n")
		}
	}

	for _, as := range e.spec.assets {
		items := assetList(obj, as.name)
		if len(items) == 0 {
			continue
		}
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(as.label)))
		s.WriteString("\n")
		for i, item := range items {
			line := fmt.Sprintf("  • %s", truncate(item, 60))
			if i == m.selectedAsset {
				line = assetSelectedStyle.Render("> • " + truncate(item, 60))
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	if toast := m.renderToast(); toast != "" {
		s.WriteString(toast)
		s.WriteString("\n")
	}
	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		return ""
	}
	return fieldLabelStyle.Render(label) + " " + fieldValueStyle.Render(value) + "\n"
}

func renderMarkdown(body string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 100)),
	)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}

func (m Model) renderDetailHelp() string {
	e := m.current()
	help := []string{"Esc: Back"}
	if !e.spec.readOnly {
		help = append(help, "e: Edit", "d: Delete")
	}
	if len(e.spec.assets) > 0 {
		help = append(help, "↑/↓: Select item", "x: Delete item")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.current()
	ent := e.detail.Entity()

	switch msg.String() {
	case "esc", "q":
		e.page.CloseAll()
		m.viewMode = ViewList
		return m, nil

	case "up", "k":
		if m.selectedAsset > 0 {
			m.selectedAsset--
		}
		return m, nil

	case "down", "j":
		if ent != nil {
			if n := m.assetCount(); m.selectedAsset < n-1 {
				m.selectedAsset++
			}
		}
		return m, nil

	case "e":
		if e.spec.readOnly || ent == nil {
			return m, nil
		}
		return m.openEdit(ent.EntityID()), nil

	case "d":
		if e.spec.readOnly || ent == nil {
			return m, nil
		}
		return m.openDelete(ent.EntityID()), nil

	case "x":
		if ent == nil || len(e.spec.assets) == 0 {
			return m, nil
		}
		assetType := e.spec.assets[0].name
		index := m.selectedAsset
		if index >= m.assetCount() {
			return m, nil
		}
		detail := e.detail
		if m.selectedAsset > 0 {
			m.selectedAsset--
		}
		return m, func() tea.Msg {
			detail.DeleteAsset(context.Background(), assetType, index)
			return opDoneMsg{}
		}
	}
	return m, nil
}

func (m Model) assetCount() int {
	e := m.current()
	ent := e.detail.Entity()
	if ent == nil || len(e.spec.assets) == 0 {
		return 0
	}
	return len(assetList(entityMap(ent), e.spec.assets[0].name))
}
