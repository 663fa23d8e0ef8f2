// ABOUTME: List view rendering and key handling for the resource tabs
// ABOUTME: Projects the current collection into a table with client-side search
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vestryhq/vestry/controller"
	"github.com/vestryhq/vestry/models"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("VESTRY ADMIN"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
	} else if m.searchQuery != "" {
		s.WriteString(helpStyle.Render("filter: " + m.searchQuery))
		s.WriteString("\n\n")
	}

	e := m.current()
	if e.page.Loading() && !e.page.Loaded() {
		s.WriteString("Loading " + e.spec.label + "...")
	} else {
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n\n")

	if toast := m.renderToast(); toast != "" {
		s.WriteString(toast)
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, e := range m.entries {
		if i == m.tabIndex {
			rendered = append(rendered, tabActiveStyle.Render(e.spec.label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(e.spec.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// visibleRows applies the search filter to the page's row projection,
// keeping the id for each surviving row so actions map back to entities.
func (m Model) visibleRows() ([]table.Row, []models.ID) {
	e := m.current()
	all := e.page.Rows()
	query := strings.ToLower(strings.TrimSpace(m.searchQuery))

	var rows []table.Row
	var ids []models.ID
	for i, cols := range all {
		if query != "" && !rowMatches(cols, query) {
			continue
		}
		id, ok := e.page.IDAt(i)
		if !ok {
			continue
		}
		rows = append(rows, table.Row(cols))
		ids = append(ids, id)
	}
	return rows, ids
}

func rowMatches(cols []string, query string) bool {
	for _, c := range cols {
		if strings.Contains(strings.ToLower(c), query) {
			return true
		}
	}
	return false
}

func (m Model) renderTable() string {
	e := m.current()
	rows, _ := m.visibleRows()

	if len(rows) == 0 {
		if m.searchQuery != "" {
			return "No rows match the filter."
		}
		return "No " + strings.ToLower(e.spec.label) + " yet."
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(e.spec.columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderListHelp() string {
	e := m.current()
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View",
	}
	if !e.spec.readOnly {
		help = append(help, "n: New", "e: Edit", "d: Delete")
	}
	help = append(help, "/: Search", "r: Reload", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	e := m.current()
	rows, ids := m.visibleRows()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(rows)-1 {
			m.selectedRow++
		}
	case "tab":
		m.tabIndex = (m.tabIndex + 1) % len(m.entries)
		m.selectedRow = 0
		m.searchQuery = ""
		next := m.current()
		if !next.page.Loaded() && !next.page.Loading() {
			return m, m.loadCmd(next)
		}
	case "shift+tab":
		m.tabIndex = (m.tabIndex - 1 + len(m.entries)) % len(m.entries)
		m.selectedRow = 0
		m.searchQuery = ""
		next := m.current()
		if !next.page.Loaded() && !next.page.Loading() {
			return m, m.loadCmd(next)
		}
	case "r":
		return m, m.loadCmd(e)
	case "/":
		m.searching = true
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.Focus()
	case "enter":
		if id, ok := rowID(ids, m.selectedRow); ok {
			return m.openView(id), nil
		}
	case "e":
		if e.spec.readOnly {
			break
		}
		if id, ok := rowID(ids, m.selectedRow); ok {
			return m.openEdit(id), nil
		}
	case "n":
		if e.spec.readOnly {
			break
		}
		return m.openAdd(), nil
	case "d":
		if e.spec.readOnly {
			break
		}
		if id, ok := rowID(ids, m.selectedRow); ok {
			return m.openDelete(id), nil
		}
	}
	return m, nil
}

func rowID(ids []models.ID, row int) (models.ID, bool) {
	if row < 0 || row >= len(ids) {
		return "", false
	}
	return ids[row], true
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchQuery = m.searchInput.Value()
		m.searchInput.Blur()
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		m.searchQuery = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.selectedRow = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// openView opens the view modal and pushes the active entity into the detail
// controller once the dialog is up, mirroring the page's modal state machine.
func (m Model) openView(id models.ID) Model {
	e := m.current()
	e.page.OpenFor(controller.ModalView, id)
	ent, ok := e.page.ActiveEntity(controller.ModalView)
	if !ok {
		return m
	}
	e.detail.SetEntity(ent)
	m.selectedAsset = 0
	m.viewMode = ViewDetail
	return m
}

func (m Model) openEdit(id models.ID) Model {
	e := m.current()
	e.page.OpenFor(controller.ModalUpdate, id)
	ent, ok := e.page.ActiveEntity(controller.ModalUpdate)
	if !ok {
		return m
	}
	e.form.SetEntity(ent)
	m.rebuildFormInputs()
	m.viewMode = ViewEdit
	return m
}

func (m Model) openAdd() Model {
	e := m.current()
	e.page.OpenFor(controller.ModalAdd, "")
	e.form.SetEntity(nil)
	m.rebuildFormInputs()
	m.viewMode = ViewEdit
	return m
}

func (m Model) openDelete(id models.ID) Model {
	e := m.current()
	e.page.OpenFor(controller.ModalDelete, id)
	ent, ok := e.page.ActiveEntity(controller.ModalDelete)
	if !ok {
		return m
	}
	e.confirm.SetEntity(ent)
	m.viewMode = ViewConfirmDelete
	return m
}
