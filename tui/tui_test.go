// ABOUTME: Tests for the admin console model
// ABOUTME: Drives views and key handling without a live server
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/controller"
	"github.com/vestryhq/vestry/models"
	"github.com/vestryhq/vestry/session"
)

func testModel(t *testing.T) Model {
	t.Helper()
	client := api.NewClient("http://127.0.0.1:1", session.StaticTokenSource("test-token"))
	return NewModel(client, nil)
}

func seed(t *testing.T, m Model, resource, data string) {
	t.Helper()
	e := m.entryFor(resource)
	if e == nil {
		t.Fatalf("no entry for %q", resource)
	}
	if !e.page.SeedJSON([]byte(data)) {
		t.Fatalf("seed data for %q did not decode", resource)
	}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	mod, cmd := m.Update(msg)
	next, ok := mod.(Model)
	if !ok {
		t.Fatalf("Update returned %T", mod)
	}
	return next, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

const galleriesSeed = `[
	{"id":"1","title":"Easter","description":"Sunrise service","images":["a.jpg","b.jpg"]},
	{"id":"2","title":"Christmas","description":"Carol night","images":[]}
]`

func TestListViewRenders(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	view := m.View()
	if !strings.Contains(view, "VESTRY ADMIN") {
		t.Error("list view missing the title")
	}
	if !strings.Contains(view, "Galleries") {
		t.Error("list view missing the active tab label")
	}
	if !strings.Contains(view, "Easter") {
		t.Error("list view missing a seeded row")
	}
}

func TestEmptyCollectionPlaceholder(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", `[]`)

	if !strings.Contains(m.View(), "No galleries yet.") {
		t.Error("empty collection should render a placeholder")
	}
}

func TestRowNavigation(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("down"))
	if m.selectedRow != 1 {
		t.Errorf("selectedRow = %d after down", m.selectedRow)
	}
	m, _ = press(t, m, key("down"))
	if m.selectedRow != 1 {
		t.Error("selection must stop at the last row")
	}
	m, _ = press(t, m, key("up"))
	if m.selectedRow != 0 {
		t.Errorf("selectedRow = %d after up", m.selectedRow)
	}
	m, _ = press(t, m, key("up"))
	if m.selectedRow != 0 {
		t.Error("selection must stop at the first row")
	}
}

func TestTabSwitchLoadsLazily(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, cmd := press(t, m, key("tab"))
	if m.tabIndex != 1 {
		t.Errorf("tabIndex = %d after tab", m.tabIndex)
	}
	if cmd == nil {
		t.Error("switching to an unloaded tab should trigger a load")
	}

	m, _ = press(t, m, key("shift+tab"))
	if m.tabIndex != 0 {
		t.Errorf("tabIndex = %d after shift+tab", m.tabIndex)
	}

	seed(t, m, "sermons", `[]`)
	m, cmd = press(t, m, key("tab"))
	if cmd != nil {
		t.Error("switching to an already loaded tab should not reload")
	}
	if m.tabIndex != 1 {
		t.Errorf("tabIndex = %d", m.tabIndex)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("/"))
	if !m.searching {
		t.Fatal("slash should enter search mode")
	}
	for _, r := range "carol" {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = press(t, m, key("enter"))

	if m.searching {
		t.Error("enter should leave search mode")
	}
	rows, ids := m.visibleRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 matching row, got %d", len(rows))
	}
	if ids[0] != "2" {
		t.Errorf("wrong row survived the filter: %v", ids[0])
	}

	m, _ = press(t, m, key("/"))
	m, _ = press(t, m, key("esc"))
	rows, _ = m.visibleRows()
	if len(rows) != 2 {
		t.Error("esc should clear the filter")
	}
}

func TestOpenAddShowsForm(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("n"))

	if m.viewMode != ViewEdit {
		t.Fatalf("viewMode = %v after n", m.viewMode)
	}
	if !m.current().page.ModalOpen(controller.ModalAdd) {
		t.Error("add modal should be open")
	}
	if len(m.formInputs) == 0 {
		t.Error("form inputs should be built")
	}
	if !strings.Contains(m.View(), "NEW GALLERIES") {
		t.Error("edit view should render in add mode")
	}
}

func TestOpenEditSeedsForm(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("e"))

	if m.viewMode != ViewEdit {
		t.Fatalf("viewMode = %v after e", m.viewMode)
	}
	if !m.current().form.Updating() {
		t.Error("form should be in update mode")
	}
	if got := m.current().form.Draft().Values["title"]; got != "Easter" {
		t.Errorf("draft title = %q", got)
	}
	if !strings.Contains(m.View(), "EDIT GALLERIES") {
		t.Error("edit view should render in edit mode")
	}
}

func TestOpenViewShowsDetail(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("enter"))

	if m.viewMode != ViewDetail {
		t.Fatalf("viewMode = %v after enter", m.viewMode)
	}
	view := m.View()
	if !strings.Contains(view, "Easter") {
		t.Error("detail view should show the selected entity")
	}
	if !strings.Contains(view, "a.jpg") {
		t.Error("detail view should list the asset items")
	}
}

func TestOpenDeleteShowsConfirmation(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("d"))

	if m.viewMode != ViewConfirmDelete {
		t.Fatalf("viewMode = %v after d", m.viewMode)
	}
	view := m.View()
	if !strings.Contains(view, "DELETE CONFIRMATION") {
		t.Error("confirmation box missing")
	}
	if !strings.Contains(view, "Easter") {
		t.Error("confirmation should name the candidate")
	}
}

func TestEscCancelsDialogs(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("n"))
	m, _ = press(t, m, key("esc"))
	if m.viewMode != ViewList {
		t.Error("esc should leave the edit view")
	}
	if m.current().page.ModalOpen(controller.ModalAdd) {
		t.Error("esc should close the add modal")
	}

	m, _ = press(t, m, key("enter"))
	m, _ = press(t, m, key("esc"))
	if m.viewMode != ViewList {
		t.Error("esc should leave the detail view")
	}
}

func TestReadOnlyResourceBlocksMutations(t *testing.T) {
	m := testModel(t)
	for m.current().spec.resource != "logs" {
		m.tabIndex++
	}
	seed(t, m, "logs", `[{"id":"1","action":"update","actor":"admin","detail":"changed a sermon"}]`)

	m, _ = press(t, m, key("n"))
	if m.viewMode != ViewList {
		t.Error("n must be ignored on a read-only resource")
	}
	m, _ = press(t, m, key("e"))
	if m.viewMode != ViewList {
		t.Error("e must be ignored on a read-only resource")
	}
	m, _ = press(t, m, key("d"))
	if m.viewMode != ViewList {
		t.Error("d must be ignored on a read-only resource")
	}
	if strings.Contains(m.View(), "n: New") {
		t.Error("help line should hide mutation keys for read-only resources")
	}
}

func TestBusEventFoldsIntoPage(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	mod, _ := m.Update(busEventMsg{
		resource: "galleries",
		ev:       controller.Created{Entity: models.Gallery{ID: "3", Title: "Baptism"}},
	})
	m = mod.(Model)

	if m.current().page.Len() != 3 {
		t.Errorf("page has %d rows after a created event", m.current().page.Len())
	}
	if !strings.Contains(m.View(), "Baptism") {
		t.Error("new row should render")
	}
}

func TestCreatedEventClosesEditView(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	m, _ = press(t, m, key("n"))
	if m.viewMode != ViewEdit {
		t.Fatal("precondition: edit view open")
	}

	mod, _ := m.Update(busEventMsg{
		resource: "galleries",
		ev:       controller.Created{Entity: models.Gallery{ID: "3", Title: "Baptism"}},
	})
	m = mod.(Model)

	if m.viewMode != ViewList {
		t.Error("a created event should return to the list view")
	}
}

func TestDeletedEventClampsSelection(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)
	m, _ = press(t, m, key("down")) // select row 1

	mod, _ := m.Update(busEventMsg{resource: "galleries", ev: controller.Deleted{ID: "2"}})
	m = mod.(Model)

	if m.selectedRow != 0 {
		t.Errorf("selectedRow = %d after deleting the last row", m.selectedRow)
	}
	if m.current().page.Len() != 1 {
		t.Errorf("page has %d rows", m.current().page.Len())
	}
}

func TestEventForOtherResourceLeavesViewAlone(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)
	seed(t, m, "sermons", `[{"id":"9","title":"Hope"}]`)

	m, _ = press(t, m, key("n"))

	mod, _ := m.Update(busEventMsg{
		resource: "sermons",
		ev:       controller.Created{Entity: models.Sermon{ID: "10", Title: "Grace"}},
	})
	m = mod.(Model)

	if m.viewMode != ViewEdit {
		t.Error("an event for another resource must not close the open dialog")
	}
	if m.entryFor("sermons").page.Len() != 2 {
		t.Error("the event should still fold into its own page")
	}
}

func TestToastLifecycle(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	mod, cmd := m.Update(toastMsg{Title: "Saved", Message: "Your changes were saved.", Variant: controller.VariantSuccess})
	m = mod.(Model)
	if cmd == nil {
		t.Error("a toast should schedule its own expiry")
	}
	if !strings.Contains(m.View(), "Saved: Your changes were saved.") {
		t.Error("toast text missing from the view")
	}

	// A stale expiry must not clear a newer toast.
	mod, _ = m.Update(toastMsg{Title: "Second"})
	m = mod.(Model)
	mod, _ = m.Update(toastExpiredMsg{seq: m.toastSeq - 1})
	m = mod.(Model)
	if m.toast == nil {
		t.Fatal("stale expiry cleared the current toast")
	}

	mod, _ = m.Update(toastExpiredMsg{seq: m.toastSeq})
	m = mod.(Model)
	if m.toast != nil {
		t.Error("matching expiry should clear the toast")
	}
}

func TestRepeatableRowKeys(t *testing.T) {
	m := testModel(t)
	seed(t, m, "give", `[{"id":"1","method":"bank","account_name":"Main","links":["https://a"],"active":true}]`)
	for m.current().spec.resource != "give" {
		m.tabIndex++
	}

	m, _ = press(t, m, key("e"))
	if m.viewMode != ViewEdit {
		t.Fatal("precondition: edit view open")
	}

	// Focus the links row, then add and remove slots.
	for spec, ok := m.focusedSpec(); ok && !spec.field.Repeatable; spec, ok = m.focusedSpec() {
		m, _ = press(t, m, key("tab"))
	}

	before := len(m.formInputs)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if len(m.formInputs) != before+1 {
		t.Errorf("ctrl+a should add an input row: %d -> %d", before, len(m.formInputs))
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if len(m.formInputs) != before {
		t.Errorf("ctrl+x should remove the row again, got %d inputs", len(m.formInputs))
	}
}

func TestWindowResize(t *testing.T) {
	m := testModel(t)
	seed(t, m, "galleries", galleriesSeed)

	mod, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mod.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}
