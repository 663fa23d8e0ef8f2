// ABOUTME: Terminal admin console using the bubbletea framework
// ABOUTME: Hosts one list page per church resource plus modal form/detail/delete dialogs
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/cache"
	"github.com/vestryhq/vestry/controller"
)

// ViewMode represents the current TUI view.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewConfirmDelete
)

// Messages delivered through the program loop.
type (
	// busEventMsg carries one synchronization event published by a child
	// controller into the update loop.
	busEventMsg struct {
		resource string
		ev       controller.Event
	}

	// loadedMsg signals that a collection load settled (success or failure).
	loadedMsg struct {
		resource string
	}

	// opDoneMsg signals that a submit/confirm/asset operation returned; any
	// state changes already arrived as busEventMsg.
	opDoneMsg struct{}

	// toastMsg surfaces a notification in the status line.
	toastMsg controller.Notification

	// toastExpiredMsg clears the toast identified by seq.
	toastExpiredMsg struct {
		seq int
	}
)

// Model is the main bubbletea model.
type Model struct {
	client  *api.Client
	cache   *cache.Store
	bus     *controller.Bus
	entries []*resourceEntry

	viewMode ViewMode
	tabIndex int

	// List view state
	selectedRow int
	searchQuery string
	searching   bool
	searchInput textinput.Model

	// Edit view state
	formInputs []textinput.Model
	inputSpecs []inputSpec
	focusIndex int

	// Detail view state
	selectedAsset int

	// Toast state
	toast    *controller.Notification
	toastSeq int

	// UI state
	width  int
	height int

	signals chan tea.Msg
}

// NewModel builds the console. The cache store may be nil (no snapshot
// seeding). Child controllers publish through the bus and the notifier; both
// are bridged into the program loop over the signals channel.
func NewModel(client *api.Client, snapshots *cache.Store) Model {
	signals := make(chan tea.Msg, 64)

	bus := controller.NewBus()
	bus.Subscribe(func(resource string, ev controller.Event) {
		signals <- busEventMsg{resource: resource, ev: ev}
	})

	notifier := controller.NotifyFunc(func(n controller.Notification) {
		signals <- toastMsg(n)
	})

	search := textinput.New()
	search.Placeholder = "Search"
	search.CharLimit = 80

	m := Model{
		client:      client,
		cache:       snapshots,
		bus:         bus,
		entries:     buildEntries(client, bus, notifier),
		viewMode:    ViewList,
		searchInput: search,
		width:       80,
		height:      24,
		signals:     signals,
	}
	m.seedFromCache()
	return m
}

func (m Model) current() *resourceEntry {
	return m.entries[m.tabIndex]
}

func (m Model) entryFor(resource string) *resourceEntry {
	for _, e := range m.entries {
		if e.spec.resource == resource {
			return e
		}
	}
	return nil
}

func (m Model) seedFromCache() {
	if m.cache == nil {
		return
	}
	for _, e := range m.entries {
		data, found, err := m.cache.Snapshot(e.spec.resource)
		if err != nil || !found {
			continue
		}
		_ = e.page.SeedJSON(data)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(m.current()), m.waitSignal())
}

// waitSignal re-arms the bridge between controller callbacks and the loop.
func (m Model) waitSignal() tea.Cmd {
	return func() tea.Msg {
		return <-m.signals
	}
}

// loadCmd runs a blocking collection load off the event loop, then persists
// a snapshot for the next cold start.
func (m Model) loadCmd(e *resourceEntry) tea.Cmd {
	snapshots := m.cache
	return func() tea.Msg {
		e.page.LoadAll(context.Background())
		if snapshots != nil && e.page.Loaded() {
			if data, err := e.page.SnapshotJSON(); err == nil {
				_ = snapshots.PutSnapshot(e.spec.resource, data)
			}
		}
		return loadedMsg{resource: e.spec.resource}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case busEventMsg:
		return m.handleBusEvent(msg)

	case loadedMsg:
		if e := m.entryFor(msg.resource); e != nil && m.selectedRow >= e.page.Len() {
			m.selectedRow = 0
		}
		return m, nil

	case opDoneMsg:
		return m, nil

	case toastMsg:
		n := controller.Notification(msg)
		m.toast = &n
		m.toastSeq++
		seq := m.toastSeq
		d := n.Duration
		if d <= 0 {
			d = 4 * time.Second
		}
		return m, tea.Tick(d, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		})

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil
	}
	return m, nil
}

// handleBusEvent folds a synchronization event into the owning page and
// brings the visible view back in line with the page's modal state.
func (m Model) handleBusEvent(msg busEventMsg) (tea.Model, tea.Cmd) {
	e := m.entryFor(msg.resource)
	if e == nil {
		return m, m.waitSignal()
	}

	cmds := []tea.Cmd{m.waitSignal()}
	if reload := e.page.Apply(msg.ev); reload {
		cmds = append(cmds, m.loadCmd(e))
	} else if m.cache != nil {
		if data, err := e.page.SnapshotJSON(); err == nil {
			_ = m.cache.PutSnapshot(e.spec.resource, data)
		}
	}

	if e == m.current() {
		switch msg.ev.(type) {
		case controller.Created, controller.Updated:
			if !e.page.ModalOpen(controller.ModalAdd) && !e.page.ModalOpen(controller.ModalUpdate) && m.viewMode == ViewEdit {
				m.viewMode = ViewList
			}
		case controller.Deleted:
			if !e.page.ModalOpen(controller.ModalDelete) && m.viewMode == ViewConfirmDelete {
				m.viewMode = ViewList
			}
			if m.selectedRow >= e.page.Len() && m.selectedRow > 0 {
				m.selectedRow--
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}
	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("9")).
			Padding(0, 1)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("28")).
				Padding(0, 1)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	text := m.toast.Title
	if m.toast.Message != "" {
		text += ": " + m.toast.Message
	}
	switch m.toast.Variant {
	case controller.VariantError, controller.VariantWarning:
		return toastErrorStyle.Render(text)
	case controller.VariantSuccess:
		return toastSuccessStyle.Render(text)
	}
	return toastInfoStyle.Render(text)
}
