// ABOUTME: Generic list/CRUD page controller owning one resource collection
// ABOUTME: Folds synchronization events into the collection and guards modal state
package controller

import (
	"context"
	"encoding/json"

	"github.com/vestryhq/vestry/models"
	"github.com/vestryhq/vestry/state"
)

// State keys owned by a ListPage.
const (
	keyItems      = "items"
	keyLoading    = "loading"
	keyShowAdd    = "showAdd"
	keyShowUpdate = "showUpdate"
	keyShowView   = "showView"
	keyShowDelete = "showDelete"
	keyUpdateData = "updateData"
	keyViewData   = "viewData"
	keyDeleteData = "deleteData"
)

// Loader fetches the full collection from the REST boundary.
type Loader[E models.Entity] func(ctx context.Context) ([]E, error)

// RowFunc projects one entity into display columns.
type RowFunc[E models.Entity] func(index int, entity E) []string

// ListPage owns the collection for one resource plus the modal state machine
// around it. The collection mutates only via LoadAll or Apply; every mutation
// rebuilds the slice so row projections never alias stale data.
//
// Deletion is terminal until the next full resync: once a Deleted event is
// applied for an id, later Updated or AssetChanged events for that id are
// dropped instead of reintroducing the row. Adopting a complete collection
// (LoadAll success or SeedJSON) clears the tombstones, since the server may
// legitimately reintroduce an id and its rows must update normally again.
type ListPage[E models.Entity] struct {
	resource string
	store    *state.Store
	loader   Loader[E]
	rowFn    RowFunc[E]
	notifier Notifier

	tombstones map[models.ID]struct{}
}

func NewListPage[E models.Entity](resource string, loader Loader[E], rowFn RowFunc[E], notifier Notifier) *ListPage[E] {
	p := &ListPage[E]{
		resource:   resource,
		store:      state.NewStore(),
		loader:     loader,
		rowFn:      rowFn,
		notifier:   notifier,
		tombstones: make(map[models.ID]struct{}),
	}
	p.store.Set(keyLoading, false)
	return p
}

func (p *ListPage[E]) Resource() string    { return p.resource }
func (p *ListPage[E]) State() *state.Store { return p.store }

// Items returns the current collection; nil until the first successful load
// or seed.
func (p *ListPage[E]) Items() []E {
	return state.Value[[]E](p.store, keyItems)
}

func (p *ListPage[E]) Loading() bool {
	return state.Value[bool](p.store, keyLoading)
}

// Loaded reports whether the collection has been populated at least once.
func (p *ListPage[E]) Loaded() bool {
	_, ok := p.store.Get(keyItems)
	return ok
}

func (p *ListPage[E]) Len() int { return len(p.Items()) }

// LoadAll replaces the collection from the REST boundary. Failures surface
// through the notifier and leave the collection untouched; the loading flag
// clears on every path.
func (p *ListPage[E]) LoadAll(ctx context.Context) {
	p.store.Set(keyLoading, true)
	defer p.store.Set(keyLoading, false)

	items, err := p.loader(ctx)
	if err != nil {
		notifyError(p.notifier, "Failed to load "+p.resource, err)
		return
	}
	if items == nil {
		items = []E{}
	}
	p.tombstones = make(map[models.ID]struct{})
	p.store.Set(keyItems, items)
}

// Apply folds one synchronization event into the collection. It returns true
// when the event carried no usable payload and the caller must run a full
// LoadAll instead.
func (p *ListPage[E]) Apply(ev Event) (reload bool) {
	switch ev := ev.(type) {
	case Created:
		p.closeModal(ModalAdd)
		ent, ok := ev.Entity.(E)
		if !ok {
			return true
		}
		p.store.Set(keyItems, append(append([]E(nil), p.Items()...), ent))
		return false

	case Updated:
		p.closeModal(ModalUpdate)
		ent, ok := ev.Entity.(E)
		if !ok {
			return true
		}
		p.replace(ent)
		return false

	case AssetChanged:
		ent, ok := ev.Entity.(E)
		if !ok {
			return true
		}
		p.replace(ent)
		return false

	case Deleted:
		p.tombstones[ev.ID] = struct{}{}
		src := p.Items()
		items := make([]E, 0, len(src))
		for _, it := range src {
			if it.EntityID() != ev.ID {
				items = append(items, it)
			}
		}
		p.store.Set(keyItems, items)
		p.closeModal(ModalDelete)
		return false
	}
	return false
}

// replace swaps the collection entry matching the entity's id, preserving
// order, and refreshes any open modal slot holding the same id so the dialog
// reflects the latest server state. Tombstoned and unknown ids are no-ops.
func (p *ListPage[E]) replace(ent E) {
	id := ent.EntityID()
	if _, gone := p.tombstones[id]; gone {
		return
	}

	src := p.Items()
	items := make([]E, 0, len(src))
	for _, it := range src {
		if it.EntityID() == id {
			items = append(items, ent)
		} else {
			items = append(items, it)
		}
	}
	p.store.Set(keyItems, items)

	for _, slot := range []string{keyViewData, keyUpdateData} {
		if cur, ok := p.store.Get(slot); ok {
			if held, ok := cur.(E); ok && held.EntityID() == id {
				p.store.Set(slot, ent)
			}
		}
	}
}

// OpenFor transitions a modal to open for the given row. All modals close
// first, so no Open -> Open transition can leave two dialogs visible or a
// stale active-entity slot behind. A row id that is no longer in the
// collection is a silent no-op.
func (p *ListPage[E]) OpenFor(kind ModalKind, id models.ID) {
	p.CloseAll()

	if kind == ModalAdd {
		p.store.Set(keyShowAdd, true)
		return
	}

	ent, ok := p.find(id)
	if !ok {
		return
	}
	switch kind {
	case ModalUpdate:
		p.store.Set(keyUpdateData, ent)
		p.store.Set(keyShowUpdate, true)
	case ModalView:
		p.store.Set(keyViewData, ent)
		p.store.Set(keyShowView, true)
	case ModalDelete:
		p.store.Set(keyDeleteData, ent)
		p.store.Set(keyShowDelete, true)
	}
}

// CloseAll clears every modal flag and active-entity slot.
func (p *ListPage[E]) CloseAll() {
	p.store.Set(keyShowAdd, false)
	p.store.Set(keyShowUpdate, false)
	p.store.Set(keyShowView, false)
	p.store.Set(keyShowDelete, false)
	p.store.Set(keyUpdateData, nil)
	p.store.Set(keyViewData, nil)
	p.store.Set(keyDeleteData, nil)
}

func (p *ListPage[E]) closeModal(kind ModalKind) {
	switch kind {
	case ModalAdd:
		p.store.Set(keyShowAdd, false)
	case ModalUpdate:
		p.store.Set(keyShowUpdate, false)
		p.store.Set(keyUpdateData, nil)
	case ModalView:
		p.store.Set(keyShowView, false)
		p.store.Set(keyViewData, nil)
	case ModalDelete:
		p.store.Set(keyShowDelete, false)
		p.store.Set(keyDeleteData, nil)
	}
}

// ModalOpen reports whether the given modal is currently visible.
func (p *ListPage[E]) ModalOpen(kind ModalKind) bool {
	switch kind {
	case ModalAdd:
		return state.Value[bool](p.store, keyShowAdd)
	case ModalUpdate:
		return state.Value[bool](p.store, keyShowUpdate)
	case ModalView:
		return state.Value[bool](p.store, keyShowView)
	case ModalDelete:
		return state.Value[bool](p.store, keyShowDelete)
	}
	return false
}

// Active returns the entity held by the given modal's slot.
func (p *ListPage[E]) Active(kind ModalKind) (E, bool) {
	var key string
	switch kind {
	case ModalUpdate:
		key = keyUpdateData
	case ModalView:
		key = keyViewData
	case ModalDelete:
		key = keyDeleteData
	default:
		var zero E
		return zero, false
	}
	v, ok := p.store.Get(key)
	if !ok || v == nil {
		var zero E
		return zero, false
	}
	ent, ok := v.(E)
	return ent, ok
}

// ActiveEntity is the type-erased form of Active, for the app shell.
func (p *ListPage[E]) ActiveEntity(kind ModalKind) (models.Entity, bool) {
	ent, ok := p.Active(kind)
	if !ok {
		return nil, false
	}
	return ent, true
}

func (p *ListPage[E]) find(id models.ID) (E, bool) {
	for _, it := range p.Items() {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero E
	return zero, false
}

// IDAt maps a display row index back to an entity id.
func (p *ListPage[E]) IDAt(row int) (models.ID, bool) {
	items := p.Items()
	if row < 0 || row >= len(items) {
		return "", false
	}
	return items[row].EntityID(), true
}

// Rows recomputes the tabular projection of the collection. The result is
// derived, read-only, and never fed back into the collection.
func (p *ListPage[E]) Rows() [][]string {
	items := p.Items()
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, p.rowFn(i, it))
	}
	return rows
}

// SeedJSON populates the collection from a cached snapshot without touching
// the loading flag. Returns false when the snapshot does not decode.
func (p *ListPage[E]) SeedJSON(data []byte) bool {
	var items []E
	if err := json.Unmarshal(data, &items); err != nil {
		return false
	}
	p.tombstones = make(map[models.ID]struct{})
	p.store.Set(keyItems, items)
	return true
}

// SnapshotJSON serializes the current collection for the cache.
func (p *ListPage[E]) SnapshotJSON() ([]byte, error) {
	return json.Marshal(p.Items())
}

// Page is the type-erased view of a ListPage used by the app shell, which
// hosts pages of different entity types side by side.
type Page interface {
	Resource() string
	LoadAll(ctx context.Context)
	Loading() bool
	Loaded() bool
	Len() int
	Rows() [][]string
	Apply(ev Event) bool
	OpenFor(kind ModalKind, id models.ID)
	CloseAll()
	ModalOpen(kind ModalKind) bool
	ActiveEntity(kind ModalKind) (models.Entity, bool)
	IDAt(row int) (models.ID, bool)
	SeedJSON(data []byte) bool
	SnapshotJSON() ([]byte, error)
	State() *state.Store
}

var _ Page = (*ListPage[models.Gallery])(nil)
