// ABOUTME: Typed synchronization events exchanged between child controllers and list pages
// ABOUTME: Replaces DOM event bubbling with an explicit enum published on the Bus
package controller

import "github.com/vestryhq/vestry/models"

// Event is one collection-synchronization message. A nil Entity in Created,
// Updated, or AssetChanged means "something changed, reload the collection";
// callers use it when they cannot supply the record itself.
type Event interface {
	isEvent()
}

// Created announces a successfully created entity.
type Created struct {
	Entity models.Entity
}

// Updated announces a successfully updated entity.
type Updated struct {
	Entity models.Entity
}

// Deleted announces a successful deletion by id.
type Deleted struct {
	ID models.ID
}

// AssetChanged announces that an item was removed from an entity's asset
// array; Entity is the server's updated parent record.
type AssetChanged struct {
	Entity models.Entity
}

func (Created) isEvent()      {}
func (Updated) isEvent()      {}
func (Deleted) isEvent()      {}
func (AssetChanged) isEvent() {}

// ModalKind names the four dialogs a list page can show.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalAdd
	ModalUpdate
	ModalView
	ModalDelete
)

func (k ModalKind) String() string {
	switch k {
	case ModalAdd:
		return "add"
	case ModalUpdate:
		return "update"
	case ModalView:
		return "view"
	case ModalDelete:
		return "delete"
	}
	return "none"
}
