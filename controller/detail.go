// ABOUTME: Read-only detail controller with per-item asset deletion
// ABOUTME: Adopts the server's updated parent after every asset removal
package controller

import (
	"context"

	"github.com/vestryhq/vestry/models"
	"github.com/vestryhq/vestry/state"
)

const keyEntity = "entity"

// AssetRemover deletes one positional item from an entity's asset array and
// returns the server's updated parent entity.
type AssetRemover func(ctx context.Context, id models.ID, assetType string, index int) (models.Entity, error)

// Detail projects one entity read-only. For media-bearing entities it exposes
// per-item delete actions; asset positions are only meaningful until the next
// mutation, so the controller never splices arrays locally and always adopts
// the parent record the server returns.
type Detail struct {
	resource    string
	store       *state.Store
	notifier    Notifier
	bus         *Bus
	removeAsset AssetRemover
}

func NewDetail(resource string, removeAsset AssetRemover, bus *Bus, notifier Notifier) *Detail {
	return &Detail{
		resource:    resource,
		store:       state.NewStore(),
		notifier:    notifier,
		bus:         bus,
		removeAsset: removeAsset,
	}
}

func (d *Detail) Resource() string    { return d.resource }
func (d *Detail) State() *state.Store { return d.store }

// SetEntity replaces the displayed entity.
func (d *Detail) SetEntity(ent models.Entity) {
	d.store.Set(keyEntity, ent)
}

// Entity returns the displayed entity, or nil.
func (d *Detail) Entity() models.Entity {
	v, ok := d.store.Get(keyEntity)
	if !ok || v == nil {
		return nil
	}
	ent, _ := v.(models.Entity)
	return ent
}

// DeleteAsset removes one asset item by position, replaces the displayed
// entity with the server's copy, and announces the change so the owning
// page's collection stays consistent.
func (d *Detail) DeleteAsset(ctx context.Context, assetType string, index int) {
	ent := d.Entity()
	if ent == nil || d.removeAsset == nil {
		return
	}

	updated, err := d.removeAsset(ctx, ent.EntityID(), assetType, index)
	if err != nil {
		notifyError(d.notifier, "Failed to delete "+assetType, err)
		return
	}

	d.SetEntity(updated)
	d.bus.Publish(d.resource, AssetChanged{Entity: updated})
	notifySuccess(d.notifier, "Deleted", "The item was removed.")
}
