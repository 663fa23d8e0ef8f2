// ABOUTME: Delete-confirmation controller holding exactly one candidate entity
// ABOUTME: Publishes a Deleted event on confirm, does nothing on cancel
package controller

import (
	"context"
	"sync"

	"github.com/vestryhq/vestry/models"
	"github.com/vestryhq/vestry/state"
)

const keyCandidate = "candidate"

// Remover deletes one entity at the REST boundary.
type Remover func(ctx context.Context, id models.ID) error

// Confirm is the delete-confirmation dialog controller.
type Confirm struct {
	resource string
	store    *state.Store
	notifier Notifier
	bus      *Bus
	remove   Remover

	mu       sync.Mutex
	deleting bool
}

func NewConfirm(resource string, remove Remover, bus *Bus, notifier Notifier) *Confirm {
	return &Confirm{
		resource: resource,
		store:    state.NewStore(),
		notifier: notifier,
		bus:      bus,
		remove:   remove,
	}
}

func (c *Confirm) Resource() string    { return c.resource }
func (c *Confirm) State() *state.Store { return c.store }

// SetEntity sets the deletion candidate.
func (c *Confirm) SetEntity(ent models.Entity) {
	c.store.Set(keyCandidate, ent)
}

// Entity returns the candidate, or nil.
func (c *Confirm) Entity() models.Entity {
	v, ok := c.store.Get(keyCandidate)
	if !ok || v == nil {
		return nil
	}
	ent, _ := v.(models.Entity)
	return ent
}

// Confirm performs the deletion and publishes Deleted with just the id. A
// confirm already in flight is a no-op.
func (c *Confirm) Confirm(ctx context.Context) {
	ent := c.Entity()
	if ent == nil {
		return
	}

	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		return
	}
	c.deleting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.deleting = false
		c.mu.Unlock()
	}()

	if err := c.remove(ctx, ent.EntityID()); err != nil {
		notifyError(c.notifier, "Failed to delete", err)
		return
	}

	c.store.Set(keyCandidate, nil)
	c.bus.Publish(c.resource, Deleted{ID: ent.EntityID()})
	notifySuccess(c.notifier, "Deleted", "The record was deleted.")
}

// Cancel clears the candidate without side effects.
func (c *Confirm) Cancel() {
	c.store.Set(keyCandidate, nil)
}
