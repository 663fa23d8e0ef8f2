// ABOUTME: In-process publish/subscribe channel for synchronization events
// ABOUTME: Subscribers run synchronously in registration order, like DOM dispatch
package controller

import "sync"

// Handler receives every published event along with the resource it belongs
// to (the path segment, e.g. "sermons").
type Handler func(resource string, ev Event)

// Bus fans events out to subscribers. Child controllers publish; the owning
// page (or the app shell) subscribes. Publish is synchronous: it returns
// after every handler has run, preserving completion order across events.
type Bus struct {
	mu   sync.RWMutex
	subs []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	b.subs = append(b.subs, h)
	b.mu.Unlock()
}

func (b *Bus) Publish(resource string, ev Event) {
	b.mu.RLock()
	subs := make([]Handler, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, h := range subs {
		h(resource, ev)
	}
}
