// ABOUTME: Map-backed component state store with a synchronous render hook
// ABOUTME: Every Set commits the write and then invokes the registered renderer
package state

import "sync"

// Store holds per-component state as a key/value map. Writes go through Set,
// which invokes the render hook after the value is committed, so rendered
// output always reflects current state. There is no diffing: one Set, one
// full re-render of the owning component.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	render func()
}

func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// OnRender registers the render hook. Passing nil detaches it. The hook must
// be a pure projection of state; it runs synchronously on every Set and must
// not call back into Set.
func (s *Store) OnRender(fn func()) {
	s.mu.Lock()
	s.render = fn
	s.mu.Unlock()
}

// Get reads the current value for key. No side effects.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set writes key and triggers a render. The hook runs outside the lock so it
// can read other keys.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	render := s.render
	s.mu.Unlock()

	if render != nil {
		render()
	}
}

// Value reads key and asserts it to T, returning T's zero value when the key
// is absent or holds a different type.
func Value[T any](s *Store, key string) T {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}
