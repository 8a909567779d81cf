// Package store provides the generic, thread-safe in-memory primitives the
// paylater twin builds its state on: a keyed Store with stable insertion
// order, an append-only Journal, and a simulated Clock.
package store

import (
	"sort"
	"sync"
	"time"
)

// Store is a thread-safe, insertion-ordered map of objects of type T.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
		order: make([]string, 0),
	}
}

// Set inserts or replaces the item with the given ID. Replacing keeps the
// item's original position in the insertion order.
func (s *Store[T]) Set(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

// Get returns the item with the given ID, or false if absent.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// List returns all items in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Filter returns the items matching the predicate, in insertion order.
func (s *Store[T]) Filter(pred func(id string, item T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		if pred(id, s.items[id]) {
			out = append(out, s.items[id])
		}
	}
	return out
}

// Count returns the number of items.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Reset removes all items.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
	s.order = s.order[:0]
}

// Snapshot returns a copy of the items as a JSON-serializable map.
func (s *Store[T]) Snapshot() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]T, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// LoadSnapshot replaces all items from a map. IDs are sorted so the restored
// insertion order is deterministic.
func (s *Store[T]) LoadSnapshot(snapshot map[string]T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T, len(snapshot))
	s.order = make([]string, 0, len(snapshot))
	for k, v := range snapshot {
		s.items[k] = v
		s.order = append(s.order, k)
	}
	sort.Strings(s.order)
}

// Journal is a thread-safe, append-only sequence of entries of type T.
// Append order is the only ordering guarantee it provides.
type Journal[T any] struct {
	mu      sync.RWMutex
	entries []T
}

// NewJournal creates an empty Journal.
func NewJournal[T any]() *Journal[T] {
	return &Journal[T]{entries: make([]T, 0)}
}

// Append adds an entry at the end of the journal.
func (j *Journal[T]) Append(entry T) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// All returns a copy of every entry in append order.
func (j *Journal[T]) All() []T {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]T, len(j.entries))
	copy(out, j.entries)
	return out
}

// Where returns the entries matching the predicate, preserving append order.
func (j *Journal[T]) Where(pred func(entry T) bool) []T {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]T, 0)
	for _, e := range j.entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (j *Journal[T]) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Reset removes all entries.
func (j *Journal[T]) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = j.entries[:0]
}

// Snapshot returns a copy of the entries for admin serialization.
func (j *Journal[T]) Snapshot() []T {
	return j.All()
}

// LoadSnapshot replaces all entries.
func (j *Journal[T]) LoadSnapshot(entries []T) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make([]T, len(entries))
	copy(j.entries, entries)
}

// Clock provides simulated time: wall time plus an adjustable offset, so dev
// tooling can advance the twin's notion of "now" without sleeping.
type Clock struct {
	mu     sync.RWMutex
	offset time.Duration
}

// NewClock creates a clock with no offset.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Now().Add(c.offset)
}

// Advance moves the simulated clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
}

// Offset returns the current offset from wall time.
func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Reset clears the offset.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
}
