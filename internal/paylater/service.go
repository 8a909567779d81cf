// Package paylater implements the pay-in-3 domain logic: the eligibility
// engine, the agreement lifecycle, the instalment state machine, the
// activity log, and the scenario registry. The HTTP layer is a thin adapter
// over this package.
package paylater

import (
	"sync"

	"github.com/wondertwin-ai/twin-paylater/internal/store"
)

// Notifier receives domain events for outbound delivery. Implementations
// must not block.
type Notifier interface {
	Emit(eventType string, payload map[string]any)
}

// Service exposes the paylater operations over an injected store. Agreement
// mutations are serialized by a single mutex so concurrent read-modify-write
// cycles cannot interleave partial schedule updates.
type Service struct {
	store  *store.MemoryStore
	notify Notifier

	mu sync.Mutex // serializes agreement mutations
}

// New creates a Service over the given store.
func New(st *store.MemoryStore) *Service {
	return &Service{store: st}
}

// SetNotifier wires an optional domain-event sink (webhooks).
func (s *Service) SetNotifier(n Notifier) {
	s.notify = n
}

func (s *Service) emit(eventType string, payload map[string]any) {
	if s.notify != nil {
		s.notify.Emit(eventType, payload)
	}
}

// Users returns all seed users.
func (s *Service) Users() []store.User {
	return s.store.Users.List()
}

// CartsForUser returns the carts belonging to the given user. Unknown users
// yield an empty slice.
func (s *Service) CartsForUser(userID string) []store.Cart {
	return s.store.CartsForUser(userID)
}

// Meta returns the seed Meta block.
func (s *Service) Meta() store.Meta {
	return s.store.Meta()
}

// Reset restores the seed data and discards all agreements, log entries,
// and the active scenario.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
}
