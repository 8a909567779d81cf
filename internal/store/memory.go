package store

import (
	"encoding/json"
	"sync"

	pkgstore "github.com/wondertwin-ai/twin-paylater/pkg/store"
)

// MemoryStore holds all paylater twin state in memory. Users, Carts,
// Scenarios, and Meta are seed collections, mutated only by Reset/LoadState;
// Agreements, Logs, and the active scenario are derived state.
type MemoryStore struct {
	Users      *pkgstore.Store[User]
	Carts      *pkgstore.Store[Cart]
	Scenarios  *pkgstore.Store[Scenario]
	Agreements *pkgstore.Store[Agreement]
	Logs       *pkgstore.Journal[ActivityLogEntry]
	Clock      *pkgstore.Clock

	mu     sync.RWMutex
	meta   Meta
	active *Scenario
	seed   SeedData // originally loaded fixture, restored by Reset
}

// New creates a MemoryStore populated from the given seed data.
func New(seed SeedData) *MemoryStore {
	s := &MemoryStore{
		Users:      pkgstore.New[User](),
		Carts:      pkgstore.New[Cart](),
		Scenarios:  pkgstore.New[Scenario](),
		Agreements: pkgstore.New[Agreement](),
		Logs:       pkgstore.NewJournal[ActivityLogEntry](),
		Clock:      pkgstore.NewClock(),
		seed:       seed,
	}
	s.applySeed(seed)
	return s
}

func (s *MemoryStore) applySeed(seed SeedData) {
	for _, u := range seed.Users {
		s.Users.Set(u.UserID, u)
	}
	for _, c := range seed.Carts {
		s.Carts.Set(c.CartID, c)
	}
	for _, sc := range seed.Scenarios {
		s.Scenarios.Set(sc.ScenarioID, sc)
	}
	s.mu.Lock()
	s.meta = seed.Meta
	s.mu.Unlock()
}

// Reset restores the seed collections and discards all derived state. Safe
// to call at any time; operations referencing discarded agreement IDs fail
// with not-found afterwards.
func (s *MemoryStore) Reset() {
	s.Users.Reset()
	s.Carts.Reset()
	s.Scenarios.Reset()
	s.Agreements.Reset()
	s.Logs.Reset()

	s.mu.Lock()
	s.active = nil
	seed := s.seed
	s.mu.Unlock()

	s.applySeed(seed)
}

// Meta returns the seed Meta block.
func (s *MemoryStore) Meta() Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// CartsForUser returns the user's carts in seed order. An unknown user
// yields an empty slice, not an error.
func (s *MemoryStore) CartsForUser(userID string) []Cart {
	carts := s.Carts.Filter(func(_ string, c Cart) bool {
		return c.UserID == userID
	})
	if carts == nil {
		carts = []Cart{}
	}
	return carts
}

// ActiveScenario returns the currently selected scenario, or nil.
func (s *MemoryStore) ActiveScenario() *Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil
	}
	sc := *s.active
	return &sc
}

// SetActiveScenario records the selected scenario. Pass nil to clear it.
func (s *MemoryStore) SetActiveScenario(sc *Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = sc
}

// stateSnapshot is the JSON-serializable state for admin endpoints.
type stateSnapshot struct {
	Meta           Meta                  `json:"meta"`
	Users          map[string]User       `json:"users"`
	Carts          map[string]Cart       `json:"carts"`
	Scenarios      map[string]Scenario   `json:"scenarios"`
	Agreements     map[string]Agreement  `json:"agreements"`
	Logs           []ActivityLogEntry    `json:"logs"`
	ActiveScenario *Scenario             `json:"active_scenario,omitempty"`
}

// Snapshot returns the full state as a JSON-serializable value.
func (s *MemoryStore) Snapshot() any {
	return stateSnapshot{
		Meta:           s.Meta(),
		Users:          s.Users.Snapshot(),
		Carts:          s.Carts.Snapshot(),
		Scenarios:      s.Scenarios.Snapshot(),
		Agreements:     s.Agreements.Snapshot(),
		Logs:           s.Logs.Snapshot(),
		ActiveScenario: s.ActiveScenario(),
	}
}

// LoadState replaces the full state from a JSON body. The originally loaded
// seed is kept: a later Reset still restores the startup fixture.
func (s *MemoryStore) LoadState(data []byte) error {
	var snap stateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	if snap.Users != nil {
		s.Users.LoadSnapshot(snap.Users)
	}
	if snap.Carts != nil {
		s.Carts.LoadSnapshot(snap.Carts)
	}
	if snap.Scenarios != nil {
		s.Scenarios.LoadSnapshot(snap.Scenarios)
	}
	if snap.Agreements != nil {
		s.Agreements.LoadSnapshot(snap.Agreements)
	}
	if snap.Logs != nil {
		s.Logs.LoadSnapshot(snap.Logs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Meta.Currency != "" {
		s.meta = snap.Meta
	}
	s.active = snap.ActiveScenario
	return nil
}
