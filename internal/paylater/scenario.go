package paylater

import "github.com/wondertwin-ai/twin-paylater/internal/store"

// Scenarios returns all seed scenarios unmodified.
func (s *Service) Scenarios() []store.Scenario {
	return s.store.Scenarios.List()
}

// SelectScenario records the scenario as active and returns it. Selection is
// purely informational: it drives no instalment transitions. Test drivers
// read the scenario's outcome labels and call the instalment operations
// themselves.
func (s *Service) SelectScenario(scenarioID string) (store.Scenario, error) {
	sc, ok := s.store.Scenarios.Get(scenarioID)
	if !ok {
		return store.Scenario{}, &NotFoundError{Kind: "scenario", ID: scenarioID}
	}
	s.store.SetActiveScenario(&sc)
	return sc, nil
}

// ActiveScenario returns the currently selected scenario, or nil.
func (s *Service) ActiveScenario() *store.Scenario {
	return s.store.ActiveScenario()
}
