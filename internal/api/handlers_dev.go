package api

import (
	"encoding/json"
	"net/http"

	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
)

// GetActivityLog handles GET /api/paylater/activity-log?agreementId=.
// Without a filter it returns the full log in append order.
func (h *Handler) GetActivityLog(w http.ResponseWriter, r *http.Request) {
	agreementID := r.URL.Query().Get("agreementId")
	twincore.JSON(w, http.StatusOK, h.svc.ActivityLog(agreementID))
}

// ListScenarios handles GET /api/paylater/dev/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	twincore.JSON(w, http.StatusOK, h.svc.Scenarios())
}

// SelectScenario handles POST /api/paylater/dev/scenario/select.
func (h *Handler) SelectScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenarioId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twincore.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ScenarioID == "" {
		twincore.Error(w, http.StatusBadRequest, "scenarioId is required")
		return
	}

	sc, err := h.svc.SelectScenario(req.ScenarioID)
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusOK, map[string]any{
		"message":        "Scenario selected",
		"activeScenario": sc,
	})
}

// ResetSeed handles POST /api/paylater/dev/reset.
func (h *Handler) ResetSeed(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset()
	twincore.JSON(w, http.StatusOK, map[string]string{"message": "Seed data restored"})
}
