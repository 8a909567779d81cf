// Package api implements the paylater HTTP API: a thin adapter mapping
// requests onto the paylater service.
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twin-paylater/internal/paylater"
	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
)

// Handler holds all API handler state.
type Handler struct {
	svc *paylater.Service
	mw  *twincore.Middleware
}

// NewHandler creates an API handler.
func NewHandler(svc *paylater.Service, mw *twincore.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Routes mounts the paylater API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/paylater", func(r chi.Router) {
		// Fault injection for API routes only, never /admin
		r.Use(h.mw.FaultInjection)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{user_id}/carts", h.ListCarts)
		r.Get("/eligibility", h.CheckEligibility)
		r.Get("/meta", h.GetMeta)

		r.Post("/agreement", h.CreateAgreement)
		r.Get("/agreement/{agreementId}", h.GetAgreement)
		r.Patch("/agreement/{agreementId}/instalment/{idx}", h.UpdateInstalment)
		r.Post("/agreement/{agreementId}/retry", h.RetryInstalment)
		r.Post("/agreement/{agreementId}/fail", h.FailInstalment)

		r.Get("/activity-log", h.GetActivityLog)

		// Dev/test routes: scenario select, seed reset
		r.Get("/dev/scenarios", h.ListScenarios)
		r.Post("/dev/scenario/select", h.SelectScenario)
		r.Post("/dev/reset", h.ResetSeed)
	})
}

// domainError maps paylater errors to HTTP statuses: not-found to 404,
// guard violations to 422, bad status values to 400.
func domainError(w http.ResponseWriter, err error) {
	switch {
	case paylater.IsNotFound(err):
		twincore.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, paylater.ErrRetryNotAllowed):
		twincore.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, paylater.ErrInvalidStatus):
		twincore.Error(w, http.StatusBadRequest, err.Error())
	default:
		twincore.Error(w, http.StatusInternalServerError, err.Error())
	}
}
