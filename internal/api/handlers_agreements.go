package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
)

// CreateAgreement handles POST /api/paylater/agreement.
func (h *Handler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		CartID string `json:"cart_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twincore.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.CartID == "" {
		twincore.Error(w, http.StatusBadRequest, "user_id and cart_id are required")
		return
	}

	agreement, err := h.svc.CreateAgreement(req.UserID, req.CartID)
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusCreated, agreement)
}

// GetAgreement handles GET /api/paylater/agreement/{agreementId}.
func (h *Handler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	agreement, err := h.svc.GetAgreement(chi.URLParam(r, "agreementId"))
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusOK, agreement)
}

// UpdateInstalment handles PATCH /api/paylater/agreement/{agreementId}/instalment/{idx}.
// The idx path param is 1-based; the core setter takes the 0-based index.
func (h *Handler) UpdateInstalment(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementId")
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 1 {
		twincore.Error(w, http.StatusBadRequest, "idx must be a positive instalment number")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twincore.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Status == "" {
		twincore.Error(w, http.StatusBadRequest, "status is required")
		return
	}

	agreement, err := h.svc.SetInstalmentStatus(agreementID, idx-1, req.Status)
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusOK, agreement)
}

// RetryInstalment handles POST /api/paylater/agreement/{agreementId}/retry.
func (h *Handler) RetryInstalment(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementId")

	var req struct {
		InstalmentNumber int `json:"instalmentNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twincore.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.InstalmentNumber == 0 {
		twincore.Error(w, http.StatusBadRequest, "instalmentNumber is required")
		return
	}

	agreement, err := h.svc.RetryInstalment(agreementID, req.InstalmentNumber)
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusOK, agreement)
}

// FailInstalment handles POST /api/paylater/agreement/{agreementId}/fail.
func (h *Handler) FailInstalment(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementId")

	var req struct {
		InstalmentNumber int `json:"instalmentNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twincore.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.InstalmentNumber == 0 {
		twincore.Error(w, http.StatusBadRequest, "instalmentNumber is required")
		return
	}

	agreement, err := h.svc.FailInstalment(agreementID, req.InstalmentNumber)
	if err != nil {
		domainError(w, err)
		return
	}
	twincore.JSON(w, http.StatusOK, agreement)
}
