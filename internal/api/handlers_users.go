package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
)

// ListUsers handles GET /api/paylater/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	twincore.JSON(w, http.StatusOK, h.svc.Users())
}

// ListCarts handles GET /api/paylater/users/{user_id}/carts.
func (h *Handler) ListCarts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		twincore.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}
	twincore.JSON(w, http.StatusOK, h.svc.CartsForUser(userID))
}

// CheckEligibility handles GET /api/paylater/eligibility?user_id=&cart_id=.
func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	cartID := r.URL.Query().Get("cart_id")
	if userID == "" || cartID == "" {
		twincore.JSON(w, http.StatusBadRequest, map[string]any{
			"eligible": false,
			"reason":   "user_id and cart_id are required",
		})
		return
	}
	twincore.JSON(w, http.StatusOK, h.svc.CheckEligibility(userID, cartID))
}

// GetMeta handles GET /api/paylater/meta.
func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	twincore.JSON(w, http.StatusOK, h.svc.Meta())
}
