package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/coupon"
	"github.com/seyman123/dreamshops-client/internal/session"
)

type CartHandler struct {
	cart    *cart.Service
	coupons *coupon.Service
	sess    *session.Context
}

func NewCartHandler(cartSvc *cart.Service, coupons *coupon.Service, sess *session.Context) *CartHandler {
	return &CartHandler{cart: cartSvc, coupons: coupons, sess: sess}
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.FetchItems(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	line, ok := h.cart.Line(itemID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no such item in the cart")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), line, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	line, ok := h.cart.Line(itemID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no such item in the cart")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), line); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK)
}

// Clear empties the cart and, with it, any applied coupon.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	err := h.cart.Clear(r.Context())
	h.coupons.Remove()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK)
}

func (h *CartHandler) Badge(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"count": h.sess.Badge()})
}

func (h *CartHandler) respondSnapshot(w http.ResponseWriter, status int) {
	w.Header().Set("X-Cart-Count", strconv.Itoa(h.sess.Badge()))
	respondJSON(w, status, h.cart.Snapshot(h.coupons.Discount()))
}
