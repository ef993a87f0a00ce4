package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/coupon"
)

type CouponHandler struct {
	coupons *coupon.Service
	cart    *cart.Service
}

func NewCouponHandler(coupons *coupon.Service, cartSvc *cart.Service) *CouponHandler {
	return &CouponHandler{coupons: coupons, cart: cartSvc}
}

type ApplyCouponRequestDTO struct {
	Code string `json:"code"`
}

func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.coupons.Apply(r.Context(), req.Code, h.cart.Subtotal()); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cart.Snapshot(h.coupons.Discount()))
}

func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.coupons.Remove()
	respondJSON(w, http.StatusOK, h.cart.Snapshot(0))
}
