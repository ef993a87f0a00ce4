package gateway

import (
	"net/http"

	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/checkout"
	"github.com/seyman123/dreamshops-client/internal/coupon"
	"github.com/seyman123/dreamshops-client/internal/session"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	cart     *cart.Service
	coupons  *coupon.Service
	sess     *session.Context
}

func NewCheckoutHandler(svc *checkout.Service, cartSvc *cart.Service, coupons *coupon.Service, sess *session.Context) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, cart: cartSvc, coupons: coupons, sess: sess}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Checkout(r.Context(), h.cart.Lines(), h.coupons.Applied(), h.sess.User())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	// the storefront navigates to the order list after checkout
	w.Header().Set("Location", "/api/v1/orders")
	respondJSON(w, http.StatusCreated, order)
}
