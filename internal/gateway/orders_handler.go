package gateway

import (
	"context"
	"net/http"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/session"
)

// OrderLister is the slice of the remote client the handler needs.
type OrderLister interface {
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type OrdersHandler struct {
	orders OrderLister
	sess   *session.Context
}

func NewOrdersHandler(orders OrderLister, sess *session.Context) *OrdersHandler {
	return &OrdersHandler{orders: orders, sess: sess}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.sess.User()
	if user.ID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "please sign in")
		return
	}
	orders, err := h.orders.ListOrders(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
