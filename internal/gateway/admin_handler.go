package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// AdminStore is the slice of the remote client the back-office needs.
// Authorization is the API's job; the gateway only forwards the token.
type AdminStore interface {
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateCoupon(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) error
}

type AdminHandler struct {
	store AdminStore
}

func NewAdminHandler(store AdminStore) *AdminHandler {
	return &AdminHandler{store: store}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	created, err := h.store.CreateProduct(r.Context(), product)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product.ID = id
	updated, err := h.store.UpdateProduct(r.Context(), product)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var coupon domain.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	created, err := h.store.CreateCoupon(r.Context(), coupon)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "coupon_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_coupon_id", "coupon_id must be a positive integer")
		return
	}
	if err := h.store.DeleteCoupon(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
