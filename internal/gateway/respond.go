package gateway

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/checkout"
	"github.com/seyman123/dreamshops-client/internal/coupon"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps service and remote errors to HTTP responses.
// Business-rule statuses from the API pass through unchanged.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, remote.ErrUnauthenticated), errors.Is(err, cart.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "please sign in")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, cart.ErrMalformedLine):
		respondError(w, http.StatusBadRequest, "malformed_line", "cart line is missing its product")
	case errors.Is(err, cart.ErrNoCartHandle):
		respondError(w, http.StatusNotFound, "no_cart", "no cart found for user")
	case errors.Is(err, remote.ErrBackendDown):
		respondError(w, http.StatusServiceUnavailable, "backend_unavailable", "the store backend is temporarily unavailable")
	case errors.Is(err, coupon.ErrRejected),
		errors.Is(err, coupon.ErrCodeEmpty),
		errors.Is(err, coupon.ErrCodeTooShort),
		errors.Is(err, coupon.ErrCodeTooLong),
		errors.Is(err, coupon.ErrCodeFormat):
		respondError(w, http.StatusBadRequest, "invalid_coupon", err.Error())
	default:
		if status := remote.StatusOf(err); status != 0 {
			respondError(w, status, "upstream_error", err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "upstream_unreachable", "the store backend could not be reached")
	}
}
