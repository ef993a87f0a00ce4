package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/session"
)

// FavoriteStore is the slice of the remote client the handler needs.
type FavoriteStore interface {
	ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, userID, productID int64) error
	RemoveFavorite(ctx context.Context, userID, productID int64) error
}

type FavoritesHandler struct {
	favorites FavoriteStore
	sess      *session.Context
}

func NewFavoritesHandler(favorites FavoriteStore, sess *session.Context) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, sess: sess}
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w)
	if !ok {
		return
	}
	favorites, err := h.favorites.ListFavorites(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, favorites)
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	if err := h.favorites.AddFavorite(r.Context(), user.ID, productID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"productId": productID})
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	if err := h.favorites.RemoveFavorite(r.Context(), user.ID, productID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoritesHandler) requireUser(w http.ResponseWriter) (domain.User, bool) {
	user := h.sess.User()
	if user.ID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "please sign in")
		return domain.User{}, false
	}
	return user, true
}
