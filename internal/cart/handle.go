package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/seyman123/dreamshops-client/internal/cache"
	"github.com/seyman123/dreamshops-client/internal/domain"
)

// CartFetcher is the slice of the remote client the resolver needs.
type CartFetcher interface {
	FetchCart(ctx context.Context, userID int64) (*domain.Cart, error)
}

const defaultHandleTTL = 30 * time.Second

// HandleResolver resolves the server-side cart id for a user. The client
// holds no durable cart-id state, so the id is learned by fetching the
// cart; a short-TTL cache avoids paying that round trip on every
// mutation. Clear and checkout invalidate the cached handle explicitly.
type HandleResolver struct {
	remote CartFetcher
	store  cache.Store
	ttl    time.Duration
}

func NewHandleResolver(remote CartFetcher, store cache.Store) *HandleResolver {
	return &HandleResolver{remote: remote, store: store, ttl: defaultHandleTTL}
}

// Resolve returns the cart id for the user, from cache when fresh,
// otherwise by refetching the cart. A zero id with nil error means the
// user has no cart yet.
func (h *HandleResolver) Resolve(ctx context.Context, userID int64) (int64, error) {
	key := handleKey(userID)

	val, err := h.store.Get(ctx, key)
	if err == nil {
		if id, parseErr := strconv.ParseInt(val, 10, 64); parseErr == nil && id > 0 {
			return id, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("cart handle cache get failed", "error", err)
	}

	fetched, err := h.remote.FetchCart(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("resolve cart handle: %w", err)
	}
	if fetched.ID > 0 {
		if setErr := h.store.Set(ctx, key, strconv.FormatInt(fetched.ID, 10), h.ttl); setErr != nil {
			slog.Warn("cart handle cache set failed", "error", setErr)
		}
	}
	return fetched.ID, nil
}

// Invalidate drops the cached handle for the user.
func (h *HandleResolver) Invalidate(ctx context.Context, userID int64) {
	if err := h.store.Delete(ctx, handleKey(userID)); err != nil {
		slog.Warn("cart handle cache delete failed", "error", err)
	}
}

func handleKey(userID int64) string {
	return fmt.Sprintf("handle:%d", userID)
}
