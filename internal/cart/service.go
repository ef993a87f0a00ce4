// Package cart reconciles the session-local view of the shopping cart
// with the authoritative cart held by the remote API. Mutations are
// two-phase: issue the server call, then on confirmation apply a pure
// state transition to the in-memory lines.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/session"
)

// RemoteCart is the slice of the remote client the service needs.
type RemoteCart interface {
	CartFetcher
	UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID int64) error
	ClearCart(ctx context.Context, cartID int64) error
	ClearUserCart(ctx context.Context, userID int64) error
	CartItemCount(ctx context.Context, userID int64) (int, error)
}

var (
	ErrNotAuthenticated = errors.New("cart: user is not signed in")
	ErrMalformedLine    = errors.New("cart: line is missing its product")
	ErrNoCartHandle     = errors.New("cart: no cart id could be resolved")
)

type Service struct {
	remote  RemoteCart
	handles *HandleResolver
	sess    *session.Context

	// collapses the mount-time double fetch and rapid badge refreshes
	sfg singleflight.Group

	mu         sync.Mutex
	lines      []domain.CartLine
	loadFailed bool
}

func NewService(remote RemoteCart, handles *HandleResolver, sess *session.Context) *Service {
	return &Service{remote: remote, handles: handles, sess: sess}
}

// FetchItems loads the authoritative cart for the signed-in user. On
// failure the local lines are emptied and an error state is set; there
// is no retry until the caller fetches again.
func (s *Service) FetchItems(ctx context.Context) error {
	user := s.sess.User()
	if user.ID == 0 {
		return ErrNotAuthenticated
	}

	_, err, _ := s.sfg.Do(fmt.Sprintf("fetch:%d", user.ID), func() (any, error) {
		fetched, err := s.remote.FetchCart(ctx, user.ID)
		if err != nil {
			s.mu.Lock()
			s.lines = nil
			s.loadFailed = true
			s.mu.Unlock()
			s.sess.Notifier().Error("Could not load your cart. Please try again.")
			return nil, err
		}
		s.mu.Lock()
		s.lines = fetched.Items
		s.loadFailed = false
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Lines returns a copy of the current local lines.
func (s *Service) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// LoadFailed reports whether the last fetch ended in an error state.
func (s *Service) LoadFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFailed
}

// Line finds a local line by its server-assigned item id.
func (s *Service) Line(itemID int64) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ItemID == itemID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Subtotal reduces the current lines to their price sum.
func (s *Service) Subtotal() float64 {
	return Subtotal(s.Lines())
}

// Snapshot derives the renderable cart view for the given coupon
// discount. Always a fresh value, never mutated in place.
func (s *Service) Snapshot(couponDiscount float64) domain.CartSnapshot {
	lines := s.Lines()
	subtotal := Subtotal(lines)
	return domain.CartSnapshot{
		Lines:          lines,
		Subtotal:       subtotal,
		CouponDiscount: couponDiscount,
		Total:          Total(subtotal, couponDiscount),
	}
}

// UpdateQuantity changes a line's quantity on the server, then patches
// the local line on confirmation. Quantities below 1 are a no-op: no
// network call, no state change. The badge is refreshed afterwards
// regardless of the outcome so the header count stays consistent.
func (s *Service) UpdateQuantity(ctx context.Context, item domain.CartLine, newQuantity int) error {
	if newQuantity < 1 {
		return nil
	}
	if item.Product == nil || item.Product.ID == 0 {
		s.sess.Notifier().Error("This item could not be updated.")
		return ErrMalformedLine
	}

	user := s.sess.User()
	defer s.refreshBadge(ctx, user.ID)

	cartID, err := s.handles.Resolve(ctx, user.ID)
	if err != nil {
		s.sess.Notifier().Error("Could not update quantity. Please try again.")
		return err
	}
	if cartID == 0 {
		s.sess.Notifier().Error("Could not update quantity. Please try again.")
		return ErrNoCartHandle
	}

	if err := s.remote.UpdateItemQuantity(ctx, cartID, item.Product.ID, newQuantity); err != nil {
		s.sess.Notifier().Error("Could not update quantity. Please try again.")
		return err
	}

	s.mu.Lock()
	s.lines = ApplyQuantity(s.lines, item.ItemID, newQuantity)
	s.mu.Unlock()
	s.sess.Notifier().Success("Quantity updated.")
	return nil
}

// RemoveItem deletes a line. Malformed lines (no product, or a product
// without a usable numeric id) fail fast with a visible error and never
// reach the network.
func (s *Service) RemoveItem(ctx context.Context, item domain.CartLine) error {
	if item.Product == nil || item.Product.ID == 0 {
		s.sess.Notifier().Error("This item could not be removed.")
		return ErrMalformedLine
	}

	user := s.sess.User()
	cartID, err := s.handles.Resolve(ctx, user.ID)
	if err != nil {
		s.sess.Notifier().Error("Could not remove the item. Please try again.")
		return err
	}
	if cartID == 0 {
		s.sess.Notifier().Error("Could not remove the item. Please try again.")
		return ErrNoCartHandle
	}

	if err := s.remote.RemoveItem(ctx, cartID, item.Product.ID); err != nil {
		s.sess.Notifier().Error("Could not remove the item. Please try again.")
		return err
	}

	s.mu.Lock()
	s.lines = RemoveLine(s.lines, item.ItemID)
	s.mu.Unlock()
	s.sess.Notifier().Success("Item removed from your cart.")
	s.refreshBadge(ctx, user.ID)
	return nil
}

// Clear empties the cart: cart-scoped when a handle resolves, otherwise
// the user-scoped fallback endpoint. Local lines are emptied and the
// badge refreshed unconditionally, whatever the server said.
func (s *Service) Clear(ctx context.Context) error {
	user := s.sess.User()

	defer func() {
		s.mu.Lock()
		s.lines = nil
		s.mu.Unlock()
		s.handles.Invalidate(ctx, user.ID)
		s.refreshBadge(ctx, user.ID)
	}()

	cartID, err := s.handles.Resolve(ctx, user.ID)
	if err == nil && cartID > 0 {
		err = s.remote.ClearCart(ctx, cartID)
	} else {
		err = s.remote.ClearUserCart(ctx, user.ID)
	}
	if err != nil {
		s.sess.Notifier().Error("Could not clear your cart. Please try again.")
		return err
	}
	return nil
}

// refreshBadge re-fetches the header cart count. Rapid successive calls
// collapse into one request; failures keep the stale count.
func (s *Service) refreshBadge(ctx context.Context, userID int64) {
	s.sfg.Do(fmt.Sprintf("badge:%d", userID), func() (any, error) {
		count, err := s.remote.CartItemCount(ctx, userID)
		if err != nil {
			slog.Debug("cart badge refresh failed", "error", err)
			return nil, nil
		}
		s.sess.SetBadge(count)
		return nil, nil
	})
}
