// Package coupon applies discount codes to the cart session. A single
// coupon may be applied at a time; the discount amount always comes from
// server validation and is never recomputed client-side.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/price"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

// State of the application flow: NONE -> VALIDATING -> APPLIED on
// success, back to NONE on any rejection.
type State int

const (
	StateNone State = iota
	StateValidating
	StateApplied
)

// RemoteCoupons is the slice of the remote client the service needs.
type RemoteCoupons interface {
	ValidateCoupon(ctx context.Context, code string, orderAmount float64) (*remote.CouponValidation, error)
}

var ErrRejected = errors.New("coupon: rejected by server")

type Service struct {
	remote   RemoteCoupons
	notifier notify.Notifier
	format   price.Formatter

	mu      sync.Mutex
	state   State
	applied *domain.AppliedCoupon
}

func NewService(remote RemoteCoupons, notifier notify.Notifier, format price.Formatter) *Service {
	if format == nil {
		format = price.Format
	}
	return &Service{remote: remote, notifier: notifier, format: format}
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Applied returns a copy of the applied coupon, or nil.
func (s *Service) Applied() *domain.AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return nil
	}
	copied := *s.applied
	return &copied
}

// Discount is the currently applied discount amount, zero when no coupon
// is applied.
func (s *Service) Discount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return 0
	}
	return s.applied.DiscountAmount
}

// Apply validates a raw code structurally, then against the server for
// the given subtotal. Structural failures never reach the network.
// Business rejections map per status: 404 unknown code, 400 conditions
// not met, 410 expired; anything else reads as a connectivity problem.
func (s *Service) Apply(ctx context.Context, rawCode string, subtotal float64) error {
	code, err := Sanitize(rawCode)
	if err != nil {
		s.notifier.Error(structuralMessage(err))
		return err
	}

	s.setState(StateValidating)

	result, err := s.remote.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		s.reset()
		s.notifier.Error(rejectionMessage(err))
		return err
	}
	if !result.Valid {
		s.reset()
		s.notifier.Error("This coupon cannot be applied to your order.")
		return ErrRejected
	}

	s.mu.Lock()
	s.state = StateApplied
	s.applied = &domain.AppliedCoupon{Code: code, DiscountAmount: result.DiscountAmount}
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Coupon %s applied: %s off.", code, s.format(result.DiscountAmount)))
	return nil
}

// Remove unconditionally drops the applied coupon.
func (s *Service) Remove() {
	s.reset()
}

// Revalidate re-runs server validation for the applied code against a
// new subtotal. The stored discount is only replaced on a successful
// response; a rejection drops the coupon entirely.
func (s *Service) Revalidate(ctx context.Context, subtotal float64) error {
	applied := s.Applied()
	if applied == nil {
		return nil
	}
	return s.Apply(ctx, applied.Code, subtotal)
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Service) reset() {
	s.mu.Lock()
	s.state = StateNone
	s.applied = nil
	s.mu.Unlock()
}

func structuralMessage(err error) string {
	switch {
	case errors.Is(err, ErrCodeEmpty):
		return "Please enter a coupon code."
	case errors.Is(err, ErrCodeTooShort):
		return "Coupon codes are at least 3 characters."
	case errors.Is(err, ErrCodeTooLong):
		return "Coupon codes are at most 20 characters."
	default:
		return "Coupon codes may only contain letters, digits, - and _."
	}
}

func rejectionMessage(err error) string {
	switch remote.StatusOf(err) {
	case http.StatusNotFound:
		return "We could not find that coupon code."
	case http.StatusBadRequest:
		return "Your order does not meet this coupon's conditions."
	case http.StatusGone:
		return "This coupon has expired."
	default:
		return "Could not validate the coupon. Please check your connection and try again."
	}
}
