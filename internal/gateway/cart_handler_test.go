package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyman123/dreamshops-client/internal/cache"
	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/coupon"
	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/remote"
	"github.com/seyman123/dreamshops-client/internal/session"
)

type cartRemoteMock struct {
	cart     *domain.Cart
	fetchErr error
	count    int
}

func (m *cartRemoteMock) FetchCart(context.Context, int64) (*domain.Cart, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.cart, nil
}
func (m *cartRemoteMock) UpdateItemQuantity(context.Context, int64, int64, int) error { return nil }
func (m *cartRemoteMock) RemoveItem(context.Context, int64, int64) error              { return nil }
func (m *cartRemoteMock) ClearCart(context.Context, int64) error                      { return nil }
func (m *cartRemoteMock) ClearUserCart(context.Context, int64) error                  { return nil }
func (m *cartRemoteMock) CartItemCount(context.Context, int64) (int, error)           { return m.count, nil }

type couponRemoteMock struct {
	result *remote.CouponValidation
	err    error
}

func (m *couponRemoteMock) ValidateCoupon(context.Context, string, float64) (*remote.CouponValidation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newCartTestHandler(m *cartRemoteMock, cm *couponRemoteMock) (*CartHandler, *CouponHandler) {
	recorder := notify.NewRecorder()
	sess := session.New(remote.NewMemoryTokenStore(), recorder)
	sess.SignIn(domain.User{ID: 1}, "tok")

	cartSvc := cart.NewService(m, cart.NewHandleResolver(m, cache.NewMemoryStore()), sess)
	couponSvc := coupon.NewService(cm, recorder, nil)
	return NewCartHandler(cartSvc, couponSvc, sess), NewCouponHandler(couponSvc, cartSvc)
}

func cartFixture() *domain.Cart {
	price := 25.0
	return &domain.Cart{
		ID:     42,
		UserID: 1,
		Items: []domain.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: 25, TotalPrice: 50,
				Product: &domain.ProductSnapshot{ID: 100, Name: "Kulaklık", Price: &price}},
		},
	}
}

func testRouter(cartH *CartHandler, couponH *CouponHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", cartH.Get)
	r.Put("/cart/items/{item_id}", cartH.UpdateQuantity)
	r.Delete("/cart/items/{item_id}", cartH.RemoveItem)
	r.Delete("/cart", cartH.Clear)
	r.Post("/cart/coupon", couponH.Apply)
	r.Delete("/cart/coupon", couponH.Remove)
	return r
}

func TestGetCart_Success(t *testing.T) {
	handler, couponH := newCartTestHandler(&cartRemoteMock{cart: cartFixture()}, &couponRemoteMock{})
	router := testRouter(handler, couponH)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.CartSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Len(t, snap.Lines, 1)
	assert.Equal(t, 50.0, snap.Subtotal)
	assert.Equal(t, 50.0, snap.Total)
}

func TestUpdateQuantity_Success(t *testing.T) {
	m := &cartRemoteMock{cart: cartFixture(), count: 5}
	handler, couponH := newCartTestHandler(m, &couponRemoteMock{})
	router := testRouter(handler, couponH)

	// load the cart first so there is a line to update
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := bytes.NewBufferString(`{"quantity": 4}`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/cart/items/1", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-Cart-Count"))

	var snap domain.CartSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, 4, snap.Lines[0].Quantity)
	assert.Equal(t, 100.0, snap.Lines[0].TotalPrice)
}

func TestUpdateQuantity_RejectsZeroQuantity(t *testing.T) {
	handler, couponH := newCartTestHandler(&cartRemoteMock{cart: cartFixture()}, &couponRemoteMock{})
	router := testRouter(handler, couponH)

	body := bytes.NewBufferString(`{"quantity": 0}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/cart/items/1", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_UnknownItem(t *testing.T) {
	handler, couponH := newCartTestHandler(&cartRemoteMock{cart: cartFixture()}, &couponRemoteMock{})
	router := testRouter(handler, couponH)

	body := bytes.NewBufferString(`{"quantity": 2}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/cart/items/999", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyCoupon_Success(t *testing.T) {
	m := &cartRemoteMock{cart: cartFixture()}
	cm := &couponRemoteMock{result: &remote.CouponValidation{Valid: true, DiscountAmount: 10}}
	handler, couponH := newCartTestHandler(m, cm)
	router := testRouter(handler, couponH)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := bytes.NewBufferString(`{"code": "save10"}`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/coupon", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.CartSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, 10.0, snap.CouponDiscount)
	assert.Equal(t, 40.0, snap.Total)
}

func TestApplyCoupon_StructuralRejection(t *testing.T) {
	handler, couponH := newCartTestHandler(&cartRemoteMock{cart: cartFixture()}, &couponRemoteMock{})
	router := testRouter(handler, couponH)

	body := bytes.NewBufferString(`{"code": "AB"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/coupon", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearCart_RemovesCouponToo(t *testing.T) {
	m := &cartRemoteMock{cart: cartFixture()}
	cm := &couponRemoteMock{result: &remote.CouponValidation{Valid: true, DiscountAmount: 10}}
	handler, couponH := newCartTestHandler(m, cm)
	router := testRouter(handler, couponH)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/coupon", bytes.NewBufferString(`{"code": "SAVE10"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.CartSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Empty(t, snap.Lines)
	assert.Zero(t, snap.CouponDiscount)
	assert.Zero(t, snap.Total)
}
