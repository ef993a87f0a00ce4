package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyman123/dreamshops-client/internal/cache"
	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/remote"
	"github.com/seyman123/dreamshops-client/internal/session"
)

type mockRemote struct {
	mu sync.Mutex

	cart      *domain.Cart
	fetchErr  error
	updateErr error
	removeErr error
	clearErr  error
	count     int
	countErr  error

	fetchCalls     int
	updateCalls    int
	removeCalls    int
	clearCalls     int
	userClearCalls int
	countCalls     int
}

func (m *mockRemote) FetchCart(context.Context, int64) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.cart, nil
}

func (m *mockRemote) UpdateItemQuantity(_ context.Context, _, _ int64, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	return m.updateErr
}

func (m *mockRemote) RemoveItem(_ context.Context, _, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeCalls++
	return m.removeErr
}

func (m *mockRemote) ClearCart(context.Context, int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	return m.clearErr
}

func (m *mockRemote) ClearUserCart(context.Context, int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userClearCalls++
	return m.clearErr
}

func (m *mockRemote) CartItemCount(context.Context, int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countCalls++
	return m.count, m.countErr
}

func (m *mockRemote) calls() (fetch, update, remove, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls, m.updateCalls, m.removeCalls, m.countCalls
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:     42,
		UserID: 1,
		Items: []domain.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: 25, TotalPrice: 50, Product: &domain.ProductSnapshot{ID: 100, Name: "Kulaklık"}},
			{ItemID: 2, Quantity: 1, UnitPrice: 10, TotalPrice: 10, Product: &domain.ProductSnapshot{ID: 101, Name: "Kılıf"}},
		},
	}
}

func newTestService(m *mockRemote) (*Service, *session.Context, *notify.Recorder) {
	recorder := notify.NewRecorder()
	sess := session.New(remote.NewMemoryTokenStore(), recorder)
	sess.SignIn(domain.User{ID: 1}, "test-token")
	handles := NewHandleResolver(m, cache.NewMemoryStore())
	return NewService(m, handles, sess), sess, recorder
}

func TestFetchItems_Success(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, _ := newTestService(m)

	require.NoError(t, svc.FetchItems(context.Background()))

	assert.Len(t, svc.Lines(), 2)
	assert.False(t, svc.LoadFailed())
	assert.Equal(t, 60.0, svc.Subtotal())
}

func TestFetchItems_RequiresSignedInUser(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, sess, _ := newTestService(m)
	sess.Logout()

	err := svc.FetchItems(context.Background())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	fetch, _, _, _ := m.calls()
	assert.Zero(t, fetch)
}

func TestFetchItems_FailureEmptiesLinesAndSetsErrorState(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, recorder := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))

	m.mu.Lock()
	m.fetchErr = errors.New("boom")
	m.mu.Unlock()

	err := svc.FetchItems(context.Background())

	require.Error(t, err)
	assert.Empty(t, svc.Lines())
	assert.True(t, svc.LoadFailed())
	assert.NotEmpty(t, recorder.Errors())
}

func TestUpdateQuantity_BelowOneIsNoOp(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, _ := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))
	line := svc.Lines()[0]

	require.NoError(t, svc.UpdateQuantity(context.Background(), line, 0))
	require.NoError(t, svc.UpdateQuantity(context.Background(), line, -1))

	// no network call of any kind beyond the initial fetch, local state unchanged
	fetch, update, _, count := m.calls()
	assert.Equal(t, 1, fetch)
	assert.Zero(t, update)
	assert.Zero(t, count)
	assert.Equal(t, 2, svc.Lines()[0].Quantity)
}

func TestUpdateQuantity_PatchesLineAndRefreshesBadge(t *testing.T) {
	m := &mockRemote{cart: testCart(), count: 7}
	svc, sess, recorder := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))
	line := svc.Lines()[0]

	require.NoError(t, svc.UpdateQuantity(context.Background(), line, 5))

	lines := svc.Lines()
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 125.0, lines[0].TotalPrice)
	assert.Equal(t, 7, sess.Badge())
	assert.NotEmpty(t, recorder.Successes())
}

func TestUpdateQuantity_BadgeRefreshedEvenOnFailure(t *testing.T) {
	m := &mockRemote{cart: testCart(), updateErr: errors.New("boom"), count: 3}
	svc, sess, recorder := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))
	line := svc.Lines()[0]

	err := svc.UpdateQuantity(context.Background(), line, 4)

	require.Error(t, err)
	// local state untouched, but the badge was still refreshed
	assert.Equal(t, 2, svc.Lines()[0].Quantity)
	assert.Equal(t, 3, sess.Badge())
	assert.NotEmpty(t, recorder.Errors())
}

func TestRemoveItem_Success(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, _ := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))
	line := svc.Lines()[0]

	require.NoError(t, svc.RemoveItem(context.Background(), line))

	lines := svc.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ItemID)
}

func TestRemoveItem_MissingProductNeverHitsNetwork(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, recorder := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))

	malformed := domain.CartLine{ItemID: 9, Quantity: 1}
	err := svc.RemoveItem(context.Background(), malformed)
	assert.ErrorIs(t, err, ErrMalformedLine)

	malformed.Product = &domain.ProductSnapshot{} // id 0 = unusable
	err = svc.RemoveItem(context.Background(), malformed)
	assert.ErrorIs(t, err, ErrMalformedLine)

	fetch, _, remove, _ := m.calls()
	assert.Equal(t, 1, fetch) // only the initial load
	assert.Zero(t, remove)
	assert.Len(t, recorder.Errors(), 2)
}

func TestClear_UsesCartScopedEndpointWhenHandleResolves(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, _ := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))

	require.NoError(t, svc.Clear(context.Background()))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, 1, m.clearCalls)
	assert.Zero(t, m.userClearCalls)
}

func TestClear_FallsBackToUserScopedEndpoint(t *testing.T) {
	// a cart without an id cannot be cleared by handle
	m := &mockRemote{cart: &domain.Cart{UserID: 1}}
	svc, _, _ := newTestService(m)

	require.NoError(t, svc.Clear(context.Background()))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Zero(t, m.clearCalls)
	assert.Equal(t, 1, m.userClearCalls)
}

func TestClear_EmptiesLocalLinesEvenOnServerFailure(t *testing.T) {
	m := &mockRemote{cart: testCart(), clearErr: errors.New("boom")}
	svc, _, recorder := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))

	err := svc.Clear(context.Background())

	require.Error(t, err)
	assert.Empty(t, svc.Lines())
	assert.NotEmpty(t, recorder.Errors())
}

func TestSnapshot_DerivesTotals(t *testing.T) {
	m := &mockRemote{cart: testCart()}
	svc, _, _ := newTestService(m)
	require.NoError(t, svc.FetchItems(context.Background()))

	snap := svc.Snapshot(15)

	assert.Equal(t, 60.0, snap.Subtotal)
	assert.Equal(t, 15.0, snap.CouponDiscount)
	assert.Equal(t, 45.0, snap.Total)
	assert.Len(t, snap.Lines, 2)
}
