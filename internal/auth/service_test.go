package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rktiwari00/woocart/internal/storage"
	"github.com/rktiwari00/woocart/internal/woo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCustomerAPI struct {
	customers []woo.Customer
	created   *woo.Customer
	customer  *woo.Customer
	updated   *woo.Customer
	gotCreate woo.CustomerRequest
	gotUpdate woo.CustomerRequest
	err       error
}

func (m *mockCustomerAPI) CustomersByEmail(ctx context.Context, email string) ([]woo.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.customers, nil
}

func (m *mockCustomerAPI) CreateCustomer(ctx context.Context, req woo.CustomerRequest) (*woo.Customer, error) {
	m.gotCreate = req
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

func (m *mockCustomerAPI) Customer(ctx context.Context, id int64) (*woo.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.customer, nil
}

func (m *mockCustomerAPI) UpdateCustomer(ctx context.Context, id int64, req woo.CustomerRequest) (*woo.Customer, error) {
	m.gotUpdate = req
	if m.err != nil {
		return nil, m.err
	}
	return m.updated, nil
}

type mockCartClearer struct {
	cleared bool
}

func (m *mockCartClearer) ClearCart() { m.cleared = true }

type mockStore struct {
	mu     sync.RWMutex
	values map[string]string
	err    error
}

func newMockStore() *mockStore {
	return &mockStore{values: make(map[string]string)}
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return "", m.err
	}
	value, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *mockStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *mockStore) has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}

func TestLogin_Success(t *testing.T) {
	api := &mockCustomerAPI{customers: []woo.Customer{{ID: 7, Email: "ana@example.com", FirstName: "Ana"}}}
	store := newMockStore()
	svc := NewService(api, store, &mockCartClearer{})

	user, err := svc.Login(context.Background(), "ana@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	current, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ana", current.FirstName)

	// Session is persisted asynchronously
	require.Eventually(t, func() bool {
		return store.has(userKey)
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&mockCustomerAPI{}, newMockStore(), &mockCartClearer{})

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestLogin_LookupError(t *testing.T) {
	lookupErr := errors.New("store unreachable")
	svc := NewService(&mockCustomerAPI{err: lookupErr}, newMockStore(), &mockCartClearer{})

	_, err := svc.Login(context.Background(), "ana@example.com", "pw")
	assert.ErrorIs(t, err, lookupErr)
}

func TestSignup_CreatesCustomer(t *testing.T) {
	api := &mockCustomerAPI{created: &woo.Customer{ID: 9, Email: "new@example.com"}}
	svc := NewService(api, newMockStore(), &mockCartClearer{})

	user, err := svc.Signup(context.Background(), SignupInput{
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "User",
		Password:  "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)

	// Username defaults to the email
	assert.Equal(t, "new@example.com", api.gotCreate.Username)
	assert.Equal(t, "secret", api.gotCreate.Password)

	current, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(9), current.ID)
}

func TestLogout_DropsSessionAndClearsCart(t *testing.T) {
	api := &mockCustomerAPI{customers: []woo.Customer{{ID: 7, Email: "ana@example.com"}}}
	store := newMockStore()
	clearer := &mockCartClearer{}
	svc := NewService(api, store, clearer)

	_, err := svc.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return store.has(userKey)
	}, 100*time.Millisecond, 10*time.Millisecond)

	svc.Logout(context.Background())

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
	assert.False(t, store.has(userKey))
	assert.True(t, clearer.cleared)
}

func TestAddresses_RequiresSession(t *testing.T) {
	svc := NewService(&mockCustomerAPI{}, newMockStore(), &mockCartClearer{})

	_, _, err := svc.Addresses(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAddresses_LoadsFreshCustomer(t *testing.T) {
	api := &mockCustomerAPI{
		customers: []woo.Customer{{ID: 7, Email: "ana@example.com"}},
		customer: &woo.Customer{
			ID:       7,
			Billing:  woo.Address{FirstName: "Ana", City: "Austin", Postcode: "78701"},
			Shipping: woo.Address{FirstName: "Ana", City: "Dallas"},
		},
	}
	svc := NewService(api, newMockStore(), &mockCartClearer{})

	_, err := svc.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)

	billing, shipping, err := svc.Addresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Austin", billing.City)
	assert.Equal(t, "Dallas", shipping.City)
}

func TestUpdateAddresses_SavesAndRefreshesSession(t *testing.T) {
	newBilling := woo.Address{FirstName: "Ana", City: "Houston", Postcode: "77001", Country: "US"}
	api := &mockCustomerAPI{
		customers: []woo.Customer{{ID: 7, Email: "ana@example.com"}},
		updated:   &woo.Customer{ID: 7, Email: "ana@example.com", Billing: newBilling},
	}
	store := newMockStore()
	svc := NewService(api, store, &mockCartClearer{})

	_, err := svc.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)

	customer, err := svc.UpdateAddresses(context.Background(), &newBilling, nil)
	require.NoError(t, err)
	assert.Equal(t, "Houston", customer.Billing.City)

	// Only billing was sent; shipping stays untouched upstream
	require.NotNil(t, api.gotUpdate.Billing)
	assert.Equal(t, "Houston", api.gotUpdate.Billing.City)
	assert.Nil(t, api.gotUpdate.Shipping)

	// The session now carries the refreshed customer
	current, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Houston", current.Billing.City)
}

func TestUpdateAddresses_RequiresSession(t *testing.T) {
	svc := NewService(&mockCustomerAPI{}, newMockStore(), &mockCartClearer{})

	_, err := svc.UpdateAddresses(context.Background(), &woo.Address{City: "Austin"}, nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestHydrate_RestoresSession(t *testing.T) {
	store := newMockStore()
	store.values[userKey] = `{"id":7,"email":"ana@example.com","first_name":"Ana"}`
	svc := NewService(&mockCustomerAPI{}, store, &mockCartClearer{})

	svc.Hydrate(context.Background())

	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Ana", user.FirstName)
}

func TestHydrate_NoSavedSession(t *testing.T) {
	svc := NewService(&mockCustomerAPI{}, newMockStore(), &mockCartClearer{})

	svc.Hydrate(context.Background())

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestHydrate_CorruptSession(t *testing.T) {
	store := newMockStore()
	store.values[userKey] = `{not json`
	svc := NewService(&mockCustomerAPI{}, store, &mockCartClearer{})

	svc.Hydrate(context.Background())

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}
