package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rktiwari00/woocart/internal/storage"
	"github.com/rktiwari00/woocart/internal/woo"
)

const userKey = "user"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("no active session")
)

// CustomerAPI is the slice of the store API the session needs.
type CustomerAPI interface {
	CustomersByEmail(ctx context.Context, email string) ([]woo.Customer, error)
	CreateCustomer(ctx context.Context, req woo.CustomerRequest) (*woo.Customer, error)
	Customer(ctx context.Context, id int64) (*woo.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req woo.CustomerRequest) (*woo.Customer, error)
}

// CartClearer empties the cart on logout.
type CartClearer interface {
	ClearCart()
}

// Service is the local customer session. Login is a plain customer
// lookup by email with NO password verification against the store.
// The upstream app shipped this way and it is kept as-is, documented
// as insecure. Do not treat this as an auth system.
type Service struct {
	api   CustomerAPI
	store storage.Store
	cart  CartClearer

	mu   sync.Mutex
	user *woo.Customer
}

func NewService(api CustomerAPI, store storage.Store, cart CartClearer) *Service {
	return &Service{
		api:   api,
		store: store,
		cart:  cart,
	}
}

// Hydrate restores a persisted session at startup, if any.
func (s *Service) Hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, userKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("error checking auth status: %v", err)
		return
	}

	var user woo.Customer
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("error parsing saved user: %v", err)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login looks the customer up by email. The password parameter is
// accepted for interface parity and ignored.
func (s *Service) Login(ctx context.Context, email, _ string) (*woo.Customer, error) {
	customers, err := s.api.CustomersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if len(customers) == 0 {
		return nil, ErrInvalidCredentials
	}

	user := customers[0]
	s.setUser(&user)
	return &user, nil
}

type SignupInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*woo.Customer, error) {
	user, err := s.api.CreateCustomer(ctx, woo.CustomerRequest{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Email,
		Password:  in.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.setUser(user)
	return user, nil
}

// Logout drops the session and empties the cart.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, userKey); err != nil {
		log.Printf("error removing saved user: %v", err)
	}
	s.cart.ClearCart()
}

// Addresses fetches the session customer's saved billing and shipping
// addresses fresh from the store.
func (s *Service) Addresses(ctx context.Context) (billing, shipping woo.Address, err error) {
	user, ok := s.CurrentUser()
	if !ok {
		return woo.Address{}, woo.Address{}, ErrNotLoggedIn
	}

	customer, err := s.api.Customer(ctx, user.ID)
	if err != nil {
		return woo.Address{}, woo.Address{}, fmt.Errorf("load addresses: %w", err)
	}
	return customer.Billing, customer.Shipping, nil
}

// UpdateAddresses saves new billing and/or shipping addresses on the
// store customer. A nil address is left unchanged. The refreshed
// customer replaces the persisted session.
func (s *Service) UpdateAddresses(ctx context.Context, billing, shipping *woo.Address) (*woo.Customer, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	customer, err := s.api.UpdateCustomer(ctx, user.ID, woo.CustomerRequest{
		Billing:  billing,
		Shipping: shipping,
	})
	if err != nil {
		return nil, fmt.Errorf("update addresses: %w", err)
	}

	s.setUser(customer)
	return customer, nil
}

func (s *Service) CurrentUser() (*woo.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	user := *s.user
	return &user, true
}

func (s *Service) setUser(user *woo.Customer) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("error saving user: %v", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.store.Set(ctx, userKey, string(data)); err != nil {
			log.Printf("error saving user: %v", err)
		}
	}()
}
