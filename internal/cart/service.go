package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/rktiwari00/woocart/internal/config"
	"github.com/rktiwari00/woocart/internal/storage"
)

const storageKey = "cart"

// Service owns the cart state. UI-facing callers mutate it only
// through the methods below; every mutation applies synchronously
// in memory and then persists the full item list in the background.
// The persisted blob is a best-effort cache, not a source of truth:
// a failed write is logged and never rolled back or retried.
type Service struct {
	store    storage.Store
	shipping config.ShippingConfig

	mu    sync.Mutex
	items []LineItem
}

func NewService(store storage.Store, shipping config.ShippingConfig) *Service {
	return &Service{
		store:    store,
		shipping: shipping,
		items:    []LineItem{},
	}
}

// Hydrate loads the persisted cart once at startup. A missing or
// unparsable blob leaves the cart empty; there is no schema migration.
func (s *Service) Hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("error loading cart: %v", err)
		return
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("error parsing saved cart: %v", err)
		return
	}
	if items == nil {
		items = []LineItem{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem snapshots the product into a line item and merges it into
// the cart. A quantity below 1 means "unspecified" and defaults to 1.
func (s *Service) AddItem(p Product, quantity int64) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	s.items = addItem(s.items, newLineItem(p, quantity))
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// RemoveItem deletes the matching line; absent IDs are a no-op.
func (s *Service) RemoveItem(id int64) {
	s.mu.Lock()
	s.items = removeItem(s.items, id)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// UpdateQuantity sets the quantity exactly; zero or negative values
// remove the item instead.
func (s *Service) UpdateQuantity(id, quantity int64) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}

	s.mu.Lock()
	s.items = setQuantity(s.items, id, quantity)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *Service) ClearCart() {
	s.mu.Lock()
	s.items = []LineItem{}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Items returns an immutable snapshot in insertion order.
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CartTotal is the subtotal before shipping.
func (s *Service) CartTotal() float64 {
	return Subtotal(s.Items())
}

// CartCount sums quantities: two lines with quantities {3, 1} count 4.
func (s *Service) CartCount() int64 {
	return Count(s.Items())
}

func (s *Service) ShippingCost() float64 {
	return ShippingCost(s.CartTotal(), s.shipping)
}

func (s *Service) TotalWithShipping() float64 {
	subtotal := s.CartTotal()
	return subtotal + ShippingCost(subtotal, s.shipping)
}

func (s *Service) IsFreeShipping() bool {
	return IsFreeShipping(s.CartTotal(), s.shipping)
}

func (s *Service) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *Service) snapshotLocked() []LineItem {
	snapshot := make([]LineItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// persist writes the full item list in the background. Overlapping
// writes to the same key are fine: last write wins, and a stale
// snapshot self-heals on the next mutation.
func (s *Service) persist(items []LineItem) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		data, err := json.Marshal(items)
		if err != nil {
			log.Printf("error saving cart: %v", err)
			return
		}
		if err := s.store.Set(ctx, storageKey, string(data)); err != nil {
			log.Printf("error saving cart: %v", err)
		}
	}()
}
