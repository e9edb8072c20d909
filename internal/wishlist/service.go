package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/rktiwari00/woocart/internal/storage"
	"github.com/rktiwari00/woocart/internal/woo"
)

const storageKey = "wishlist"

// ProductLookup resolves saved IDs back to catalog products.
type ProductLookup interface {
	Product(ctx context.Context, id int64) (*woo.Product, error)
}

// Service keeps the saved-for-later product IDs. Only IDs are stored;
// products are resolved fresh on every read so stale catalog data
// never lingers. Persistence follows the cart: synchronous in memory,
// best-effort in the background.
type Service struct {
	store    storage.Store
	products ProductLookup

	mu  sync.Mutex
	ids []int64
}

func NewService(store storage.Store, products ProductLookup) *Service {
	return &Service{
		store:    store,
		products: products,
		ids:      []int64{},
	}
}

// Hydrate loads the persisted ID list once at startup. A missing or
// unparsable blob leaves the wishlist empty.
func (s *Service) Hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("error loading wishlist: %v", err)
		return
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("error parsing saved wishlist: %v", err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
}

// Add appends the product ID; duplicates are a no-op.
func (s *Service) Add(id int64) {
	s.mu.Lock()
	for _, existing := range s.ids {
		if existing == id {
			s.mu.Unlock()
			return
		}
	}
	s.ids = append(s.ids, id)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Remove deletes the ID; absent IDs are a no-op.
func (s *Service) Remove(id int64) {
	s.mu.Lock()
	next := make([]int64, 0, len(s.ids))
	for _, existing := range s.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	s.ids = next
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *Service) Has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns the saved IDs in insertion order.
func (s *Service) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Products resolves the saved IDs against the catalog. IDs that no
// longer resolve are skipped, not removed: a product can reappear.
func (s *Service) Products(ctx context.Context) []woo.Product {
	ids := s.IDs()

	products := make([]woo.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.Product(ctx, id)
		if err != nil {
			log.Printf("error loading wishlist product %d: %v", id, err)
			continue
		}
		products = append(products, *product)
	}
	return products
}

func (s *Service) snapshotLocked() []int64 {
	snapshot := make([]int64, len(s.ids))
	copy(snapshot, s.ids)
	return snapshot
}

func (s *Service) persist(ids []int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		data, err := json.Marshal(ids)
		if err != nil {
			log.Printf("error saving wishlist: %v", err)
			return
		}
		if err := s.store.Set(ctx, storageKey, string(data)); err != nil {
			log.Printf("error saving wishlist: %v", err)
		}
	}()
}
