package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rktiwari00/woocart/internal/storage"
	"github.com/rktiwari00/woocart/internal/woo"
	"golang.org/x/sync/singleflight"
)

// Fetcher is the slice of the store API the catalog needs.
// Consumers define this interface, not the HTTP client.
type Fetcher interface {
	Products(ctx context.Context, q woo.ProductQuery) ([]woo.Product, error)
	Product(ctx context.Context, id int64) (*woo.Product, error)
	ProductVariations(ctx context.Context, productID int64) ([]woo.Variation, error)
	Categories(ctx context.Context) ([]woo.Category, error)
	Category(ctx context.Context, id int64) (*woo.Category, error)
}

// Service reads products through the local store so a screen revisit
// does not refetch. Cache errors are logged and bypassed; fills are
// fire-and-forget, same policy as the cart's persistence.
type Service struct {
	fetcher Fetcher
	store   storage.Store
	sfg     singleflight.Group // Prevents duplicate fetches for the same product
}

func NewService(fetcher Fetcher, store storage.Store) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
	}
}

func (s *Service) Product(ctx context.Context, id int64) (*woo.Product, error) {
	key := productKey(id)

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		raw, err := s.store.Get(ctx, key)
		if err == nil {
			var product woo.Product
			if err2 := json.Unmarshal([]byte(raw), &product); err2 == nil {
				return &product, nil
			}
			log.Printf("error parsing cached product %d, refetching", id)
		} else if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("product cache get error: %v", err)
		}

		product, errGet := s.fetcher.Product(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			data, errSet := json.Marshal(product)
			if errSet == nil {
				errSet = s.store.Set(ctx, key, string(data))
			}
			if errSet != nil {
				log.Printf("product cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*woo.Product), nil
}

// Listings pass straight through: only single-product lookups are
// worth caching locally.

func (s *Service) Products(ctx context.Context, q woo.ProductQuery) ([]woo.Product, error) {
	return s.fetcher.Products(ctx, q)
}

func (s *Service) ProductVariations(ctx context.Context, productID int64) ([]woo.Variation, error) {
	return s.fetcher.ProductVariations(ctx, productID)
}

func (s *Service) Categories(ctx context.Context) ([]woo.Category, error) {
	return s.fetcher.Categories(ctx)
}

func (s *Service) Category(ctx context.Context, id int64) (*woo.Category, error) {
	return s.fetcher.Category(ctx, id)
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
