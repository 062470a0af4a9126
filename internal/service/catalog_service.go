package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/models"
)

// productReader is the read-only slice of the product repository the
// catalog needs.
type productReader interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}

// CatalogService loads the product list and keeps the last successfully
// loaded snapshot. A failed reload serves the previous snapshot instead of
// flashing an empty catalog at shoppers.
type CatalogService struct {
	products productReader

	mu       sync.RWMutex
	snapshot []models.Product
	loadedAt time.Time
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products productReader) *CatalogService {
	return &CatalogService{products: products}
}

// readAttempts bounds the retry for the idempotent catalog read. Writes
// elsewhere in the service are never retried.
const readAttempts = 3

// Refresh reloads the full product list from the store. On error the
// previous snapshot is left untouched.
func (s *CatalogService) Refresh(ctx context.Context) error {
	var (
		list []models.Product
		err  error
	)
	for attempt := 1; attempt <= readAttempts; attempt++ {
		list, err = s.products.GetAll()
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
		return err
	}

	s.mu.Lock()
	s.snapshot = list
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Products returns the catalog, optionally filtered by category. If no
// snapshot was ever loaded it loads one first; once a snapshot exists,
// reload failures fall back to it.
func (s *CatalogService) Products(ctx context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	loaded := !s.loadedAt.IsZero()
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" {
		out := make([]models.Product, len(s.snapshot))
		copy(out, s.snapshot)
		return out, nil
	}

	var out []models.Product
	for _, p := range s.snapshot {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Categories returns the distinct category labels of the current snapshot
// in order of first appearance.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.Products(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(products))
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// GetProduct returns a single product straight from the store.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	return s.products.GetByID(id)
}
