package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/utils"
)

// productWriter is the full product repository surface the admin console
// needs.
type productWriter interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

// catalogRefresher lets the admin console trigger the post-mutation full
// list reload.
type catalogRefresher interface {
	Refresh(ctx context.Context) error
}

// ProductManagementService handles the admin product CRUD. Saves and
// deletes are serialized per product so a double-clicked form cannot
// submit the same write twice concurrently.
type ProductManagementService struct {
	products productWriter
	catalog  catalogRefresher
	locks    keyedLocks
}

// NewProductManagementService constructs a ProductManagementService.
func NewProductManagementService(products productWriter, catalog catalogRefresher) *ProductManagementService {
	return &ProductManagementService{
		products: products,
		catalog:  catalog,
	}
}

// ProductForm carries the admin form fields. Price and stock arrive as the
// strings the form holds; they are parsed and validated before any write.
type ProductForm struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Stock       string `json:"stock" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

// parse validates the numeric fields and returns their typed values.
func (f *ProductForm) parse() (price float64, stock int, err error) {
	price, err = strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price < 0 {
		return 0, 0, fmt.Errorf("%w: price must be a non-negative number", utils.ErrValidation)
	}
	stock, err = strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil || stock < 0 {
		return 0, 0, fmt.Errorf("%w: stock must be a non-negative integer", utils.ErrValidation)
	}
	return price, stock, nil
}

// List returns all products for the admin screen, newest first.
func (s *ProductManagementService) List() ([]models.Product, error) {
	return s.products.GetAll()
}

// Save creates a product when id is empty and updates the existing one
// otherwise. On success the catalog snapshot is reloaded in full before
// returning, matching the list-reload-after-mutation contract.
func (s *ProductManagementService) Save(ctx context.Context, id string, form *ProductForm) (*models.Product, error) {
	price, stock, err := form.parse()
	if err != nil {
		return nil, err
	}

	lockKey := id
	if lockKey == "" {
		// Creates have no identifier yet; serialize them by name so a
		// double submission of the same form waits for the first insert.
		lockKey = "new:" + form.Name
	}
	unlock := s.locks.lock(lockKey)
	defer unlock()

	product := &models.Product{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		ImageURL:    form.ImageURL,
		Category:    form.Category,
		Stock:       stock,
	}

	if id == "" {
		product.ID = uuid.NewString()
		if err := s.products.Create(product); err != nil {
			log.Error().Err(err).Str("name", form.Name).Msg("product create failed")
			return nil, err
		}
	} else {
		if err := s.products.Update(product); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			log.Error().Err(err).Str("product_id", id).Msg("product update failed")
			return nil, err
		}
	}

	s.reload(ctx)
	return product, nil
}

// Delete removes a product. The caller must have collected an explicit
// confirmation; without it no write is issued.
func (s *ProductManagementService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return utils.ErrConfirmationMissing
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		log.Error().Err(err).Str("product_id", id).Msg("product delete failed")
		return err
	}

	s.reload(ctx)
	return nil
}

// reload refreshes the public catalog snapshot after a mutation. A reload
// failure is not a write failure; the catalog serves its previous snapshot
// until the next refresh.
func (s *ProductManagementService) reload(ctx context.Context) {
	if err := s.catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog reload after mutation failed")
	}
}

// keyedLocks hands out one mutex per key.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
