package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/utils"
)

// cartStore is the persistence surface the cart service needs.
type cartStore interface {
	Load(ctx context.Context, cartID string) (*models.Cart, error)
	Save(ctx context.Context, cartID string, cart *models.Cart) error
	Clear(ctx context.Context, cartID string) error
}

// productGetter looks up products when an item snapshot is taken.
type productGetter interface {
	GetByID(id string) (*models.Product, error)
}

// CartService applies cart mutations and persists the whole cart after
// every one. A failed persist is logged but does not fail the request: the
// mutated cart is still returned to the caller.
type CartService struct {
	store    cartStore
	products productGetter
}

// NewCartService constructs a CartService.
func NewCartService(store cartStore, products productGetter) *CartService {
	return &CartService{store: store, products: products}
}

// Get loads the cart for the given owner.
func (s *CartService) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	return s.store.Load(ctx, cartID)
}

// AddItem puts one unit of the product into the cart, snapshotting the
// product as it is right now. Out-of-stock products are rejected.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	if !product.InStock() {
		return nil, utils.ErrOutOfStock
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.Add(*product)
	s.persist(ctx, cartID, cart)
	return cart, nil
}

// Adjust applies a quantity delta to an item; items reaching zero are
// removed from the cart.
func (s *CartService) Adjust(ctx context.Context, cartID, productID string, delta int) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.Adjust(productID, delta)
	s.persist(ctx, cartID, cart)
	return cart, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Clear(ctx, cartID)
}

// persist writes the cart back. A storage failure keeps the in-memory
// result; the shopper keeps a working cart for this response and the next
// successful write repairs the stored copy.
func (s *CartService) persist(ctx context.Context, cartID string, cart *models.Cart) {
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		log.Warn().Err(err).Str("cart_id", cartID).Msg("cart persist failed, keeping in-memory state")
	}
}
