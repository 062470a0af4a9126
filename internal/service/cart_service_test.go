package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/utils"
)

type mockCartStore struct {
	carts   map[string]*models.Cart
	loadErr error
	saveErr error
	saves   int
}

func (m *mockCartStore) Load(_ context.Context, cartID string) (*models.Cart, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if c, ok := m.carts[cartID]; ok {
		return c, nil
	}
	return &models.Cart{}, nil
}

func (m *mockCartStore) Save(_ context.Context, cartID string, cart *models.Cart) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.carts == nil {
		m.carts = map[string]*models.Cart{}
	}
	m.carts[cartID] = cart
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, cartID string) error {
	delete(m.carts, cartID)
	return nil
}

type mockProductGetter struct {
	products map[string]*models.Product
}

func (m *mockProductGetter) GetByID(id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func testProducts() *mockProductGetter {
	return &mockProductGetter{products: map[string]*models.Product{
		"p1":   {ID: "p1", Name: "Pod A", Price: 10.00, Stock: 5},
		"p2":   {ID: "p2", Name: "Pod B", Price: 5.50, Stock: 3},
		"gone": {ID: "gone", Name: "Sold Out", Price: 9.99, Stock: 0},
	}}
}

func TestCartServiceAddItem(t *testing.T) {
	store := &mockCartStore{}
	svc := NewCartService(store, testProducts())
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, store.saves, "every mutation persists the full cart")
}

func TestCartServiceAddSnapshotsProduct(t *testing.T) {
	store := &mockCartStore{}
	products := testProducts()
	svc := NewCartService(store, products)

	cart, err := svc.AddItem(context.Background(), "c1", "p1")
	require.NoError(t, err)

	// Mutating the catalog afterwards must not touch the cart snapshot.
	products.products["p1"].Price = 99.99
	assert.InDelta(t, 10.00, cart.Items[0].Product.Price, 1e-9)
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	svc := NewCartService(&mockCartStore{}, testProducts())

	_, err := svc.AddItem(context.Background(), "c1", "nope")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCartServiceAddOutOfStock(t *testing.T) {
	store := &mockCartStore{}
	svc := NewCartService(store, testProducts())

	_, err := svc.AddItem(context.Background(), "c1", "gone")
	assert.ErrorIs(t, err, utils.ErrOutOfStock)
	assert.Zero(t, store.saves, "rejected adds must not write")
}

func TestCartServiceAdjust(t *testing.T) {
	store := &mockCartStore{}
	svc := NewCartService(store, testProducts())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)

	cart, err := svc.Adjust(ctx, "c1", "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = svc.Adjust(ctx, "c1", "p1", -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartServicePersistFailureKeepsResult(t *testing.T) {
	store := &mockCartStore{saveErr: errors.New("redis down")}
	svc := NewCartService(store, testProducts())

	cart, err := svc.AddItem(context.Background(), "c1", "p1")
	require.NoError(t, err, "a failed persist must not fail the mutation")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}
