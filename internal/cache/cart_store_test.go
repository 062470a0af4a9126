package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/podstore/internal/models"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &RedisClient{client: client}, mr
}

func TestCartStoreRoundTrip(t *testing.T) {
	rc, _ := newTestRedis(t)
	store := NewCartStore(rc, time.Hour)
	ctx := context.Background()

	cart := &models.Cart{}
	cart.Add(models.Product{ID: "p1", Name: "Pod A", Price: 10.00, Stock: 5})
	cart.Add(models.Product{ID: "p1", Name: "Pod A", Price: 10.00, Stock: 5})
	cart.Add(models.Product{ID: "p2", Name: "Pod B", Price: 5.50, Stock: 5})

	require.NoError(t, store.Save(ctx, "cart-1", cart))

	reloaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, "p1", reloaded.Items[0].Product.ID)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
	assert.Equal(t, "p2", reloaded.Items[1].Product.ID)
	assert.Equal(t, 1, reloaded.Items[1].Quantity)
}

func TestCartStoreMissingCartIsEmpty(t *testing.T) {
	rc, _ := newTestRedis(t)
	store := NewCartStore(rc, time.Hour)

	cart, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartStoreMalformedPayloadIsEmpty(t *testing.T) {
	rc, mr := newTestRedis(t)
	store := NewCartStore(rc, time.Hour)

	mr.Set("cart:broken", "{not json at all")

	cart, err := store.Load(context.Background(), "broken")
	require.NoError(t, err, "a corrupt cart must load as empty, not fail")
	assert.Empty(t, cart.Items)
}

func TestCartStoreClear(t *testing.T) {
	rc, _ := newTestRedis(t)
	store := NewCartStore(rc, time.Hour)
	ctx := context.Background()

	cart := &models.Cart{}
	cart.Add(models.Product{ID: "p1", Price: 1, Stock: 1})
	require.NoError(t, store.Save(ctx, "cart-1", cart))
	require.NoError(t, store.Clear(ctx, "cart-1"))

	reloaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
}

func TestCartStoreWriteRefreshesTTL(t *testing.T) {
	rc, mr := newTestRedis(t)
	store := NewCartStore(rc, time.Hour)
	ctx := context.Background()

	cart := &models.Cart{}
	cart.Add(models.Product{ID: "p1", Price: 1, Stock: 1})
	require.NoError(t, store.Save(ctx, "cart-1", cart))

	assert.Equal(t, time.Hour, mr.TTL("cart:cart-1"))
}
