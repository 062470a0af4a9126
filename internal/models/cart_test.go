package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) Product {
	return Product{ID: id, Name: "Pod " + id, Price: price, Category: "pods", Stock: 10}
}

func TestCartAddSameProductAccumulates(t *testing.T) {
	cart := &Cart{}
	p := product("p1", 10.00)

	for i := 0; i < 5; i++ {
		cart.Add(p)
	}

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].Product.ID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddDistinctProducts(t *testing.T) {
	cart := &Cart{}
	cart.Add(product("p1", 10.00))
	cart.Add(product("p2", 5.50))
	cart.Add(product("p1", 10.00))

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestCartAdjustRemovesAtZero(t *testing.T) {
	cart := &Cart{}
	cart.Add(product("p1", 10.00))
	cart.Add(product("p1", 10.00))

	cart.Adjust("p1", -1)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart.Adjust("p1", -1)
	assert.Empty(t, cart.Items, "item reaching zero must be removed, not retained")
}

func TestCartAdjustNeverGoesNegative(t *testing.T) {
	cart := &Cart{}
	cart.Add(product("p1", 10.00))

	cart.Adjust("p1", -5)
	assert.Empty(t, cart.Items)

	// An adjust on a removed or unknown item is a no-op.
	cart.Adjust("p1", -1)
	cart.Adjust("ghost", 3)
	assert.Empty(t, cart.Items)
}

func TestCartAdjustArbitraryDelta(t *testing.T) {
	cart := &Cart{}
	cart.Add(product("p1", 10.00))

	cart.Adjust("p1", 4)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartTotalAndCount(t *testing.T) {
	cart := &Cart{}
	p1 := product("p1", 10.00)
	p2 := product("p2", 5.50)

	cart.Add(p1)
	cart.Add(p1)
	cart.Add(p2)

	assert.InDelta(t, 25.50, cart.Total(), 1e-9)
	assert.Equal(t, 3, cart.Count())
}

func TestCartEmptyTotals(t *testing.T) {
	cart := &Cart{}
	assert.Zero(t, cart.Total())
	assert.Zero(t, cart.Count())
}

func TestCartSerializationRoundTrip(t *testing.T) {
	cart := &Cart{}
	cart.Add(product("p1", 10.00))
	cart.Add(product("p1", 10.00))
	cart.Add(product("p2", 5.50))

	payload, err := json.Marshal(cart)
	require.NoError(t, err)

	var reloaded Cart
	require.NoError(t, json.Unmarshal(payload, &reloaded))

	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, "p1", reloaded.Items[0].Product.ID)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
	assert.Equal(t, "p2", reloaded.Items[1].Product.ID)
	assert.Equal(t, 1, reloaded.Items[1].Quantity)
	assert.InDelta(t, cart.Total(), reloaded.Total(), 1e-9)
}
