package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escrowmart-web/internal/models"
)

func product(id, seller string, price float64) models.Product {
	return models.Product{
		ID:         id,
		Name:       "Product " + id,
		Price:      price,
		Image:      "/images/" + id + ".jpg",
		SellerID:   seller,
		SellerName: "Seller " + seller,
		Category:   "general",
	}
}

func TestCartTotals(t *testing.T) {
	c := New()

	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())

	p1 := product("p1", "s1", 10)
	p2 := product("p2", "s1", 5)

	c.Add(p1)
	assert.Equal(t, 1, c.TotalItems())
	assert.Equal(t, 10.0, c.TotalPrice())

	c.Add(p2)
	assert.Equal(t, 2, c.TotalItems())
	assert.Equal(t, 15.0, c.TotalPrice())

	c.SetQuantity("p1", 3)
	assert.Equal(t, 4, c.TotalItems())
	assert.Equal(t, 35.0, c.TotalPrice())

	c.Remove("p2")
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 30.0, c.TotalPrice())

	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestAddSameProductTwice(t *testing.T) {
	c := New()
	p := product("p1", "s1", 10)

	c.Add(p)
	c.Add(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		c := New()
		c.Add(product("p1", "s1", 10))
		c.SetQuantity("p1", 0)
		assert.Empty(t, c.Items())
	})

	t.Run("Negative", func(t *testing.T) {
		c := New()
		c.Add(product("p1", "s1", 10))
		c.SetQuantity("p1", -1)
		assert.Empty(t, c.Items())
	})
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := New()
	c.Add(product("p1", "s1", 10))

	c.Remove("missing")

	assert.Equal(t, 1, c.TotalItems())
}

func TestSetQuantityAbsentIsNoOp(t *testing.T) {
	c := New()

	c.SetQuantity("missing", 5)

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.TotalItems())
}

func TestCheckoutItemsEmptyCart(t *testing.T) {
	c := New()

	assert.Empty(t, c.CheckoutItems())
}

func TestCheckoutItemsProjection(t *testing.T) {
	c := New()
	c.Add(product("p1", "s1", 10))
	c.SetQuantity("p1", 2)
	c.Add(product("p2", "s1", 5))
	c.Add(product("p3", "s2", 20))

	assert.Equal(t, 45.0, c.TotalPrice())

	items := c.CheckoutItems()
	require.Len(t, items, 3)

	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "Product p1", items[0].ProductName)
	assert.Equal(t, "/images/p1.jpg", items[0].ProductImage)
	assert.Equal(t, 10.0, items[0].Price)
	assert.Equal(t, "s1", items[0].SellerID)
	assert.Equal(t, "Seller s1", items[0].SellerName)
	assert.Equal(t, 2, items[0].Quantity)

	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, "p3", items[2].ProductID)
	assert.Equal(t, "s2", items[2].SellerID)
}

func TestStorePerSessionIsolation(t *testing.T) {
	store := NewStore()

	a := store.Get("session-a")
	b := store.Get("session-b")

	a.Add(product("p1", "s1", 10))

	assert.Equal(t, 1, a.TotalItems())
	assert.Equal(t, 0, b.TotalItems())

	// Same session gets the same cart back
	assert.Equal(t, 1, store.Get("session-a").TotalItems())

	store.Drop("session-a")
	assert.Equal(t, 0, store.Get("session-a").TotalItems())
}
