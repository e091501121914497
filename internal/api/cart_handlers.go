package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/cart"
	"escrowmart-web/internal/middleware"
)

func cartSummary(c *cart.Cart) gin.H {
	return gin.H{
		"items":      c.Items(),
		"totalItems": c.TotalItems(),
		"totalPrice": c.TotalPrice(),
	}
}

// GetCart renders the session's cart with derived totals
func (s *Server) GetCart(c *gin.Context) {
	sessionCart := s.carts.Get(middleware.SessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSummary(sessionCart),
	})
}

// AddToCart puts a product in the cart, incrementing its quantity when it
// is already there. The product is fetched from the backend so the cart
// carries current price and seller details.
func (s *Server) AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Product ID is required",
		})
		return
	}

	sessionID := middleware.SessionID(c)
	product, err := s.products.Get(c.Request.Context(), sessionID, body.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	sessionCart := s.carts.Get(sessionID)
	sessionCart.Add(*product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSummary(sessionCart),
	})
}

// UpdateCartItem overwrites an entry's quantity; a quantity below one
// removes the entry
func (s *Server) UpdateCartItem(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	sessionCart := s.carts.Get(middleware.SessionID(c))
	sessionCart.SetQuantity(c.Param("productId"), body.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSummary(sessionCart),
	})
}

// RemoveCartItem deletes an entry from the cart
func (s *Server) RemoveCartItem(c *gin.Context) {
	sessionCart := s.carts.Get(middleware.SessionID(c))
	sessionCart.Remove(c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSummary(sessionCart),
	})
}

// ClearCart empties the cart
func (s *Server) ClearCart(c *gin.Context) {
	sessionCart := s.carts.Get(middleware.SessionID(c))
	sessionCart.Clear()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSummary(sessionCart),
	})
}
