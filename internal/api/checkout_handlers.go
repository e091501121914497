package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/checkout"
	"escrowmart-web/internal/middleware"
)

// Checkout turns the session's cart into one escrow per seller. Every
// per-seller request settles; items belonging to sellers whose escrow was
// created are cleared from the cart, failed groups stay so the buyer can
// retry them.
func (s *Server) Checkout(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	sessionCart := s.carts.Get(sessionID)

	result, err := s.checkout.Process(c.Request.Context(), sessionID, sessionCart.CheckoutItems())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "No items in cart to checkout",
			})
			return
		}
		respondError(c, err)
		return
	}

	// Drop the items that are now held in escrow
	succeeded := make(map[string]bool)
	for _, sellerID := range result.SucceededSellers() {
		succeeded[sellerID] = true
	}
	for _, item := range sessionCart.Items() {
		if succeeded[item.Product.SellerID] {
			sessionCart.Remove(item.Product.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": result.AllSucceeded(),
		"data": gin.H{
			"escrows":  result.Escrows,
			"failures": result.Failures,
			"cart":     cartSummary(sessionCart),
		},
	})
}
