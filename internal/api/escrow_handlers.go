package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
)

// ListEscrows renders the logged-in user's transaction list
func (s *Server) ListEscrows(c *gin.Context) {
	escrows, err := s.escrows.ListMine(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    escrows,
	})
}

// ListAllEscrows renders the admin escrow overview
func (s *Server) ListAllEscrows(c *gin.Context) {
	escrows, err := s.escrows.ListAll(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    escrows,
	})
}

// GetEscrow renders one escrow's detail screen
func (s *Server) GetEscrow(c *gin.Context) {
	escrow, err := s.escrows.Get(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    escrow,
	})
}

// UpdateEscrowStatus requests a status transition. Whether the transition
// is allowed is decided by the backend; the returned status is displayed
// as-is.
func (s *Server) UpdateEscrowStatus(c *gin.Context) {
	var body struct {
		Status models.TransactionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Status is required",
		})
		return
	}

	escrow, err := s.escrows.UpdateStatus(c.Request.Context(), middleware.SessionID(c), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    escrow,
	})
}

// UpdateEscrowExpiry changes an escrow's expiry window
func (s *Server) UpdateEscrowExpiry(c *gin.Context) {
	var body struct {
		Days int `json:"days"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "A positive number of days is required",
		})
		return
	}

	escrow, err := s.escrows.UpdateExpiry(c.Request.Context(), middleware.SessionID(c), c.Param("id"), body.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    escrow,
	})
}

// ProcessExpiredEscrows triggers the backend's expiry sweep from the admin
// screen
func (s *Server) ProcessExpiredEscrows(c *gin.Context) {
	result, err := s.escrows.ProcessExpired(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
