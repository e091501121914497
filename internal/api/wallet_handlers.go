package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
	"escrowmart-web/internal/utils"
)

// GetWalletBalance renders the seller dashboard's wallet balance
func (s *Server) GetWalletBalance(c *gin.Context) {
	balance, err := s.wallet.Balance(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    balance,
	})
}

// WithdrawFunds forwards a withdrawal request to the backend. Only form
// completeness is checked here; the balance check is the backend's.
func (s *Server) WithdrawFunds(c *gin.Context) {
	var req models.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	if err := utils.ValidateWithdrawal(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	result, err := s.wallet.Withdraw(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"success": result.Success,
		"data":    result,
	})
}
