package backend

import (
	"context"

	"escrowmart-web/internal/models"
)

// WalletService wraps the backend's seller wallet endpoints
type WalletService struct {
	client *Client
}

// NewWalletService creates a new wallet service over the gateway client
func NewWalletService(client *Client) *WalletService {
	return &WalletService{client: client}
}

// Balance fetches the logged-in seller's wallet balance
func (s *WalletService) Balance(ctx context.Context, sessionID string) (*models.WalletBalance, error) {
	var balance models.WalletBalance
	if err := s.client.get(ctx, sessionID, "/wallet/balance", nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// Withdraw requests a payout to the given bank account
func (s *WalletService) Withdraw(ctx context.Context, sessionID string, req models.WithdrawalRequest) (*models.WithdrawalResult, error) {
	var result models.WithdrawalResult
	if err := s.client.postJSON(ctx, sessionID, "/wallet/withdraw", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
