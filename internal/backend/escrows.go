package backend

import (
	"context"
	"fmt"

	"escrowmart-web/internal/models"
)

// DefaultEscrowDays is the escrow duration applied when a checkout does not
// specify one
const DefaultEscrowDays = 14

// EscrowService wraps the backend's escrow endpoints. The storefront only
// requests status transitions; the backend validates and applies them.
type EscrowService struct {
	client *Client
}

// NewEscrowService creates a new escrow service over the gateway client
func NewEscrowService(client *Client) *EscrowService {
	return &EscrowService{client: client}
}

// EscrowProductItem is one (product, quantity) pair in a creation request
type EscrowProductItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateEscrowRequest asks the backend to open one escrow covering all of a
// single seller's items
type CreateEscrowRequest struct {
	Products   []EscrowProductItem `json:"products"`
	SellerID   string              `json:"sellerId"`
	EscrowDays int                 `json:"escrowDays,omitempty"`
}

// UpdateStatusRequest requests a status transition
type UpdateStatusRequest struct {
	Status models.TransactionStatus `json:"status"`
}

// UpdateExpiryRequest extends or shortens the escrow's expiry window
type UpdateExpiryRequest struct {
	Days int `json:"days"`
}

// ProcessExpiredResult reports the admin expiry sweep outcome
type ProcessExpiredResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ListMine fetches the escrows the logged-in user participates in
func (s *EscrowService) ListMine(ctx context.Context, sessionID string) ([]models.Escrow, error) {
	var escrows []models.Escrow
	if err := s.client.get(ctx, sessionID, "/escrows", nil, &escrows); err != nil {
		return nil, err
	}
	return escrows, nil
}

// ListAll fetches every escrow (admin only)
func (s *EscrowService) ListAll(ctx context.Context, sessionID string) ([]models.Escrow, error) {
	var escrows []models.Escrow
	if err := s.client.get(ctx, sessionID, "/escrows/all", nil, &escrows); err != nil {
		return nil, err
	}
	return escrows, nil
}

// Get fetches a single escrow by ID
func (s *EscrowService) Get(ctx context.Context, sessionID, id string) (*models.Escrow, error) {
	var escrow models.Escrow
	if err := s.client.get(ctx, sessionID, "/escrows/"+id, nil, &escrow); err != nil {
		return nil, err
	}
	return &escrow, nil
}

// Create opens a new escrow for one seller's items
func (s *EscrowService) Create(ctx context.Context, sessionID string, req CreateEscrowRequest) (*models.Escrow, error) {
	if req.EscrowDays == 0 {
		req.EscrowDays = DefaultEscrowDays
	}

	var escrow models.Escrow
	if err := s.client.postJSON(ctx, sessionID, "/escrows", req, &escrow); err != nil {
		return nil, err
	}
	return &escrow, nil
}

// UpdateStatus requests a status transition; the backend decides whether the
// transition is allowed
func (s *EscrowService) UpdateStatus(ctx context.Context, sessionID, id string, status models.TransactionStatus) (*models.Escrow, error) {
	var escrow models.Escrow
	path := fmt.Sprintf("/escrows/%s/status", id)
	if err := s.client.patchJSON(ctx, sessionID, path, UpdateStatusRequest{Status: status}, &escrow); err != nil {
		return nil, err
	}
	return &escrow, nil
}

// UpdateExpiry changes the escrow's expiry window
func (s *EscrowService) UpdateExpiry(ctx context.Context, sessionID, id string, days int) (*models.Escrow, error) {
	var escrow models.Escrow
	path := fmt.Sprintf("/escrows/%s/expiry", id)
	if err := s.client.patchJSON(ctx, sessionID, path, UpdateExpiryRequest{Days: days}, &escrow); err != nil {
		return nil, err
	}
	return &escrow, nil
}

// ProcessExpired triggers the backend's expiry sweep (admin only)
func (s *EscrowService) ProcessExpired(ctx context.Context, sessionID string) (*ProcessExpiredResult, error) {
	var result ProcessExpiredResult
	if err := s.client.postJSON(ctx, sessionID, "/escrows/process-expired", struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
