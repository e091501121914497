package models

import "time"

// TransactionStatus represents the lifecycle of an escrow. Transitions are
// enforced server-side; the storefront treats whatever status it receives as
// authoritative and never infers transitions locally.
type TransactionStatus string

const (
	TransactionStatusPending          TransactionStatus = "pending"
	TransactionStatusAwaitingDelivery TransactionStatus = "awaiting_delivery"
	TransactionStatusDelivered        TransactionStatus = "delivered"
	TransactionStatusCompleted        TransactionStatus = "completed"
	TransactionStatusDisputed         TransactionStatus = "disputed"
	TransactionStatusRefunded         TransactionStatus = "refunded"
	TransactionStatusCanceled         TransactionStatus = "canceled"
	TransactionStatusExpired          TransactionStatus = "expired"
)

// EscrowProduct represents a line item within an escrow
type EscrowProduct struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// Escrow represents a backend-held record of funds committed by a buyer for
// a single seller's goods
type Escrow struct {
	ID         string            `json:"id"`
	Products   []EscrowProduct   `json:"products"`
	Amount     float64           `json:"amount"`
	BuyerID    string            `json:"buyerId"`
	BuyerName  string            `json:"buyerName"`
	SellerID   string            `json:"sellerId"`
	SellerName string            `json:"sellerName"`
	Status     TransactionStatus `json:"status"`
	ExpiryDate *time.Time        `json:"expiryDate,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// IsOpen checks if the escrow is still in flight
func (e *Escrow) IsOpen() bool {
	switch e.Status {
	case TransactionStatusCompleted, TransactionStatusRefunded,
		TransactionStatusCanceled, TransactionStatusExpired:
		return false
	}
	return true
}

// TotalItems returns the total quantity across line items
func (e *Escrow) TotalItems() int {
	total := 0
	for _, p := range e.Products {
		total += p.Quantity
	}
	return total
}
