package models

import "time"

// DisputeStatus represents the lifecycle of a dispute record
type DisputeStatus string

const (
	DisputeStatusPending  DisputeStatus = "pending"
	DisputeStatusResolved DisputeStatus = "resolved"
	DisputeStatusRejected DisputeStatus = "rejected"
)

// Dispute represents a formal objection raised by a buyer or seller against
// an escrow's outcome, resolved by an administrator
type Dispute struct {
	ID         string           `json:"id"`
	EscrowID   string           `json:"escrowId"`
	RaisedBy   UserRole         `json:"raisedBy"` // buyer or seller
	UserID     string           `json:"userId"`
	UserName   string           `json:"userName"`
	Reason     string           `json:"reason"`
	Evidence   []string         `json:"evidence"`
	Status     DisputeStatus    `json:"status"`
	AdminNotes *string          `json:"adminNotes,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	ResolvedAt *time.Time       `json:"resolvedAt,omitempty"`
	Comments   []DisputeComment `json:"comments,omitempty"`
}

// IsResolved checks if an administrator has closed the dispute
func (d *Dispute) IsResolved() bool {
	return d.Status == DisputeStatusResolved || d.Status == DisputeStatusRejected
}

// DisputeComment represents one entry in a dispute's append-only thread
type DisputeComment struct {
	ID          string    `json:"id"`
	DisputeID   string    `json:"disputeId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	UserRole    UserRole  `json:"userRole"`
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ResolveDisputeData represents the admin resolution payload
type ResolveDisputeData struct {
	Status     DisputeStatus `json:"status"` // resolved or rejected
	AdminNotes *string       `json:"adminNotes,omitempty"`
}
