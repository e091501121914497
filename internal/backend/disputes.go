package backend

import (
	"context"
	"fmt"
	"net/http"

	"escrowmart-web/internal/models"
)

// DisputeService wraps the backend's dispute endpoints
type DisputeService struct {
	client *Client
}

// NewDisputeService creates a new dispute service over the gateway client
func NewDisputeService(client *Client) *DisputeService {
	return &DisputeService{client: client}
}

// CreateDisputeData carries a new dispute. Evidence files are optional;
// each file becomes one multipart part under the evidence field.
type CreateDisputeData struct {
	EscrowID string
	Reason   string
	Evidence []File
}

// AddCommentData carries a new comment on a dispute thread
type AddCommentData struct {
	Content     string
	Attachments []File
}

// ListMine fetches the disputes the logged-in user is a party to
func (s *DisputeService) ListMine(ctx context.Context, sessionID string) ([]models.Dispute, error) {
	var disputes []models.Dispute
	if err := s.client.get(ctx, sessionID, "/disputes", nil, &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}

// ListAll fetches every dispute (admin only)
func (s *DisputeService) ListAll(ctx context.Context, sessionID string) ([]models.Dispute, error) {
	var disputes []models.Dispute
	if err := s.client.get(ctx, sessionID, "/disputes/all", nil, &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}

// Get fetches a single dispute by ID
func (s *DisputeService) Get(ctx context.Context, sessionID, id string) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := s.client.get(ctx, sessionID, "/disputes/"+id, nil, &dispute); err != nil {
		return nil, err
	}
	return &dispute, nil
}

// Create raises a dispute against an escrow
func (s *DisputeService) Create(ctx context.Context, sessionID string, data CreateDisputeData) (*models.Dispute, error) {
	fields := map[string]string{
		"escrowId": data.EscrowID,
		"reason":   data.Reason,
	}
	files := map[string][]File{"evidence": data.Evidence}

	var dispute models.Dispute
	err := s.client.submitMultipart(ctx, sessionID, http.MethodPost, "/disputes", fields, files, &dispute)
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// Resolve closes a dispute with a verdict (admin only)
func (s *DisputeService) Resolve(ctx context.Context, sessionID, id string, data models.ResolveDisputeData) (*models.Dispute, error) {
	var dispute models.Dispute
	path := fmt.Sprintf("/disputes/%s/resolve", id)
	if err := s.client.patchJSON(ctx, sessionID, path, data, &dispute); err != nil {
		return nil, err
	}
	return &dispute, nil
}

// Comments fetches a dispute's comment thread
func (s *DisputeService) Comments(ctx context.Context, sessionID, disputeID string) ([]models.DisputeComment, error) {
	var comments []models.DisputeComment
	path := fmt.Sprintf("/disputes/%s/comments", disputeID)
	if err := s.client.get(ctx, sessionID, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment appends a comment to a dispute thread
func (s *DisputeService) AddComment(ctx context.Context, sessionID, disputeID string, data AddCommentData) (*models.DisputeComment, error) {
	fields := map[string]string{"content": data.Content}
	files := map[string][]File{"attachments": data.Attachments}

	var comment models.DisputeComment
	path := fmt.Sprintf("/disputes/%s/comments", disputeID)
	err := s.client.submitMultipart(ctx, sessionID, http.MethodPost, path, fields, files, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
