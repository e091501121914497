package backend

import (
	"context"

	"escrowmart-web/internal/models"
)

// AuthService wraps the backend's authentication endpoints
type AuthService struct {
	client *Client
}

// NewAuthService creates a new auth service over the gateway client
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a bearer token and user profile. The
// caller is responsible for persisting both into the session.
func (s *AuthService) Login(ctx context.Context, sessionID string, credentials models.UserLogin) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.client.postJSON(ctx, sessionID, "/auth/login", credentials, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new buyer or seller account
func (s *AuthService) Register(ctx context.Context, sessionID string, registration models.UserRegistration) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.client.postJSON(ctx, sessionID, "/auth/register", registration, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the profile for the session's bearer token
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	var user models.User
	if err := s.client.get(ctx, sessionID, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the logged-in user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, update models.UserProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.client.patchJSON(ctx, sessionID, "/auth/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
