package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"escrowmart-web/internal/models"
)

// Session carries the credentials held for one browser session: the bearer
// token issued by the backend and a cached copy of the logged-in user.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	User      *models.User `json:"user,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// IsAuthenticated checks if the session holds a bearer token
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Store persists sessions. Get returns (nil, nil) when no session exists for
// the given ID.
type Store interface {
	Get(id string) (*Session, error)
	Save(s *Session) error
	Clear(id string) error
}

// TokenExpired reports whether the bearer token carries a JWT expiry claim
// that has already passed. The token is decoded without signature
// verification; the backend owns authentication and this is only used to
// drop stale credentials at session load instead of waiting for a 401.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens are kept; the backend decides their validity.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
