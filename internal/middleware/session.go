package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"escrowmart-web/internal/models"
	"escrowmart-web/internal/session"
)

const (
	// ContextSessionID is the gin context key for the session identifier
	ContextSessionID = "sessionID"
	// ContextSession is the gin context key for the loaded session record
	ContextSession = "session"

	cookieMaxAge = 30 * 24 * 60 * 60
)

// SessionMiddleware identifies the browser session behind each request
type SessionMiddleware struct {
	store  session.Store
	cookie string
}

// NewSessionMiddleware creates a session middleware over the given store
func NewSessionMiddleware(store session.Store, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{store: store, cookie: cookieName}
}

// Attach ensures every request carries a session cookie and loads the
// stored credentials for it. A bearer token whose expiry has passed is
// dropped here rather than waiting for the backend's 401.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.cookie)
		if err != nil || id == "" {
			id = uuid.New().String()
			c.SetCookie(m.cookie, id, cookieMaxAge, "/", "", false, true)
		}

		sess, err := m.store.Get(id)
		if err != nil {
			log.Printf("failed to load session %s: %v", id, err)
		}

		if sess.IsAuthenticated() && session.TokenExpired(sess.Token) {
			if err := m.store.Clear(id); err != nil {
				log.Printf("failed to clear expired session %s: %v", id, err)
			}
			sess = nil
		}

		c.Set(ContextSessionID, id)
		if sess != nil {
			c.Set(ContextSession, sess)
		}

		c.Next()
	}
}

// RequireLogin rejects requests from sessions without stored credentials
func (m *SessionMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"error":    "Not logged in",
				"redirect": "/login",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoles checks if the cached user has one of the specified roles
func (m *SessionMiddleware) RequireRoles(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.IsAuthenticated() || sess.User == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"error":    "Not logged in",
				"redirect": "/login",
			})
			c.Abort()
			return
		}

		hasValidRole := false
		for _, role := range requiredRoles {
			if sess.User.Role == role {
				hasValidRole = true
				break
			}
		}

		if !hasValidRole {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionID returns the request's session identifier
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// CurrentSession returns the loaded session record, or nil when the session
// holds no credentials
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSession)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}
