package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
	"escrowmart-web/internal/session"
	"escrowmart-web/internal/utils"
)

// Login exchanges credentials for a backend token and stores it in the
// session alongside the cached user profile
func (s *Server) Login(c *gin.Context) {
	var credentials models.UserLogin
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	if err := utils.ValidateLogin(credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	resp, err := s.auth.Login(c.Request.Context(), middleware.SessionID(c), credentials)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := &session.Session{
		ID:    middleware.SessionID(c),
		Token: resp.Token,
		User:  &resp.User,
	}
	if err := s.sessions.Save(sess); err != nil {
		log.Printf("failed to save session after login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to persist session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp.User,
	})
}

// Register creates a buyer or seller account and logs the session in
func (s *Server) Register(c *gin.Context) {
	var registration models.UserRegistration
	if err := c.ShouldBindJSON(&registration); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	if err := utils.ValidateRegistration(registration); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	resp, err := s.auth.Register(c.Request.Context(), middleware.SessionID(c), registration)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := &session.Session{
		ID:    middleware.SessionID(c),
		Token: resp.Token,
		User:  &resp.User,
	}
	if err := s.sessions.Save(sess); err != nil {
		log.Printf("failed to save session after register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to persist session",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    resp.User,
	})
}

// Logout drops the session's stored credentials
func (s *Server) Logout(c *gin.Context) {
	if err := s.sessions.Clear(middleware.SessionID(c)); err != nil {
		log.Printf("failed to clear session on logout: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// CurrentUser fetches the logged-in user from the backend and refreshes the
// session's cached copy
func (s *Server) CurrentUser(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	user, err := s.auth.CurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		sess.User = user
		if err := s.sessions.Save(sess); err != nil {
			log.Printf("failed to refresh cached user: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateProfile forwards a profile update and refreshes the cached user
func (s *Server) UpdateProfile(c *gin.Context) {
	var update models.UserProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	sessionID := middleware.SessionID(c)
	user, err := s.auth.UpdateProfile(c.Request.Context(), sessionID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		sess.User = user
		if err := s.sessions.Save(sess); err != nil {
			log.Printf("failed to refresh cached user: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
