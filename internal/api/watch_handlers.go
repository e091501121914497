package api

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
)

// watchOriginAllowed rejects cross-origin socket opens in production. The
// session cookie rides along on the upgrade request, so a third-party page
// must not be able to open the stream.
func (s *Server) watchOriginAllowed(r *http.Request) bool {
	if s.cfg.Environment != "production" {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// StatusUpdate is pushed to the browser when an escrow changes status
type StatusUpdate struct {
	Type     string                   `json:"type"`
	EscrowID string                   `json:"escrowId"`
	Status   models.TransactionStatus `json:"status"`
}

// WatchEscrows streams escrow status transitions to the browser. The
// storefront pages used to poll and re-render; here the gateway polls the
// backend on the configured cadence and pushes only the changes.
func (s *Server) WatchEscrows(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	upgrader := websocket.Upgrader{CheckOrigin: s.watchOriginAllowed}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade escrow watch connection: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader only detects the browser closing the socket
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Every(s.cfg.WatchInterval), 1)
	statuses := make(map[string]models.TransactionStatus)
	first := true

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		escrows, err := s.escrows.ListMine(ctx, sessionID)
		if err != nil {
			// Includes forced logout: the session is already cleared, so
			// just end the stream and let the page redirect on its next
			// request.
			log.Printf("escrow watch poll failed: %v", err)
			return
		}

		for _, escrow := range escrows {
			previous, seen := statuses[escrow.ID]
			statuses[escrow.ID] = escrow.Status

			if first || (seen && previous == escrow.Status) {
				continue
			}

			update := StatusUpdate{
				Type:     "escrow_status",
				EscrowID: escrow.ID,
				Status:   escrow.Status,
			}
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		}
		first = false
	}
}
