package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/config"
	"escrowmart-web/internal/backend"
	"escrowmart-web/internal/cart"
	"escrowmart-web/internal/checkout"
	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
	"escrowmart-web/internal/session"
)

// Server wires the storefront screens to the backend resource services
type Server struct {
	cfg      *config.Config
	sessions session.Store
	carts    *cart.Store
	auth     *backend.AuthService
	products *backend.ProductService
	escrows  *backend.EscrowService
	disputes *backend.DisputeService
	wallet   *backend.WalletService
	checkout *checkout.Processor
}

// NewServer creates the storefront server over a gateway client
func NewServer(cfg *config.Config, sessions session.Store, client *backend.Client) *Server {
	escrows := backend.NewEscrowService(client)
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		carts:    cart.NewStore(),
		auth:     backend.NewAuthService(client),
		products: backend.NewProductService(client),
		escrows:  escrows,
		disputes: backend.NewDisputeService(client),
		wallet:   backend.NewWalletService(client),
		checkout: checkout.NewProcessor(escrows, backend.DefaultEscrowDays),
	}
}

// Router builds the gin engine with all storefront routes
func (s *Server) Router() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	sessions := middleware.NewSessionMiddleware(s.sessions, s.cfg.SessionCookie)
	router.Use(sessions.Attach())

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", s.Login)
			auth.POST("/register", s.Register)
			auth.POST("/logout", s.Logout)
			auth.GET("/me", sessions.RequireLogin(), s.CurrentUser)
			auth.PATCH("/profile", sessions.RequireLogin(), s.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", s.ListProducts)
			products.GET("/:id", s.GetProduct)
			products.POST("", sessions.RequireRoles(models.UserRoleSeller), s.CreateProduct)
			products.PUT("/:id", sessions.RequireRoles(models.UserRoleSeller), s.UpdateProduct)
			products.DELETE("/:id", sessions.RequireRoles(models.UserRoleSeller), s.DeleteProduct)
		}
		v1.GET("/seller/products", sessions.RequireRoles(models.UserRoleSeller), s.ListOwnProducts)
		v1.GET("/seller/:sellerId/products", s.ListSellerProducts)

		cartGroup := v1.Group("/cart")
		{
			cartGroup.GET("", s.GetCart)
			cartGroup.POST("/items", s.AddToCart)
			cartGroup.PATCH("/items/:productId", s.UpdateCartItem)
			cartGroup.DELETE("/items/:productId", s.RemoveCartItem)
			cartGroup.DELETE("", s.ClearCart)
		}
		v1.POST("/checkout", sessions.RequireLogin(), s.Checkout)

		escrows := v1.Group("/escrows", sessions.RequireLogin())
		{
			escrows.GET("", s.ListEscrows)
			escrows.GET("/all", sessions.RequireRoles(models.UserRoleAdmin), s.ListAllEscrows)
			escrows.GET("/:id", s.GetEscrow)
			escrows.PATCH("/:id/status", s.UpdateEscrowStatus)
			escrows.PATCH("/:id/expiry", s.UpdateEscrowExpiry)
			escrows.POST("/process-expired", sessions.RequireRoles(models.UserRoleAdmin), s.ProcessExpiredEscrows)
		}

		disputes := v1.Group("/disputes", sessions.RequireLogin())
		{
			disputes.GET("", s.ListDisputes)
			disputes.GET("/all", sessions.RequireRoles(models.UserRoleAdmin), s.ListAllDisputes)
			disputes.GET("/:id", s.GetDispute)
			disputes.POST("", s.CreateDispute)
			disputes.PATCH("/:id/resolve", sessions.RequireRoles(models.UserRoleAdmin), s.ResolveDispute)
			disputes.GET("/:id/comments", s.ListDisputeComments)
			disputes.POST("/:id/comments", s.AddDisputeComment)
		}

		wallet := v1.Group("/wallet", sessions.RequireRoles(models.UserRoleSeller))
		{
			wallet.GET("/balance", s.GetWalletBalance)
			wallet.POST("/withdraw", s.WithdrawFunds)
		}
	}

	router.GET("/ws/escrows", sessions.RequireLogin(), s.WatchEscrows)

	return router
}

// respondError translates gateway failures into session-aware responses.
// Server-supplied messages pass through verbatim; a rejected token becomes a
// forced logout with a redirect to the login screen.
func respondError(c *gin.Context, err error) {
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":  false,
			"error":    "Your session has expired. Please log in again.",
			"redirect": "/login",
		})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{
			"success": false,
			"error":   apiErr.Message,
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Unable to connect to the server. Please check your internet connection.",
		})
	}
}
