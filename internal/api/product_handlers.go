package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/backend"
	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
)

// relatedLimit caps the related-products strip on the detail screen
const relatedLimit = 4

// ListProducts renders the storefront catalog, forwarding category, search
// and price-range filters to the backend
func (s *Server) ListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	gte, gteErr := strconv.ParseFloat(c.Query("price[gte]"), 64)
	lte, lteErr := strconv.ParseFloat(c.Query("price[lte]"), 64)
	if gteErr == nil && lteErr == nil {
		filter.PriceGTE = &gte
		filter.PriceLTE = &lte
	}

	products, err := s.products.List(c.Request.Context(), middleware.SessionID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct renders the product detail screen together with a short strip
// of related products from the same category
func (s *Server) GetProduct(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	product, err := s.products.Get(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	related := []models.Product{}
	if product.Category != "" {
		sameCategory, err := s.products.List(c.Request.Context(), sessionID,
			models.ProductFilter{Category: product.Category})
		if err == nil {
			related = relatedProducts(sameCategory, *product, relatedLimit)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product": product,
			"related": related,
		},
	})
}

// relatedProducts picks up to limit products sharing the current product's
// category, excluding the product itself
func relatedProducts(candidates []models.Product, current models.Product, limit int) []models.Product {
	related := []models.Product{}
	for _, p := range candidates {
		if p.ID == current.ID {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related
}

// productUploadFromForm reads the seller's multipart product form
func productUploadFromForm(c *gin.Context) (backend.ProductUpload, error) {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	upload := backend.ProductUpload{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Image is optional on update; creation without one is rejected
		// by the backend.
		return upload, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return upload, err
	}
	upload.Image = &backend.File{Name: fileHeader.Filename, Content: file}
	return upload, nil
}

// CreateProduct uploads a new listing for the logged-in seller
func (s *Server) CreateProduct(c *gin.Context) {
	upload, err := productUploadFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid product upload",
		})
		return
	}

	product, err := s.products.Create(c.Request.Context(), middleware.SessionID(c), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct replaces one of the seller's listings
func (s *Server) UpdateProduct(c *gin.Context) {
	upload, err := productUploadFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid product upload",
		})
		return
	}

	product, err := s.products.Update(c.Request.Context(), middleware.SessionID(c), c.Param("id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct removes one of the seller's listings
func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.products.Delete(c.Request.Context(), middleware.SessionID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ListOwnProducts renders the seller dashboard's product list
func (s *Server) ListOwnProducts(c *gin.Context) {
	products, err := s.products.ListBySeller(c.Request.Context(), middleware.SessionID(c), "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// ListSellerProducts renders a public seller storefront page
func (s *Server) ListSellerProducts(c *gin.Context) {
	products, err := s.products.ListBySeller(c.Request.Context(), middleware.SessionID(c), c.Param("sellerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}
