package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"escrowmart-web/internal/models"
)

// ProductService wraps the backend's product endpoints
type ProductService struct {
	client *Client
}

// NewProductService creates a new product service over the gateway client
func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// ProductUpload carries the multipart fields for creating or updating a
// product. Image is optional on update.
type ProductUpload struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       *File
}

func (u ProductUpload) fields() map[string]string {
	return map[string]string{
		"name":        u.Name,
		"description": u.Description,
		"price":       strconv.FormatFloat(u.Price, 'f', -1, 64),
		"category":    u.Category,
	}
}

func (u ProductUpload) files() map[string][]File {
	if u.Image == nil {
		return nil
	}
	return map[string][]File{"image": {*u.Image}}
}

// List fetches products matching the filter. The price range is inclusive
// and rendered as price[gte]/price[lte] query parameters.
func (s *ProductService) List(ctx context.Context, sessionID string, filter models.ProductFilter) ([]models.Product, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.PriceGTE != nil && filter.PriceLTE != nil {
		params.Set("price[gte]", strconv.FormatFloat(*filter.PriceGTE, 'f', -1, 64))
		params.Set("price[lte]", strconv.FormatFloat(*filter.PriceLTE, 'f', -1, 64))
	}

	var products []models.Product
	if err := s.client.get(ctx, sessionID, "/products", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product by ID
func (s *ProductService) Get(ctx context.Context, sessionID, id string) (*models.Product, error) {
	var product models.Product
	if err := s.client.get(ctx, sessionID, "/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create uploads a new product listing for the logged-in seller
func (s *ProductService) Create(ctx context.Context, sessionID string, upload ProductUpload) (*models.Product, error) {
	var product models.Product
	err := s.client.submitMultipart(ctx, sessionID, http.MethodPost, "/products",
		upload.fields(), upload.files(), &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces a product listing
func (s *ProductService) Update(ctx context.Context, sessionID, id string, upload ProductUpload) (*models.Product, error) {
	var product models.Product
	err := s.client.submitMultipart(ctx, sessionID, http.MethodPut, "/products/"+id,
		upload.fields(), upload.files(), &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product listing
func (s *ProductService) Delete(ctx context.Context, sessionID, id string) error {
	return s.client.delete(ctx, sessionID, "/products/"+id)
}

// ListBySeller fetches a seller's products. With an empty sellerID the
// backend returns the logged-in seller's own products.
func (s *ProductService) ListBySeller(ctx context.Context, sessionID, sellerID string) ([]models.Product, error) {
	endpoint := "/products/seller"
	if sellerID != "" {
		endpoint = fmt.Sprintf("/products/seller/%s", sellerID)
	}

	var products []models.Product
	if err := s.client.get(ctx, sessionID, endpoint, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
