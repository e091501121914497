package models

// Product represents a product in the marketplace. Products are created and
// edited only through the backend; the storefront treats them as read-only.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	SellerID    string  `json:"sellerId"`
	SellerName  string  `json:"sellerName"`
	Category    string  `json:"category"`
}

// ProductFilter carries the query parameters for product listing
type ProductFilter struct {
	Category string
	Search   string
	PriceGTE *float64
	PriceLTE *float64
}

// CheckoutItem is a flattened cart entry ready to be submitted as part of an
// escrow-creation request
type CheckoutItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	SellerID     string  `json:"sellerId"`
	SellerName   string  `json:"sellerName"`
	Quantity     int     `json:"quantity"`
}

// GetTotalPrice returns the total price for the checkout item
func (ci *CheckoutItem) GetTotalPrice() float64 {
	return ci.Price * float64(ci.Quantity)
}
