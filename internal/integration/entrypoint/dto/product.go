package dto

import (
	"time"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CreateProductRequest is the body for POST /products.
type CreateProductRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

// SetProductActiveRequest is the body for PATCH /products/:id/active.
type SetProductActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// AdjustStockRequest is the body for POST /products/:id/adjustments.
type AdjustStockRequest struct {
	Quantity string `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

// ProductResponse is the wire shape of a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	IsActive  bool      `json:"isActive"`
	Stock     *string   `json:"currentStock,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockAdjustmentResponse is the wire shape of a stock adjustment.
type StockAdjustmentResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  string    `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	Stock     string    `json:"currentStock"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProductResponse converts a product entity to its wire shape.
func ToProductResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Unit:      string(product.Unit),
		IsActive:  product.IsActive,
		CreatedAt: product.CreatedAt,
	}
}

// ToProductWithStockResponse converts a product with its derived stock.
func ToProductWithStockResponse(p *entity.ProductWithStock) ProductResponse {
	response := ToProductResponse(p.Product)
	stock := p.Stock.String()
	response.Stock = &stock
	return response
}

// ToProductListResponse converts a list of products with stock.
func ToProductListResponse(products []*entity.ProductWithStock) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductWithStockResponse(p)
	}
	return responses
}
