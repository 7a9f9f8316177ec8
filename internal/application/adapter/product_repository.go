package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create creates a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindAll retrieves products ordered by name. When activeOnly is true,
	// deactivated products are excluded.
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Product, error)

	// FindByNameInsensitive retrieves the product whose name matches case-
	// and trim-insensitively. Returns nil when none matches.
	FindByNameInsensitive(ctx context.Context, name string) (*entity.Product, error)

	// Update updates an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete hard-deletes a product. Callers must first verify the product
	// has no transaction items.
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockAdjustmentRepository defines the interface for manual stock corrections.
type StockAdjustmentRepository interface {
	// Create appends a stock adjustment.
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error

	// FindByProduct retrieves all adjustments for a product in insertion order.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.StockAdjustment, error)
}
