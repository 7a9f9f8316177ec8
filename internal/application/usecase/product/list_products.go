package product

import (
	"context"
	"fmt"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// ListProductsInput represents the input for listing products.
type ListProductsInput struct {
	ActiveOnly bool
}

// ListProductsOutput represents the output of listing products.
type ListProductsOutput struct {
	Products []*entity.ProductWithStock
}

// ListProductsUseCase lists products with their derived stock levels.
type ListProductsUseCase struct {
	productRepo     adapter.ProductRepository
	transactionRepo adapter.TransactionRepository
	adjustmentRepo  adapter.StockAdjustmentRepository
}

// NewListProductsUseCase creates a new ListProductsUseCase instance.
func NewListProductsUseCase(
	productRepo adapter.ProductRepository,
	transactionRepo adapter.TransactionRepository,
	adjustmentRepo adapter.StockAdjustmentRepository,
) *ListProductsUseCase {
	return &ListProductsUseCase{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		adjustmentRepo:  adjustmentRepo,
	}
}

// Execute retrieves the products. Stock is derived from the item log and the
// adjustment log on every read, the same way balances are.
func (uc *ListProductsUseCase) Execute(ctx context.Context, input ListProductsInput) (*ListProductsOutput, error) {
	products, err := uc.productRepo.FindAll(ctx, input.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := make([]*entity.ProductWithStock, 0, len(products))
	for _, p := range products {
		items, err := uc.transactionRepo.FindItemsByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for %s: %w", p.ID, err)
		}
		adjustments, err := uc.adjustmentRepo.FindByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load adjustments for %s: %w", p.ID, err)
		}
		result = append(result, &entity.ProductWithStock{
			Product: p,
			Stock:   ledger.StockLevel(items, adjustments),
		})
	}

	return &ListProductsOutput{Products: result}, nil
}
