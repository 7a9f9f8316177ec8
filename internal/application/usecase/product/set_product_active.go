package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// SetProductActiveInput represents the input for activating or deactivating
// a product.
type SetProductActiveInput struct {
	ProductID uuid.UUID
	IsActive  bool
}

// SetProductActiveOutput represents the output of the toggle.
type SetProductActiveOutput struct {
	Product *entity.Product
}

// SetProductActiveUseCase toggles a product's availability for new sales.
// Deactivation keeps the row so historical transactions stay intact.
type SetProductActiveUseCase struct {
	productRepo adapter.ProductRepository
}

// NewSetProductActiveUseCase creates a new SetProductActiveUseCase instance.
func NewSetProductActiveUseCase(productRepo adapter.ProductRepository) *SetProductActiveUseCase {
	return &SetProductActiveUseCase{productRepo: productRepo}
}

// Execute performs the toggle.
func (uc *SetProductActiveUseCase) Execute(ctx context.Context, input SetProductActiveInput) (*SetProductActiveOutput, error) {
	product, err := uc.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeProductNotFound,
			"product not found",
			domainerror.ErrProductNotFound,
		)
	}

	product.IsActive = input.IsActive
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &SetProductActiveOutput{Product: product}, nil
}
