package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// DeleteProductInput represents the input for product deletion.
type DeleteProductInput struct {
	ProductID uuid.UUID
}

// DeleteProductUseCase hard-deletes a product. Products referenced by any
// transaction item cannot be deleted, only deactivated, because removing
// them would change historical stock derivations.
type DeleteProductUseCase struct {
	productRepo     adapter.ProductRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteProductUseCase creates a new DeleteProductUseCase instance.
func NewDeleteProductUseCase(
	productRepo adapter.ProductRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, input DeleteProductInput) error {
	product, err := uc.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return domainerror.NewProductError(
			domainerror.ErrCodeProductNotFound,
			"product not found",
			domainerror.ErrProductNotFound,
		)
	}

	count, err := uc.transactionRepo.CountItemsByProduct(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to count product items: %w", err)
	}
	if count > 0 {
		return domainerror.NewProductError(
			domainerror.ErrCodeProductHasHistory,
			"product has transaction history and can only be deactivated",
			domainerror.ErrProductHasHistory,
		)
	}

	return uc.productRepo.Delete(ctx, product.ID)
}
