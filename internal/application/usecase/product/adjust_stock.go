package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// AdjustStockInput represents the input for a manual stock correction.
// Quantity is signed: positive adds (found stock), negative removes
// (spoilage, loss).
type AdjustStockInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Notes     string
}

// AdjustStockOutput carries the recorded adjustment and the stock level
// after it.
type AdjustStockOutput struct {
	Adjustment *entity.StockAdjustment
	Stock      decimal.Decimal
}

// AdjustStockUseCase appends a manual correction to a product's stock log.
// Stock is allowed to go negative here; physical counts trump the books and
// the mismatch is exactly what the adjustment records.
type AdjustStockUseCase struct {
	productRepo     adapter.ProductRepository
	transactionRepo adapter.TransactionRepository
	adjustmentRepo  adapter.StockAdjustmentRepository
}

// NewAdjustStockUseCase creates a new AdjustStockUseCase instance.
func NewAdjustStockUseCase(
	productRepo adapter.ProductRepository,
	transactionRepo adapter.TransactionRepository,
	adjustmentRepo adapter.StockAdjustmentRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		adjustmentRepo:  adjustmentRepo,
	}
}

// Execute records the adjustment.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, input AdjustStockInput) (*AdjustStockOutput, error) {
	if input.Quantity.IsZero() {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeZeroAdjustmentQuantity,
			"adjustment quantity cannot be zero",
			domainerror.ErrZeroAdjustmentQuantity,
		)
	}

	product, err := uc.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeProductNotFound,
			"product not found",
			domainerror.ErrProductNotFound,
		)
	}

	adjustment := entity.NewStockAdjustment(product.ID, input.Quantity, strings.TrimSpace(input.Notes))
	if err := uc.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, fmt.Errorf("failed to record stock adjustment: %w", err)
	}

	items, err := uc.transactionRepo.FindItemsByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for stock level: %w", err)
	}
	adjustments, err := uc.adjustmentRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments for stock level: %w", err)
	}

	return &AdjustStockOutput{
		Adjustment: adjustment,
		Stock:      ledger.StockLevel(items, adjustments),
	}, nil
}
