// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// ItemInput is one line item on a sale or purchase. ProductName is used to
// find-or-create the product when ProductID is not given; this only applies
// to purchases, since selling a product that was never bought makes no sense.
type ItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// CreateTransactionInput represents the input for transaction creation.
// Either CounterpartyID or CounterpartyName must be set; a name with no ID
// finds or creates the counterparty (quick entry).
type CreateTransactionInput struct {
	CounterpartyID   *uuid.UUID
	CounterpartyName string
	CounterpartyType entity.CounterpartyType // Used only when auto-creating by name
	Type             entity.TxType
	Amount           decimal.Decimal
	Description      string
	TxDate           time.Time
	Items            []ItemInput
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo  adapter.TransactionRepository
	counterpartyRepo adapter.CounterpartyRepository
	productRepo      adapter.ProductRepository
	adjustmentRepo   adapter.StockAdjustmentRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	counterpartyRepo adapter.CounterpartyRepository,
	productRepo adapter.ProductRepository,
	adjustmentRepo adapter.StockAdjustmentRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo:  transactionRepo,
		counterpartyRepo: counterpartyRepo,
		productRepo:      productRepo,
		adjustmentRepo:   adjustmentRepo,
	}
}

// Execute performs the transaction creation. All validation happens before
// any write; the transaction and its items are inserted in one atomic scope.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if !isValidTxType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTxType,
			"transaction type must be 'sale', 'collection', 'purchase' or 'payment'",
			domainerror.ErrInvalidTxType,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNonPositiveAmount,
			"amount must be greater than zero",
			domainerror.ErrNonPositiveAmount,
		)
	}

	// A correction is dated today; an ordinary entry can be backdated but
	// never future-dated.
	if input.TxDate.After(endOfToday()) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeFutureTxDate,
			"transaction date cannot be in the future",
			domainerror.ErrFutureTxDate,
		)
	}

	if len(input.Items) > 0 && input.Type != entity.TxTypeSale && input.Type != entity.TxTypePurchase {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeItemsNotAllowed,
			"only sale and purchase transactions can carry items",
			domainerror.ErrItemsNotAllowed,
		)
	}

	counterparty, err := uc.resolveCounterparty(ctx, input)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		counterparty.ID,
		input.Type,
		input.Amount.Round(2),
		input.Description,
		input.TxDate,
	)

	items, err := uc.resolveItems(ctx, transaction, input)
	if err != nil {
		return nil, err
	}
	transaction.Items = items

	if input.Type == entity.TxTypeSale {
		if err := uc.checkStock(ctx, items); err != nil {
			return nil, err
		}
	}

	if err := uc.transactionRepo.CreateWithItems(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// resolveCounterparty looks the party up by ID, or finds-or-creates it by
// name for quick entry.
func (uc *CreateTransactionUseCase) resolveCounterparty(ctx context.Context, input CreateTransactionInput) (*entity.Counterparty, error) {
	if input.CounterpartyID != nil {
		counterparty, err := uc.counterpartyRepo.FindByID(ctx, *input.CounterpartyID)
		if err != nil {
			return nil, domainerror.NewCounterpartyError(
				domainerror.ErrCodeCounterpartyNotFound,
				"counterparty not found",
				domainerror.ErrCounterpartyNotFound,
			)
		}
		return counterparty, nil
	}

	name := strings.TrimSpace(input.CounterpartyName)
	if name == "" {
		return nil, domainerror.NewCounterpartyError(
			domainerror.ErrCodeEmptyCounterpartyName,
			"counterparty id or name is required",
			domainerror.ErrEmptyCounterpartyName,
		)
	}

	existing, err := uc.counterpartyRepo.FindByNameInsensitive(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up counterparty by name: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	partyType := input.CounterpartyType
	if partyType == "" {
		// Default by transaction direction: sales/collections belong to
		// customers, purchases/payments to suppliers.
		partyType = entity.CounterpartyTypeCustomer
		if input.Type == entity.TxTypePurchase || input.Type == entity.TxTypePayment {
			partyType = entity.CounterpartyTypeSupplier
		}
	}

	counterparty := entity.NewCounterparty(partyType, name, "", "", "", nil)
	if err := uc.counterpartyRepo.Create(ctx, counterparty); err != nil {
		return nil, fmt.Errorf("failed to auto-create counterparty: %w", err)
	}
	return counterparty, nil
}

// resolveItems validates line items and resolves their products.
func (uc *CreateTransactionUseCase) resolveItems(ctx context.Context, transaction *entity.Transaction, input CreateTransactionInput) ([]*entity.TransactionItem, error) {
	if len(input.Items) == 0 {
		return nil, nil
	}

	items := make([]*entity.TransactionItem, 0, len(input.Items))
	for _, it := range input.Items {
		if !it.Quantity.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNonPositiveAmount,
				"item quantity must be greater than zero",
				domainerror.ErrNonPositiveAmount,
			)
		}

		product, err := uc.resolveProduct(ctx, input.Type, it)
		if err != nil {
			return nil, err
		}

		items = append(items, entity.NewTransactionItem(transaction.ID, product.ID, it.Quantity, it.UnitPrice))
	}
	return items, nil
}

func (uc *CreateTransactionUseCase) resolveProduct(ctx context.Context, txType entity.TxType, it ItemInput) (*entity.Product, error) {
	if it.ProductID != nil {
		product, err := uc.productRepo.FindByID(ctx, *it.ProductID)
		if err != nil {
			return nil, domainerror.NewProductError(
				domainerror.ErrCodeProductNotFound,
				"product not found",
				domainerror.ErrProductNotFound,
			)
		}
		return product, nil
	}

	name := strings.TrimSpace(it.ProductName)
	if name == "" {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeEmptyProductName,
			"item product id or name is required",
			domainerror.ErrEmptyProductName,
		)
	}

	existing, err := uc.productRepo.FindByNameInsensitive(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product by name: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// Find-or-create by name only applies when goods are coming in.
	if txType != entity.TxTypePurchase {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeProductNotFound,
			fmt.Sprintf("product %q not found", name),
			domainerror.ErrProductNotFound,
		)
	}

	product := entity.NewProduct(name, entity.ProductUnitAdet)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to auto-create product: %w", err)
	}
	return product, nil
}

// checkStock rejects the whole sale if any product's current stock cannot
// cover the requested quantity. Quantities are summed per product so a sale
// cannot sneak past the guard by splitting a product over multiple lines.
func (uc *CreateTransactionUseCase) checkStock(ctx context.Context, items []*entity.TransactionItem) error {
	requested := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
	}

	for _, productID := range order {
		productItems, err := uc.transactionRepo.FindItemsByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to load items for stock check: %w", err)
		}
		adjustments, err := uc.adjustmentRepo.FindByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to load adjustments for stock check: %w", err)
		}

		available := ledger.StockLevel(productItems, adjustments)
		if available.LessThan(requested[productID]) {
			product, err := uc.productRepo.FindByID(ctx, productID)
			name := productID.String()
			if err == nil {
				name = product.Name
			}
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInsufficientStock,
				fmt.Sprintf("insufficient stock for %q: available %s, requested %s",
					name, available.String(), requested[productID].String()),
				domainerror.ErrInsufficientStock,
			)
		}
	}
	return nil
}

// isValidTxType validates the transaction type.
func isValidTxType(txType entity.TxType) bool {
	switch txType {
	case entity.TxTypeSale, entity.TxTypeCollection, entity.TxTypePurchase, entity.TxTypePayment:
		return true
	}
	return false
}

// endOfToday returns the last instant of the current local date, so a
// transaction dated today always passes the future-date check regardless of
// the time component the caller parsed.
func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}
