package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// TransactionRepository defines the interface for transaction persistence operations.
// Every multi-row write happens inside one database transaction so a partial
// failure can never leave orphaned items or a half-applied cascade.
type TransactionRepository interface {
	// CreateWithItems inserts a transaction and all its line items atomically.
	CreateWithItems(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByCounterparty retrieves all transactions for a counterparty,
	// ordered by transaction date then insertion time.
	FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]*entity.Transaction, error)

	// FindReversalOf returns the transaction whose ReversedOf references the
	// given id, or nil when the transaction has not been reversed.
	FindReversalOf(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// CreateReversal inserts the compensating transaction and its item
	// snapshot atomically, re-checking inside the same scope that no other
	// reversal of the original exists. Returns ErrAlreadyReversed when the
	// check fails, so concurrent reversals cannot both commit.
	CreateReversal(ctx context.Context, originalID uuid.UUID, reversal *entity.Transaction) error

	// DeleteCascade removes the transaction, its items, and — when the
	// transaction has been reversed — the reversing transaction and its
	// items, all in one atomic scope. The cascade is forward-only and one
	// hop: deleting a reversal row directly removes just that row.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// FindItemsByProduct retrieves every line item referencing the product,
	// each paired with its parent transaction's type, as consumed by the
	// stock derivation.
	FindItemsByProduct(ctx context.Context, productID uuid.UUID) ([]ledger.ItemWithTxType, error)

	// CountItemsByProduct reports how many line items reference the product.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// SummarizeByDate groups amounts per day and category over a date range.
	SummarizeByDate(ctx context.Context, from, to time.Time) ([]*entity.DailySummary, error)

	// SummarizeByMonth groups amounts per calendar month and category over a
	// date range.
	SummarizeByMonth(ctx context.Context, from, to time.Time) ([]*entity.MonthlySummary, error)
}
