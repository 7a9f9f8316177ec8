package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// ReverseTransactionInput represents the input for transaction reversal.
type ReverseTransactionInput struct {
	TransactionID uuid.UUID
}

// ReverseTransactionOutput represents the output of transaction reversal.
type ReverseTransactionOutput struct {
	Reversal *entity.Transaction
}

// ReverseTransactionUseCase creates a compensating entry for a transaction.
// The original row is never touched; the reversal carries the opposite-effect
// type so the pair nets to zero on the counterparty's balance.
type ReverseTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewReverseTransactionUseCase creates a new ReverseTransactionUseCase instance.
func NewReverseTransactionUseCase(transactionRepo adapter.TransactionRepository) *ReverseTransactionUseCase {
	return &ReverseTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the reversal.
func (uc *ReverseTransactionUseCase) Execute(ctx context.Context, input ReverseTransactionInput) (*ReverseTransactionOutput, error) {
	original, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	// Reversing a reversal would re-apply the original's effect through a
	// second hop. Corrections of corrections are new transactions instead.
	if original.IsReversal() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCannotReverseReversal,
			"cannot reverse a reversal; create a new transaction instead",
			domainerror.ErrCannotReverseReversal,
		)
	}

	existing, err := uc.transactionRepo.FindReversalOf(ctx, original.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing reversal: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAlreadyReversed,
			"transaction has already been reversed",
			domainerror.ErrAlreadyReversed,
		)
	}

	reversal := entity.NewTransaction(
		original.CounterpartyID,
		ledger.CompensatingType(original.Type),
		original.Amount,
		ledger.ReversalDescriptionPrefix+original.Description,
		time.Now(),
	)
	reversal.ReversedOf = &original.ID

	// Items are copied verbatim as an audit snapshot. Stock derivation only
	// reads sale and purchase rows, so the copies on the compensating type
	// never move stock.
	for _, item := range original.Items {
		reversal.Items = append(reversal.Items, item.CopyTo(reversal.ID))
	}

	// CreateReversal re-checks uniqueness inside the write scope, so two
	// concurrent reversals of the same row cannot both commit.
	if err := uc.transactionRepo.CreateReversal(ctx, original.ID, reversal); err != nil {
		return nil, err
	}

	return &ReverseTransactionOutput{Reversal: reversal}, nil
}
