package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// GetTransactionInput represents the input for fetching a single transaction.
type GetTransactionInput struct {
	TransactionID uuid.UUID
}

// GetTransactionOutput carries the transaction with its items and, when the
// transaction has been reversed, the compensating entry.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
	Reversal    *entity.Transaction
}

// GetTransactionUseCase handles fetching one transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute retrieves the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	reversal, err := uc.transactionRepo.FindReversalOf(ctx, transaction.ID)
	if err != nil {
		return nil, err
	}

	return &GetTransactionOutput{Transaction: transaction, Reversal: reversal}, nil
}
