package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// ListTransactionsInput represents the input for listing a counterparty's ledger.
type ListTransactionsInput struct {
	CounterpartyID uuid.UUID
}

// ListTransactionsOutput is the counterparty's full ledger with the balance
// derived from it.
type ListTransactionsOutput struct {
	Counterparty *entity.Counterparty
	Transactions []*entity.Transaction
	Balance      decimal.Decimal
}

// ListTransactionsUseCase handles listing a counterparty's transactions.
type ListTransactionsUseCase struct {
	transactionRepo  adapter.TransactionRepository
	counterpartyRepo adapter.CounterpartyRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	counterpartyRepo adapter.CounterpartyRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo:  transactionRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

// Execute retrieves the transactions and computes the balance. The balance is
// always folded from the rows, never read from a stored column.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	counterparty, err := uc.counterpartyRepo.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyNotFound,
			"counterparty not found",
			domainerror.ErrCounterpartyNotFound,
		)
	}

	transactions, err := uc.transactionRepo.FindByCounterparty(ctx, counterparty.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Counterparty: counterparty,
		Transactions: transactions,
		Balance:      ledger.Balance(counterparty.Type, transactions),
	}, nil
}
