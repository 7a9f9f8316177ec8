// Package dashboard contains the dashboard aggregate use case.
package dashboard

import (
	"context"
	"fmt"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// GetTotalsOutput represents the dashboard totals.
type GetTotalsOutput struct {
	Totals ledger.Totals
}

// GetTotalsUseCase computes total receivables and payables across all
// counterparties.
type GetTotalsUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
	transactionRepo  adapter.TransactionRepository
}

// NewGetTotalsUseCase creates a new GetTotalsUseCase instance.
func NewGetTotalsUseCase(
	counterpartyRepo adapter.CounterpartyRepository,
	transactionRepo adapter.TransactionRepository,
) *GetTotalsUseCase {
	return &GetTotalsUseCase{
		counterpartyRepo: counterpartyRepo,
		transactionRepo:  transactionRepo,
	}
}

// Execute folds every counterparty's balance and aggregates them.
func (uc *GetTotalsUseCase) Execute(ctx context.Context) (*GetTotalsOutput, error) {
	counterparties, err := uc.counterpartyRepo.FindAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}

	parties := make([]*entity.CounterpartyWithBalance, 0, len(counterparties))
	for _, cp := range counterparties {
		transactions, err := uc.transactionRepo.FindByCounterparty(ctx, cp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions for %s: %w", cp.ID, err)
		}
		parties = append(parties, &entity.CounterpartyWithBalance{
			Counterparty: cp,
			Balance:      ledger.Balance(cp.Type, transactions),
		})
	}

	return &GetTotalsOutput{Totals: ledger.AggregateTotals(parties)}, nil
}
