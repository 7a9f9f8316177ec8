package counterparty

import (
	"context"
	"fmt"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// ListCounterpartiesInput represents the input for listing counterparties.
type ListCounterpartiesInput struct {
	Type *entity.CounterpartyType // Optional filter
}

// ListCounterpartiesOutput represents the output of listing counterparties.
type ListCounterpartiesOutput struct {
	Counterparties []*entity.CounterpartyWithBalance
}

// ListCounterpartiesUseCase lists counterparties with their derived balances.
type ListCounterpartiesUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
	transactionRepo  adapter.TransactionRepository
}

// NewListCounterpartiesUseCase creates a new ListCounterpartiesUseCase instance.
func NewListCounterpartiesUseCase(
	counterpartyRepo adapter.CounterpartyRepository,
	transactionRepo adapter.TransactionRepository,
) *ListCounterpartiesUseCase {
	return &ListCounterpartiesUseCase{
		counterpartyRepo: counterpartyRepo,
		transactionRepo:  transactionRepo,
	}
}

// Execute retrieves the counterparties and folds each party's balance from
// its transaction log.
func (uc *ListCounterpartiesUseCase) Execute(ctx context.Context, input ListCounterpartiesInput) (*ListCounterpartiesOutput, error) {
	counterparties, err := uc.counterpartyRepo.FindAll(ctx, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}

	result := make([]*entity.CounterpartyWithBalance, 0, len(counterparties))
	for _, cp := range counterparties {
		transactions, err := uc.transactionRepo.FindByCounterparty(ctx, cp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions for %s: %w", cp.ID, err)
		}
		result = append(result, &entity.CounterpartyWithBalance{
			Counterparty: cp,
			Balance:      ledger.Balance(cp.Type, transactions),
		})
	}

	return &ListCounterpartiesOutput{Counterparties: result}, nil
}
