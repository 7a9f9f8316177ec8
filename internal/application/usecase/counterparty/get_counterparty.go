package counterparty

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// GetCounterpartyInput represents the input for fetching a counterparty.
type GetCounterpartyInput struct {
	CounterpartyID uuid.UUID
}

// GetCounterpartyOutput represents the output of fetching a counterparty.
type GetCounterpartyOutput struct {
	Counterparty *entity.CounterpartyWithBalance
}

// GetCounterpartyUseCase fetches one counterparty with its derived balance.
type GetCounterpartyUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
	transactionRepo  adapter.TransactionRepository
}

// NewGetCounterpartyUseCase creates a new GetCounterpartyUseCase instance.
func NewGetCounterpartyUseCase(
	counterpartyRepo adapter.CounterpartyRepository,
	transactionRepo adapter.TransactionRepository,
) *GetCounterpartyUseCase {
	return &GetCounterpartyUseCase{
		counterpartyRepo: counterpartyRepo,
		transactionRepo:  transactionRepo,
	}
}

// Execute retrieves the counterparty.
func (uc *GetCounterpartyUseCase) Execute(ctx context.Context, input GetCounterpartyInput) (*GetCounterpartyOutput, error) {
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
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &GetCounterpartyOutput{
		Counterparty: &entity.CounterpartyWithBalance{
			Counterparty: counterparty,
			Balance:      ledger.Balance(counterparty.Type, transactions),
		},
	}, nil
}
