package counterparty

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// DeleteCounterpartyInput represents the input for counterparty deletion.
type DeleteCounterpartyInput struct {
	CounterpartyID uuid.UUID
}

// DeleteCounterpartyUseCase handles counterparty deletion. A party can only
// be removed once its ledger nets to zero, so no outstanding debt disappears
// with the record.
type DeleteCounterpartyUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
	transactionRepo  adapter.TransactionRepository
}

// NewDeleteCounterpartyUseCase creates a new DeleteCounterpartyUseCase instance.
func NewDeleteCounterpartyUseCase(
	counterpartyRepo adapter.CounterpartyRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteCounterpartyUseCase {
	return &DeleteCounterpartyUseCase{
		counterpartyRepo: counterpartyRepo,
		transactionRepo:  transactionRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteCounterpartyUseCase) Execute(ctx context.Context, input DeleteCounterpartyInput) error {
	counterparty, err := uc.counterpartyRepo.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyNotFound,
			"counterparty not found",
			domainerror.ErrCounterpartyNotFound,
		)
	}

	transactions, err := uc.transactionRepo.FindByCounterparty(ctx, counterparty.ID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if !ledger.Balance(counterparty.Type, transactions).IsZero() {
		return domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyHasBalance,
			"counterparty balance must be zero before deletion",
			domainerror.ErrCounterpartyHasBalance,
		)
	}

	return uc.counterpartyRepo.Delete(ctx, counterparty.ID)
}
