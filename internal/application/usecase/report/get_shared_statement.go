package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// GetSharedStatementInput represents the input for resolving a share token.
type GetSharedStatementInput struct {
	Token string
}

// GetSharedStatementOutput is the statement the token grants access to.
type GetSharedStatementOutput struct {
	Counterparty *entity.Counterparty
	Transactions []*entity.Transaction
	Balance      decimal.Decimal
}

// GetSharedStatementUseCase resolves a share token to its counterparty's
// statement. An unknown or expired token surfaces as ErrInvalidToken from
// the store, untranslated, so the caller can map it to a 401.
type GetSharedStatementUseCase struct {
	tokenStore       adapter.ReportTokenStore
	counterpartyRepo adapter.CounterpartyRepository
	transactionRepo  adapter.TransactionRepository
}

// NewGetSharedStatementUseCase creates a new GetSharedStatementUseCase instance.
func NewGetSharedStatementUseCase(
	tokenStore adapter.ReportTokenStore,
	counterpartyRepo adapter.CounterpartyRepository,
	transactionRepo adapter.TransactionRepository,
) *GetSharedStatementUseCase {
	return &GetSharedStatementUseCase{
		tokenStore:       tokenStore,
		counterpartyRepo: counterpartyRepo,
		transactionRepo:  transactionRepo,
	}
}

// Execute resolves the token and loads the statement.
func (uc *GetSharedStatementUseCase) Execute(ctx context.Context, input GetSharedStatementInput) (*GetSharedStatementOutput, error) {
	counterpartyID, err := uc.tokenStore.Resolve(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	counterparty, err := uc.counterpartyRepo.FindByID(ctx, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load counterparty for token: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByCounterparty(ctx, counterparty.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &GetSharedStatementOutput{
		Counterparty: counterparty,
		Transactions: transactions,
		Balance:      ledger.Balance(counterparty.Type, transactions),
	}, nil
}
