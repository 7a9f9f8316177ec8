package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// ShareStatementInput represents the input for issuing a statement share token.
type ShareStatementInput struct {
	CounterpartyID uuid.UUID
	TTL            time.Duration
}

// ShareStatementOutput carries the opaque token and its expiry.
type ShareStatementOutput struct {
	Token     string
	ExpiresAt time.Time
}

// ShareStatementUseCase issues a short-lived token that grants read access
// to one counterparty's statement without a login. Tokens live in a TTL
// store and expire on their own.
type ShareStatementUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
	tokenStore       adapter.ReportTokenStore
}

// NewShareStatementUseCase creates a new ShareStatementUseCase instance.
func NewShareStatementUseCase(
	counterpartyRepo adapter.CounterpartyRepository,
	tokenStore adapter.ReportTokenStore,
) *ShareStatementUseCase {
	return &ShareStatementUseCase{
		counterpartyRepo: counterpartyRepo,
		tokenStore:       tokenStore,
	}
}

// Execute issues the token.
func (uc *ShareStatementUseCase) Execute(ctx context.Context, input ShareStatementInput) (*ShareStatementOutput, error) {
	counterparty, err := uc.counterpartyRepo.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyNotFound,
			"counterparty not found",
			domainerror.ErrCounterpartyNotFound,
		)
	}

	token, err := uc.tokenStore.Issue(ctx, counterparty.ID, input.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue share token: %w", err)
	}

	return &ShareStatementOutput{
		Token:     token,
		ExpiresAt: time.Now().Add(input.TTL),
	}, nil
}
