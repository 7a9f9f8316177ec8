package counterparty

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// UpdateCounterpartyInput represents the input for counterparty update.
// Type is deliberately absent: flipping customer/supplier would silently
// invert the sign of every historical transaction.
type UpdateCounterpartyInput struct {
	CounterpartyID uuid.UUID
	Name           string
	Phone          string
	TaxNumber      string
	TaxOffice      string
	PaymentDueDay  *int
}

// UpdateCounterpartyOutput represents the output of counterparty update.
type UpdateCounterpartyOutput struct {
	Counterparty *entity.Counterparty
}

// UpdateCounterpartyUseCase handles counterparty update logic.
type UpdateCounterpartyUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
}

// NewUpdateCounterpartyUseCase creates a new UpdateCounterpartyUseCase instance.
func NewUpdateCounterpartyUseCase(counterpartyRepo adapter.CounterpartyRepository) *UpdateCounterpartyUseCase {
	return &UpdateCounterpartyUseCase{counterpartyRepo: counterpartyRepo}
}

// Execute performs the update.
func (uc *UpdateCounterpartyUseCase) Execute(ctx context.Context, input UpdateCounterpartyInput) (*UpdateCounterpartyOutput, error) {
	counterparty, err := uc.counterpartyRepo.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyNotFound,
			"counterparty not found",
			domainerror.ErrCounterpartyNotFound,
		)
	}

	if err := validateCounterpartyFields(counterparty.Type, input.Name, input.PaymentDueDay); err != nil {
		return nil, err
	}

	counterparty.Name = strings.TrimSpace(input.Name)
	counterparty.Phone = strings.TrimSpace(input.Phone)
	counterparty.TaxNumber = strings.TrimSpace(input.TaxNumber)
	counterparty.TaxOffice = strings.TrimSpace(input.TaxOffice)
	counterparty.PaymentDueDay = input.PaymentDueDay
	counterparty.UpdatedAt = time.Now().UTC()

	if err := uc.counterpartyRepo.Update(ctx, counterparty); err != nil {
		return nil, fmt.Errorf("failed to update counterparty: %w", err)
	}

	return &UpdateCounterpartyOutput{Counterparty: counterparty}, nil
}
