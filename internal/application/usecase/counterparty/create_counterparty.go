// Package counterparty contains counterparty use cases.
package counterparty

import (
	"context"
	"fmt"
	"strings"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// CreateCounterpartyInput represents the input for counterparty creation.
type CreateCounterpartyInput struct {
	Type          entity.CounterpartyType
	Name          string
	Phone         string
	TaxNumber     string
	TaxOffice     string
	PaymentDueDay *int
}

// CreateCounterpartyOutput represents the output of counterparty creation.
type CreateCounterpartyOutput struct {
	Counterparty *entity.Counterparty
}

// CreateCounterpartyUseCase handles counterparty creation logic.
type CreateCounterpartyUseCase struct {
	counterpartyRepo adapter.CounterpartyRepository
}

// NewCreateCounterpartyUseCase creates a new CreateCounterpartyUseCase instance.
func NewCreateCounterpartyUseCase(counterpartyRepo adapter.CounterpartyRepository) *CreateCounterpartyUseCase {
	return &CreateCounterpartyUseCase{counterpartyRepo: counterpartyRepo}
}

// Execute performs the counterparty creation.
func (uc *CreateCounterpartyUseCase) Execute(ctx context.Context, input CreateCounterpartyInput) (*CreateCounterpartyOutput, error) {
	if err := validateCounterpartyFields(input.Type, input.Name, input.PaymentDueDay); err != nil {
		return nil, err
	}

	counterparty := entity.NewCounterparty(
		input.Type,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Phone),
		strings.TrimSpace(input.TaxNumber),
		strings.TrimSpace(input.TaxOffice),
		input.PaymentDueDay,
	)

	if err := uc.counterpartyRepo.Create(ctx, counterparty); err != nil {
		return nil, fmt.Errorf("failed to create counterparty: %w", err)
	}

	return &CreateCounterpartyOutput{Counterparty: counterparty}, nil
}

func validateCounterpartyFields(partyType entity.CounterpartyType, name string, paymentDueDay *int) error {
	if partyType != entity.CounterpartyTypeCustomer && partyType != entity.CounterpartyTypeSupplier {
		return domainerror.NewCounterpartyError(
			domainerror.ErrCodeInvalidCounterpartyType,
			"counterparty type must be 'customer' or 'supplier'",
			domainerror.ErrInvalidCounterpartyType,
		)
	}

	if strings.TrimSpace(name) == "" {
		return domainerror.NewCounterpartyError(
			domainerror.ErrCodeEmptyCounterpartyName,
			"counterparty name cannot be empty",
			domainerror.ErrEmptyCounterpartyName,
		)
	}

	if paymentDueDay != nil && (*paymentDueDay < 1 || *paymentDueDay > 31) {
		return domainerror.NewCounterpartyError(
			domainerror.ErrCodeInvalidPaymentDueDay,
			"payment due day must be between 1 and 31",
			domainerror.ErrInvalidPaymentDueDay,
		)
	}

	return nil
}
