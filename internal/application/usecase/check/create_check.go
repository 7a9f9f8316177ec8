// Package check contains check and promissory note use cases.
package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// CreateCheckInput represents the input for recording a check or note.
// When WithTransaction is true a ledger entry for the face value is created
// atomically with the check: a collection for received paper, a payment for
// given paper.
type CreateCheckInput struct {
	CounterpartyID  uuid.UUID
	Kind            entity.CheckKind
	Direction       entity.CheckDirection
	Amount          decimal.Decimal
	DueDate         time.Time
	Notes           string
	ReceivedDate    *time.Time
	WithTransaction bool
}

// CreateCheckOutput represents the output of check creation.
type CreateCheckOutput struct {
	Check *entity.CheckNote
}

// CreateCheckUseCase handles check creation logic.
type CreateCheckUseCase struct {
	checkRepo        adapter.CheckNoteRepository
	counterpartyRepo adapter.CounterpartyRepository
}

// NewCreateCheckUseCase creates a new CreateCheckUseCase instance.
func NewCreateCheckUseCase(
	checkRepo adapter.CheckNoteRepository,
	counterpartyRepo adapter.CounterpartyRepository,
) *CreateCheckUseCase {
	return &CreateCheckUseCase{
		checkRepo:        checkRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

// Execute performs the check creation.
func (uc *CreateCheckUseCase) Execute(ctx context.Context, input CreateCheckInput) (*CreateCheckOutput, error) {
	if input.Kind != entity.CheckKindCheck && input.Kind != entity.CheckKindNote {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeInvalidCheckKind,
			"kind must be 'check' or 'note'",
			domainerror.ErrInvalidCheckKind,
		)
	}

	if input.Direction != entity.CheckDirectionReceived && input.Direction != entity.CheckDirectionGiven {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeInvalidCheckDirection,
			"direction must be 'received' or 'given'",
			domainerror.ErrInvalidCheckDirection,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNonPositiveAmount,
			"amount must be greater than zero",
			domainerror.ErrNonPositiveAmount,
		)
	}

	counterparty, err := uc.counterpartyRepo.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, domainerror.NewCounterpartyError(
			domainerror.ErrCodeCounterpartyNotFound,
			"counterparty not found",
			domainerror.ErrCounterpartyNotFound,
		)
	}

	checkNote := entity.NewCheckNote(
		counterparty.ID,
		input.Kind,
		input.Direction,
		input.Amount.Round(2),
		input.DueDate,
		strings.TrimSpace(input.Notes),
		input.ReceivedDate,
	)

	if !input.WithTransaction {
		if err := uc.checkRepo.Create(ctx, checkNote); err != nil {
			return nil, fmt.Errorf("failed to create check: %w", err)
		}
		return &CreateCheckOutput{Check: checkNote}, nil
	}

	// Received paper settles a receivable, given paper settles a payable.
	txType := entity.TxTypeCollection
	if input.Direction == entity.CheckDirectionGiven {
		txType = entity.TxTypePayment
	}

	transaction := entity.NewTransaction(
		counterparty.ID,
		txType,
		checkNote.Amount,
		fmt.Sprintf("%s due %s", kindLabel(checkNote.Kind), checkNote.DueDate.Format("02.01.2006")),
		time.Now(),
	)

	if err := uc.checkRepo.CreateWithTransaction(ctx, checkNote, transaction); err != nil {
		return nil, fmt.Errorf("failed to create check with transaction: %w", err)
	}

	return &CreateCheckOutput{Check: checkNote}, nil
}

func kindLabel(kind entity.CheckKind) string {
	if kind == entity.CheckKindNote {
		return "Note"
	}
	return "Check"
}
