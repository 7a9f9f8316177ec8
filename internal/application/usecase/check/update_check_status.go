package check

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// UpdateCheckStatusInput represents the input for a check status transition.
type UpdateCheckStatusInput struct {
	CheckID uuid.UUID
	Status  entity.CheckStatus
}

// UpdateCheckStatusOutput represents the output of the transition.
type UpdateCheckStatusOutput struct {
	Check *entity.CheckNote
}

// UpdateCheckStatusUseCase transitions a pending check to paid or bounced.
// Paid is a plain status change. Bounced also reverses the check's linked
// ledger transaction, because the money the paper stood for never arrived.
type UpdateCheckStatusUseCase struct {
	checkRepo       adapter.CheckNoteRepository
	transactionRepo adapter.TransactionRepository
}

// NewUpdateCheckStatusUseCase creates a new UpdateCheckStatusUseCase instance.
func NewUpdateCheckStatusUseCase(
	checkRepo adapter.CheckNoteRepository,
	transactionRepo adapter.TransactionRepository,
) *UpdateCheckStatusUseCase {
	return &UpdateCheckStatusUseCase{
		checkRepo:       checkRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transition.
func (uc *UpdateCheckStatusUseCase) Execute(ctx context.Context, input UpdateCheckStatusInput) (*UpdateCheckStatusOutput, error) {
	if input.Status != entity.CheckStatusPaid && input.Status != entity.CheckStatusBounced {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeInvalidCheckStatus,
			"status must be 'paid' or 'bounced'",
			domainerror.ErrInvalidCheckStatus,
		)
	}

	checkNote, err := uc.checkRepo.FindByID(ctx, input.CheckID)
	if err != nil {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeCheckNotFound,
			"check not found",
			domainerror.ErrCheckNotFound,
		)
	}

	// Terminal states never transition again, so re-sending a bounce cannot
	// stack a second compensating entry.
	if checkNote.IsTerminal() {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeCheckStatusTerminal,
			fmt.Sprintf("check is already %s", checkNote.Status),
			domainerror.ErrCheckStatusTerminal,
		)
	}

	checkNote.Status = input.Status
	checkNote.UpdatedAt = time.Now().UTC()

	if input.Status == entity.CheckStatusPaid {
		if err := uc.checkRepo.Update(ctx, checkNote); err != nil {
			return nil, fmt.Errorf("failed to update check: %w", err)
		}
		return &UpdateCheckStatusOutput{Check: checkNote}, nil
	}

	return uc.bounce(ctx, checkNote)
}

func (uc *UpdateCheckStatusUseCase) bounce(ctx context.Context, checkNote *entity.CheckNote) (*UpdateCheckStatusOutput, error) {
	if checkNote.TransactionID == nil {
		return nil, domainerror.NewCheckError(
			domainerror.ErrCodeBounceWithoutTransaction,
			"check has no linked transaction to reverse",
			domainerror.ErrBounceWithoutTransaction,
		)
	}

	original, err := uc.transactionRepo.FindByID(ctx, *checkNote.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"linked transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	reversal := entity.NewTransaction(
		original.CounterpartyID,
		ledger.CompensatingType(original.Type),
		original.Amount,
		fmt.Sprintf("Bounced %s (reversal)", string(checkNote.Kind)),
		time.Now(),
	)
	reversal.ReversedOf = &original.ID
	checkNote.ReversalTransactionID = &reversal.ID

	// Status flip, reversal insert and ReversalTransactionID stamp commit
	// together or not at all.
	if err := uc.checkRepo.Bounce(ctx, checkNote, reversal); err != nil {
		return nil, err
	}

	return &UpdateCheckStatusOutput{Check: checkNote}, nil
}
