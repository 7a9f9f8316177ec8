package check

import (
	"context"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/adapter"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// DeleteCheckInput represents the input for check deletion.
type DeleteCheckInput struct {
	CheckID uuid.UUID
}

// DeleteCheckUseCase removes a check together with the ledger transactions
// it generated. The reversal is deleted before the original so the pair
// leaves the ledger exactly as if the check never existed.
type DeleteCheckUseCase struct {
	checkRepo adapter.CheckNoteRepository
}

// NewDeleteCheckUseCase creates a new DeleteCheckUseCase instance.
func NewDeleteCheckUseCase(checkRepo adapter.CheckNoteRepository) *DeleteCheckUseCase {
	return &DeleteCheckUseCase{checkRepo: checkRepo}
}

// Execute performs the deletion.
func (uc *DeleteCheckUseCase) Execute(ctx context.Context, input DeleteCheckInput) error {
	checkNote, err := uc.checkRepo.FindByID(ctx, input.CheckID)
	if err != nil {
		return domainerror.NewCheckError(
			domainerror.ErrCodeCheckNotFound,
			"check not found",
			domainerror.ErrCheckNotFound,
		)
	}

	return uc.checkRepo.DeleteCascade(ctx, checkNote)
}
