package check

import (
	"context"
	"fmt"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
)

// ListChecksOutput represents the output of listing all checks.
type ListChecksOutput struct {
	Checks []*entity.CheckNote
}

// ListChecksUseCase lists all checks and notes ordered by due date.
type ListChecksUseCase struct {
	checkRepo adapter.CheckNoteRepository
}

// NewListChecksUseCase creates a new ListChecksUseCase instance.
func NewListChecksUseCase(checkRepo adapter.CheckNoteRepository) *ListChecksUseCase {
	return &ListChecksUseCase{checkRepo: checkRepo}
}

// Execute retrieves the checks.
func (uc *ListChecksUseCase) Execute(ctx context.Context) (*ListChecksOutput, error) {
	checks, err := uc.checkRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	return &ListChecksOutput{Checks: checks}, nil
}
