package check

import (
	"context"
	"fmt"
	"time"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
)

// ListUpcomingChecksInput bounds the dashboard window. OverdueDays looks
// back for pending paper past its due date, UpcomingDays looks forward.
type ListUpcomingChecksInput struct {
	OverdueDays  int
	UpcomingDays int
}

// ListUpcomingChecksOutput represents the output of the dashboard query.
type ListUpcomingChecksOutput struct {
	Checks []*entity.CheckNoteWithCounterparty
}

// ListUpcomingChecksUseCase lists pending checks due inside the window,
// joined with counterparty details for display.
type ListUpcomingChecksUseCase struct {
	checkRepo adapter.CheckNoteRepository
}

// NewListUpcomingChecksUseCase creates a new ListUpcomingChecksUseCase instance.
func NewListUpcomingChecksUseCase(checkRepo adapter.CheckNoteRepository) *ListUpcomingChecksUseCase {
	return &ListUpcomingChecksUseCase{checkRepo: checkRepo}
}

// Execute retrieves pending checks inside the window, ordered by due date.
func (uc *ListUpcomingChecksUseCase) Execute(ctx context.Context, input ListUpcomingChecksInput) (*ListUpcomingChecksOutput, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -input.OverdueDays)
	to := now.AddDate(0, 0, input.UpcomingDays)

	checks, err := uc.checkRepo.FindPendingInWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming checks: %w", err)
	}

	return &ListUpcomingChecksOutput{Checks: checks}, nil
}
