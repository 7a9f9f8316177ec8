// Package report contains reporting and statement-sharing use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
)

// GetDailySummaryInput bounds the report range.
type GetDailySummaryInput struct {
	From time.Time
	To   time.Time
}

// GetDailySummaryOutput represents the per-day category breakdown.
type GetDailySummaryOutput struct {
	Days []*entity.DailySummary
}

// GetDailySummaryUseCase produces a per-day category breakdown over a range.
type GetDailySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDailySummaryUseCase creates a new GetDailySummaryUseCase instance.
func NewGetDailySummaryUseCase(transactionRepo adapter.TransactionRepository) *GetDailySummaryUseCase {
	return &GetDailySummaryUseCase{transactionRepo: transactionRepo}
}

// Execute retrieves the summary. An empty range defaults to the last 30 days.
func (uc *GetDailySummaryUseCase) Execute(ctx context.Context, input GetDailySummaryInput) (*GetDailySummaryOutput, error) {
	from, to := normalizeRange(input.From, input.To)

	days, err := uc.transactionRepo.SummarizeByDate(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize by date: %w", err)
	}

	return &GetDailySummaryOutput{Days: days}, nil
}

func normalizeRange(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}
