package report

import (
	"context"
	"fmt"
	"time"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
)

// GetMonthlySummaryInput bounds the report range.
type GetMonthlySummaryInput struct {
	From time.Time
	To   time.Time
}

// GetMonthlySummaryOutput represents the per-month category breakdown.
type GetMonthlySummaryOutput struct {
	Months []*entity.MonthlySummary
}

// GetMonthlySummaryUseCase produces a per-month category breakdown over a range.
type GetMonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(transactionRepo adapter.TransactionRepository) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{transactionRepo: transactionRepo}
}

// Execute retrieves the summary. An empty range defaults to the last twelve
// months.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	from, to := input.From, input.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}

	months, err := uc.transactionRepo.SummarizeByMonth(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize by month: %w", err)
	}

	return &GetMonthlySummaryOutput{Months: months}, nil
}
