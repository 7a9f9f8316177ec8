package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veresiye/backend/internal/application/usecase/report"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reporting and statement-sharing endpoints.
type ReportController struct {
	dailyUseCase     *report.GetDailySummaryUseCase
	monthlyUseCase   *report.GetMonthlySummaryUseCase
	shareUseCase     *report.ShareStatementUseCase
	getSharedUseCase *report.GetSharedStatementUseCase
	shareTTL         time.Duration
}

// NewReportController creates a new report controller instance.
func NewReportController(
	dailyUseCase *report.GetDailySummaryUseCase,
	monthlyUseCase *report.GetMonthlySummaryUseCase,
	shareUseCase *report.ShareStatementUseCase,
	getSharedUseCase *report.GetSharedStatementUseCase,
	shareTTL time.Duration,
) *ReportController {
	return &ReportController{
		dailyUseCase:     dailyUseCase,
		monthlyUseCase:   monthlyUseCase,
		shareUseCase:     shareUseCase,
		getSharedUseCase: getSharedUseCase,
		shareTTL:         shareTTL,
	}
}

// GetDailySummary handles GET /reports/daily requests.
func (c *ReportController) GetDailySummary(ctx *gin.Context) {
	from, to, ok := parseRangeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.dailyUseCase.Execute(ctx.Request.Context(), report.GetDailySummaryInput{
		From: from,
		To:   to,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailySummaryListResponse(output.Days))
}

// GetMonthlySummary handles GET /reports/monthly requests.
func (c *ReportController) GetMonthlySummary(ctx *gin.Context) {
	from, to, ok := parseRangeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), report.GetMonthlySummaryInput{
		From: from,
		To:   to,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryListResponse(output.Months))
}

// ShareStatement handles POST /counterparties/:id/share requests.
func (c *ReportController) ShareStatement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.shareUseCase.Execute(ctx.Request.Context(), report.ShareStatementInput{
		CounterpartyID: id,
		TTL:            c.shareTTL,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ShareStatementResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	})
}

// GetSharedStatement handles GET /shared/statements/:token requests. This
// endpoint is public; the token is the only credential.
func (c *ReportController) GetSharedStatement(ctx *gin.Context) {
	output, err := c.getSharedUseCase.Execute(ctx.Request.Context(), report.GetSharedStatementInput{
		Token: ctx.Param("token"),
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidToken) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired share token",
			})
			return
		}
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LedgerResponse{
		Counterparty: dto.ToCounterpartyResponse(output.Counterparty),
		Transactions: dto.ToTransactionListResponse(output.Transactions),
		Balance:      output.Balance.StringFixed(2),
	})
}

// handleReportError maps report errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var cpErr *domainerror.CounterpartyError
	if errors.As(err, &cpErr) {
		statusCode := http.StatusBadRequest
		if cpErr.Code == domainerror.ErrCodeCounterpartyNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: cpErr.Message,
			Code:  string(cpErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// parseRangeQuery parses optional from/to date query parameters. Zero values
// are returned for absent parameters so use cases apply their defaults.
func parseRangeQuery(ctx *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time

	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(ctx, "Invalid from date, expected YYYY-MM-DD")
			return from, to, false
		}
		from = parsed
	}

	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(ctx, "Invalid to date, expected YYYY-MM-DD")
			return from, to, false
		}
		to = parsed
	}

	return from, to, true
}
