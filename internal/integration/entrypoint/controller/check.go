package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/usecase/check"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// CheckWindowConfig holds the default dashboard window for upcoming checks.
type CheckWindowConfig struct {
	OverdueDays  int
	UpcomingDays int
}

// CheckController handles check and promissory note endpoints.
type CheckController struct {
	createUseCase       *check.CreateCheckUseCase
	listUseCase         *check.ListChecksUseCase
	updateStatusUseCase *check.UpdateCheckStatusUseCase
	deleteUseCase       *check.DeleteCheckUseCase
	upcomingUseCase     *check.ListUpcomingChecksUseCase
	window              CheckWindowConfig
}

// NewCheckController creates a new check controller instance.
func NewCheckController(
	createUseCase *check.CreateCheckUseCase,
	listUseCase *check.ListChecksUseCase,
	updateStatusUseCase *check.UpdateCheckStatusUseCase,
	deleteUseCase *check.DeleteCheckUseCase,
	upcomingUseCase *check.ListUpcomingChecksUseCase,
	window CheckWindowConfig,
) *CheckController {
	return &CheckController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		updateStatusUseCase: updateStatusUseCase,
		deleteUseCase:       deleteUseCase,
		upcomingUseCase:     upcomingUseCase,
		window:              window,
	}
}

// Create handles POST /checks requests.
func (c *CheckController) Create(ctx *gin.Context) {
	var req dto.CreateCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	counterpartyID, err := uuid.Parse(req.CounterpartyID)
	if err != nil {
		badRequest(ctx, "Invalid counterparty ID format")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badRequest(ctx, "Invalid amount format")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		badRequest(ctx, "Invalid due date, expected YYYY-MM-DD")
		return
	}

	input := check.CreateCheckInput{
		CounterpartyID:  counterpartyID,
		Kind:            entity.CheckKind(req.Kind),
		Direction:       entity.CheckDirection(req.Direction),
		Amount:          amount,
		DueDate:         dueDate,
		Notes:           req.Notes,
		WithTransaction: req.WithTransaction,
	}

	if req.ReceivedDate != "" {
		receivedDate, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			badRequest(ctx, "Invalid received date, expected YYYY-MM-DD")
			return
		}
		input.ReceivedDate = &receivedDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCheckError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCheckResponse(output.Check))
}

// List handles GET /checks requests.
func (c *CheckController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleCheckError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCheckListResponse(output.Checks))
}

// UpdateStatus handles PATCH /checks/:id/status requests.
func (c *CheckController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCheckStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), check.UpdateCheckStatusInput{
		CheckID: id,
		Status:  entity.CheckStatus(req.Status),
	})
	if err != nil {
		c.handleCheckError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCheckResponse(output.Check))
}

// Delete handles DELETE /checks/:id requests.
func (c *CheckController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), check.DeleteCheckInput{
		CheckID: id,
	}); err != nil {
		c.handleCheckError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Upcoming handles GET /checks/upcoming requests. The window defaults come
// from configuration and can be overridden per request via query parameters.
func (c *CheckController) Upcoming(ctx *gin.Context) {
	input := check.ListUpcomingChecksInput{
		OverdueDays:  c.window.OverdueDays,
		UpcomingDays: c.window.UpcomingDays,
	}

	if days, ok := parseDaysQuery(ctx, "overdueDays"); ok {
		input.OverdueDays = days
	}
	if days, ok := parseDaysQuery(ctx, "upcomingDays"); ok {
		input.UpcomingDays = days
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCheckError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingCheckListResponse(output.Checks))
}

// handleCheckError maps check errors to HTTP responses.
func (c *CheckController) handleCheckError(ctx *gin.Context, err error) {
	var chkErr *domainerror.CheckError
	if errors.As(err, &chkErr) {
		statusCode := http.StatusBadRequest
		switch chkErr.Code {
		case domainerror.ErrCodeCheckNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeCheckStatusTerminal:
			statusCode = http.StatusConflict
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: chkErr.Message,
			Code:  string(chkErr.Code),
		})
		return
	}

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

	// Bouncing reverses the linked ledger transaction, so transaction
	// errors surface here too.
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := http.StatusBadRequest
		switch txnErr.Code {
		case domainerror.ErrCodeTransactionNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeAlreadyReversed, domainerror.ErrCodeCannotReverseReversal:
			statusCode = http.StatusConflict
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// parseDaysQuery parses a non-negative integer query parameter. Missing or
// malformed values report not-ok and leave the configured default in place.
func parseDaysQuery(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, false
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, false
	}
	return days, true
}
