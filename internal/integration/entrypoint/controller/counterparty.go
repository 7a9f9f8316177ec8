package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/application/usecase/counterparty"
	"github.com/veresiye/backend/internal/application/usecase/transaction"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// CounterpartyController handles counterparty endpoints.
type CounterpartyController struct {
	createUseCase *counterparty.CreateCounterpartyUseCase
	listUseCase   *counterparty.ListCounterpartiesUseCase
	getUseCase    *counterparty.GetCounterpartyUseCase
	updateUseCase *counterparty.UpdateCounterpartyUseCase
	deleteUseCase *counterparty.DeleteCounterpartyUseCase
	ledgerUseCase *transaction.ListTransactionsUseCase
}

// NewCounterpartyController creates a new counterparty controller instance.
func NewCounterpartyController(
	createUseCase *counterparty.CreateCounterpartyUseCase,
	listUseCase *counterparty.ListCounterpartiesUseCase,
	getUseCase *counterparty.GetCounterpartyUseCase,
	updateUseCase *counterparty.UpdateCounterpartyUseCase,
	deleteUseCase *counterparty.DeleteCounterpartyUseCase,
	ledgerUseCase *transaction.ListTransactionsUseCase,
) *CounterpartyController {
	return &CounterpartyController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		ledgerUseCase: ledgerUseCase,
	}
}

// Create handles POST /counterparties requests.
func (c *CounterpartyController) Create(ctx *gin.Context) {
	var req dto.CreateCounterpartyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), counterparty.CreateCounterpartyInput{
		Type:          entity.CounterpartyType(req.Type),
		Name:          req.Name,
		Phone:         req.Phone,
		TaxNumber:     req.TaxNumber,
		TaxOffice:     req.TaxOffice,
		PaymentDueDay: req.PaymentDueDay,
	})
	if err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCounterpartyResponse(output.Counterparty))
}

// List handles GET /counterparties requests.
func (c *CounterpartyController) List(ctx *gin.Context) {
	input := counterparty.ListCounterpartiesInput{}
	if typeParam := ctx.Query("type"); typeParam != "" {
		partyType := entity.CounterpartyType(typeParam)
		input.Type = &partyType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCounterpartyListResponse(output.Counterparties))
}

// Get handles GET /counterparties/:id requests.
func (c *CounterpartyController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), counterparty.GetCounterpartyInput{
		CounterpartyID: id,
	})
	if err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCounterpartyWithBalanceResponse(output.Counterparty))
}

// Ledger handles GET /counterparties/:id/transactions requests.
func (c *CounterpartyController) Ledger(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.ledgerUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		CounterpartyID: id,
	})
	if err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LedgerResponse{
		Counterparty: dto.ToCounterpartyResponse(output.Counterparty),
		Transactions: dto.ToTransactionListResponse(output.Transactions),
		Balance:      output.Balance.StringFixed(2),
	})
}

// Update handles PUT /counterparties/:id requests.
func (c *CounterpartyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCounterpartyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), counterparty.UpdateCounterpartyInput{
		CounterpartyID: id,
		Name:           req.Name,
		Phone:          req.Phone,
		TaxNumber:      req.TaxNumber,
		TaxOffice:      req.TaxOffice,
		PaymentDueDay:  req.PaymentDueDay,
	})
	if err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCounterpartyResponse(output.Counterparty))
}

// Delete handles DELETE /counterparties/:id requests.
func (c *CounterpartyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), counterparty.DeleteCounterpartyInput{
		CounterpartyID: id,
	}); err != nil {
		c.handleCounterpartyError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCounterpartyError maps counterparty errors to HTTP responses.
func (c *CounterpartyController) handleCounterpartyError(ctx *gin.Context, err error) {
	var cpErr *domainerror.CounterpartyError
	if errors.As(err, &cpErr) {
		statusCode := http.StatusBadRequest
		switch cpErr.Code {
		case domainerror.ErrCodeCounterpartyNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeCounterpartyHasBalance:
			statusCode = http.StatusConflict
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

// parseIDParam parses the :id path parameter, writing a 400 on failure.
func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
