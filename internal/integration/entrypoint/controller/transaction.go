package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/usecase/transaction"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles ledger transaction endpoints.
type TransactionController struct {
	createUseCase  *transaction.CreateTransactionUseCase
	getUseCase     *transaction.GetTransactionUseCase
	reverseUseCase *transaction.ReverseTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	reverseUseCase *transaction.ReverseTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		reverseUseCase: reverseUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input, ok := c.buildCreateInput(ctx, req)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: id,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	response := gin.H{"transaction": dto.ToTransactionResponse(output.Transaction)}
	if output.Reversal != nil {
		response["reversal"] = dto.ToTransactionResponse(output.Reversal)
	}
	ctx.JSON(http.StatusOK, response)
}

// Reverse handles POST /transactions/:id/reverse requests.
func (c *TransactionController) Reverse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.reverseUseCase.Execute(ctx.Request.Context(), transaction.ReverseTransactionInput{
		TransactionID: id,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Reversal))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: id,
	}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// buildCreateInput parses the decimal strings, dates and optional IDs out of
// the request body. Writes a 400 and returns false on any parse failure.
func (c *TransactionController) buildCreateInput(ctx *gin.Context, req dto.CreateTransactionRequest) (transaction.CreateTransactionInput, bool) {
	input := transaction.CreateTransactionInput{
		CounterpartyName: req.CounterpartyName,
		CounterpartyType: entity.CounterpartyType(req.CounterpartyType),
		Type:             entity.TxType(req.Type),
		Description:      req.Description,
	}

	if req.CounterpartyID != nil {
		id, err := uuid.Parse(*req.CounterpartyID)
		if err != nil {
			badRequest(ctx, "Invalid counterparty ID format")
			return input, false
		}
		input.CounterpartyID = &id
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badRequest(ctx, "Invalid amount format")
		return input, false
	}
	input.Amount = amount

	txDate, err := time.Parse("2006-01-02", req.TxDate)
	if err != nil {
		badRequest(ctx, "Invalid transaction date, expected YYYY-MM-DD")
		return input, false
	}
	input.TxDate = txDate

	for _, item := range req.Items {
		itemInput := transaction.ItemInput{ProductName: item.ProductName}

		if item.ProductID != nil {
			productID, err := uuid.Parse(*item.ProductID)
			if err != nil {
				badRequest(ctx, "Invalid product ID format")
				return input, false
			}
			itemInput.ProductID = &productID
		}

		quantity, err := decimal.NewFromString(item.Quantity)
		if err != nil {
			badRequest(ctx, "Invalid item quantity format")
			return input, false
		}
		itemInput.Quantity = quantity

		if item.UnitPrice != nil {
			price, err := decimal.NewFromString(*item.UnitPrice)
			if err != nil {
				badRequest(ctx, "Invalid item unit price format")
				return input, false
			}
			itemInput.UnitPrice = &price
		}

		input.Items = append(input.Items, itemInput)
	}

	return input, true
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		statusCode := http.StatusBadRequest
		switch txErr.Code {
		case domainerror.ErrCodeTransactionNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeAlreadyReversed, domainerror.ErrCodeCannotReverseReversal:
			statusCode = http.StatusConflict
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
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

	var prodErr *domainerror.ProductError
	if errors.As(err, &prodErr) {
		statusCode := http.StatusBadRequest
		if prodErr.Code == domainerror.ErrCodeProductNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: prodErr.Message,
			Code:  string(prodErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// badRequest writes a 400 with the given message.
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
