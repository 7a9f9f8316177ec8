package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/application/usecase/product"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// ProductController handles product and stock endpoints.
type ProductController struct {
	createUseCase      *product.CreateProductUseCase
	listUseCase        *product.ListProductsUseCase
	setActiveUseCase   *product.SetProductActiveUseCase
	deleteUseCase      *product.DeleteProductUseCase
	adjustStockUseCase *product.AdjustStockUseCase
}

// NewProductController creates a new product controller instance.
func NewProductController(
	createUseCase *product.CreateProductUseCase,
	listUseCase *product.ListProductsUseCase,
	setActiveUseCase *product.SetProductActiveUseCase,
	deleteUseCase *product.DeleteProductUseCase,
	adjustStockUseCase *product.AdjustStockUseCase,
) *ProductController {
	return &ProductController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		setActiveUseCase:   setActiveUseCase,
		deleteUseCase:      deleteUseCase,
		adjustStockUseCase: adjustStockUseCase,
	}
}

// Create handles POST /products requests.
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), product.CreateProductInput{
		Name: req.Name,
		Unit: entity.ProductUnit(req.Unit),
	})
	if err != nil {
		c.handleProductError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(output.Product))
}

// List handles GET /products requests.
func (c *ProductController) List(ctx *gin.Context) {
	input := product.ListProductsInput{
		ActiveOnly: ctx.Query("activeOnly") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProductError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(output.Products))
}

// SetActive handles PATCH /products/:id/active requests.
func (c *ProductController) SetActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SetProductActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), product.SetProductActiveInput{
		ProductID: id,
		IsActive:  *req.IsActive,
	})
	if err != nil {
		c.handleProductError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(output.Product))
}

// Delete handles DELETE /products/:id requests.
func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), product.DeleteProductInput{
		ProductID: id,
	}); err != nil {
		c.handleProductError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AdjustStock handles POST /products/:id/adjustments requests.
func (c *ProductController) AdjustStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		badRequest(ctx, "Invalid quantity format")
		return
	}

	output, err := c.adjustStockUseCase.Execute(ctx.Request.Context(), product.AdjustStockInput{
		ProductID: id,
		Quantity:  quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		c.handleProductError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.StockAdjustmentResponse{
		ID:        output.Adjustment.ID.String(),
		ProductID: output.Adjustment.ProductID.String(),
		Quantity:  output.Adjustment.Quantity.String(),
		Notes:     output.Adjustment.Notes,
		Stock:     output.Stock.String(),
		CreatedAt: output.Adjustment.CreatedAt,
	})
}

// handleProductError maps product errors to HTTP responses.
func (c *ProductController) handleProductError(ctx *gin.Context, err error) {
	var prodErr *domainerror.ProductError
	if errors.As(err, &prodErr) {
		statusCode := http.StatusBadRequest
		switch prodErr.Code {
		case domainerror.ErrCodeProductNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeProductNameTaken, domainerror.ErrCodeProductHasHistory:
			statusCode = http.StatusConflict
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
