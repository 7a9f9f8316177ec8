package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veresiye/backend/internal/application/usecase/dashboard"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles the dashboard aggregate endpoint.
type DashboardController struct {
	getTotalsUseCase *dashboard.GetTotalsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getTotalsUseCase *dashboard.GetTotalsUseCase) *DashboardController {
	return &DashboardController{getTotalsUseCase: getTotalsUseCase}
}

// GetTotals handles GET /dashboard/totals requests.
func (c *DashboardController) GetTotals(ctx *gin.Context) {
	output, err := c.getTotalsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardTotalsResponse(output.Totals))
}
