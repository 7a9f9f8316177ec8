// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/veresiye/backend/internal/integration/entrypoint/controller"
	"github.com/veresiye/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	counterpartyController *controller.CounterpartyController
	transactionController  *controller.TransactionController
	productController      *controller.ProductController
	checkController        *controller.CheckController
	dashboardController    *controller.DashboardController
	reportController       *controller.ReportController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	counterpartyController *controller.CounterpartyController,
	transactionController *controller.TransactionController,
	productController *controller.ProductController,
	checkController *controller.CheckController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		counterpartyController: counterpartyController,
		transactionController:  transactionController,
		productController:      productController,
		checkController:        checkController,
		dashboardController:    dashboardController,
		reportController:       reportController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Shared statement access is public: the token is the credential.
		if r.reportController != nil {
			v1.GET("/shared/statements/:token", r.reportController.GetSharedStatement)
		}

		if r.counterpartyController != nil && r.authMiddleware != nil {
			counterparties := v1.Group("/counterparties")
			counterparties.Use(r.authMiddleware.Authenticate())
			{
				counterparties.POST("", r.counterpartyController.Create)
				counterparties.GET("", r.counterpartyController.List)
				counterparties.GET("/:id", r.counterpartyController.Get)
				counterparties.PUT("/:id", r.counterpartyController.Update)
				counterparties.DELETE("/:id", r.counterpartyController.Delete)
				counterparties.GET("/:id/transactions", r.counterpartyController.Ledger)

				if r.reportController != nil {
					counterparties.POST("/:id/share", r.reportController.ShareStatement)
				}
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/:id", r.transactionController.Get)
				transactions.POST("/:id/reverse", r.transactionController.Reverse)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.productController != nil && r.authMiddleware != nil {
			products := v1.Group("/products")
			products.Use(r.authMiddleware.Authenticate())
			{
				products.POST("", r.productController.Create)
				products.GET("", r.productController.List)
				products.PATCH("/:id/active", r.productController.SetActive)
				products.DELETE("/:id", r.productController.Delete)
				products.POST("/:id/adjustments", r.productController.AdjustStock)
			}
		}

		if r.checkController != nil && r.authMiddleware != nil {
			checks := v1.Group("/checks")
			checks.Use(r.authMiddleware.Authenticate())
			{
				checks.POST("", r.checkController.Create)
				checks.GET("", r.checkController.List)
				checks.GET("/upcoming", r.checkController.Upcoming)
				checks.PATCH("/:id/status", r.checkController.UpdateStatus)
				checks.DELETE("/:id", r.checkController.Delete)
			}
		}

		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/totals", r.dashboardController.GetTotals)
			}
		}

		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/daily", r.reportController.GetDailySummary)
				reports.GET("/monthly", r.reportController.GetMonthlySummary)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
