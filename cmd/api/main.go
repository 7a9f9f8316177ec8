// Package main is the entry point for the Veresiye Defteri API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/veresiye/backend/config"
	"github.com/veresiye/backend/internal/application/usecase/auth"
	"github.com/veresiye/backend/internal/application/usecase/check"
	"github.com/veresiye/backend/internal/application/usecase/counterparty"
	"github.com/veresiye/backend/internal/application/usecase/dashboard"
	"github.com/veresiye/backend/internal/application/usecase/product"
	"github.com/veresiye/backend/internal/application/usecase/report"
	"github.com/veresiye/backend/internal/application/usecase/transaction"
	"github.com/veresiye/backend/internal/infra/db"
	"github.com/veresiye/backend/internal/infra/server/router"
	"github.com/veresiye/backend/internal/integration/adapters"
	"github.com/veresiye/backend/internal/integration/email"
	"github.com/veresiye/backend/internal/integration/entrypoint/controller"
	"github.com/veresiye/backend/internal/integration/entrypoint/middleware"
	"github.com/veresiye/backend/internal/integration/persistence"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Veresiye Defteri API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.CounterpartyModel{},
		&model.TransactionModel{},
		&model.TransactionItemModel{},
		&model.ProductModel{},
		&model.StockAdjustmentModel{},
		&model.CheckNoteModel{},
		&model.EmailQueueModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}()

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	counterpartyRepo := persistence.NewCounterpartyRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	productRepo := persistence.NewProductRepository(database.DB())
	adjustmentRepo := persistence.NewStockAdjustmentRepository(database.DB())
	checkRepo := persistence.NewCheckNoteRepository(database.DB())
	emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

	// Adapters and services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	reportTokenStore := adapters.NewReportTokenStore(redisClient)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Counterparty use cases
	createCounterpartyUseCase := counterparty.NewCreateCounterpartyUseCase(counterpartyRepo)
	listCounterpartiesUseCase := counterparty.NewListCounterpartiesUseCase(counterpartyRepo, transactionRepo)
	getCounterpartyUseCase := counterparty.NewGetCounterpartyUseCase(counterpartyRepo, transactionRepo)
	updateCounterpartyUseCase := counterparty.NewUpdateCounterpartyUseCase(counterpartyRepo)
	deleteCounterpartyUseCase := counterparty.NewDeleteCounterpartyUseCase(counterpartyRepo, transactionRepo)

	// Transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, counterpartyRepo, productRepo, adjustmentRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, counterpartyRepo)
	reverseTransactionUseCase := transaction.NewReverseTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Product use cases
	createProductUseCase := product.NewCreateProductUseCase(productRepo)
	listProductsUseCase := product.NewListProductsUseCase(productRepo, transactionRepo, adjustmentRepo)
	setProductActiveUseCase := product.NewSetProductActiveUseCase(productRepo)
	deleteProductUseCase := product.NewDeleteProductUseCase(productRepo, transactionRepo)
	adjustStockUseCase := product.NewAdjustStockUseCase(productRepo, transactionRepo, adjustmentRepo)

	// Check use cases
	createCheckUseCase := check.NewCreateCheckUseCase(checkRepo, counterpartyRepo)
	listChecksUseCase := check.NewListChecksUseCase(checkRepo)
	updateCheckStatusUseCase := check.NewUpdateCheckStatusUseCase(checkRepo, transactionRepo)
	deleteCheckUseCase := check.NewDeleteCheckUseCase(checkRepo)
	listUpcomingChecksUseCase := check.NewListUpcomingChecksUseCase(checkRepo)

	// Dashboard and report use cases
	getTotalsUseCase := dashboard.NewGetTotalsUseCase(counterpartyRepo, transactionRepo)
	getDailySummaryUseCase := report.NewGetDailySummaryUseCase(transactionRepo)
	getMonthlySummaryUseCase := report.NewGetMonthlySummaryUseCase(transactionRepo)
	shareStatementUseCase := report.NewShareStatementUseCase(counterpartyRepo, reportTokenStore)
	getSharedStatementUseCase := report.NewGetSharedStatementUseCase(reportTokenStore, counterpartyRepo, transactionRepo)

	// Controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	counterpartyController := controller.NewCounterpartyController(
		createCounterpartyUseCase,
		listCounterpartiesUseCase,
		getCounterpartyUseCase,
		updateCounterpartyUseCase,
		deleteCounterpartyUseCase,
		listTransactionsUseCase,
	)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		getTransactionUseCase,
		reverseTransactionUseCase,
		deleteTransactionUseCase,
	)
	productController := controller.NewProductController(
		createProductUseCase,
		listProductsUseCase,
		setProductActiveUseCase,
		deleteProductUseCase,
		adjustStockUseCase,
	)
	checkController := controller.NewCheckController(
		createCheckUseCase,
		listChecksUseCase,
		updateCheckStatusUseCase,
		deleteCheckUseCase,
		listUpcomingChecksUseCase,
		controller.CheckWindowConfig{
			OverdueDays:  cfg.Checks.OverdueDays,
			UpcomingDays: cfg.Checks.UpcomingDays,
		},
	)
	dashboardController := controller.NewDashboardController(getTotalsUseCase)
	reportController := controller.NewReportController(
		getDailySummaryUseCase,
		getMonthlySummaryUseCase,
		shareStatementUseCase,
		getSharedStatementUseCase,
		cfg.Reports.ShareTokenTTL,
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Background email delivery
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker := email.NewWorker(emailQueueRepo, sender, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
		go worker.Start(workerCtx)
		slog.Info("Email worker started", "poll_interval", cfg.Email.PollInterval)

		if cfg.Email.ReminderEmail != "" {
			reminderService := email.NewReminderService(checkRepo, emailQueueRepo)
			go runReminderLoop(workerCtx, reminderService, cfg)
			slog.Info("Check reminder loop started", "interval", cfg.Email.ReminderInterval)
		}
	} else {
		slog.Info("Email worker disabled")
	}

	// Router and HTTP server
	r := router.NewRouter(
		healthController,
		authController,
		counterpartyController,
		transactionController,
		productController,
		checkController,
		dashboardController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// runReminderLoop enqueues a due-check digest on a fixed interval until the
// context is cancelled. The first digest goes out immediately on startup.
func runReminderLoop(ctx context.Context, service *email.ReminderService, cfg *config.Config) {
	enqueue := func() {
		if err := service.EnqueueDigest(
			ctx,
			cfg.Email.ReminderEmail,
			cfg.Email.ReminderName,
			cfg.Checks.OverdueDays,
			cfg.Checks.UpcomingDays,
		); err != nil {
			slog.Error("Failed to enqueue check reminder digest", "error", err)
		}
	}

	enqueue()

	ticker := time.NewTicker(cfg.Email.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
