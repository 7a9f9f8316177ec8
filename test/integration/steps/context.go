// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/usecase/auth"
	"github.com/veresiye/backend/internal/application/usecase/check"
	"github.com/veresiye/backend/internal/application/usecase/counterparty"
	"github.com/veresiye/backend/internal/application/usecase/dashboard"
	"github.com/veresiye/backend/internal/application/usecase/product"
	"github.com/veresiye/backend/internal/application/usecase/report"
	"github.com/veresiye/backend/internal/application/usecase/transaction"
	"github.com/veresiye/backend/internal/infra/server/router"
	"github.com/veresiye/backend/internal/integration/adapters"
	"github.com/veresiye/backend/internal/integration/entrypoint/controller"
	"github.com/veresiye/backend/internal/integration/entrypoint/middleware"
	"github.com/veresiye/backend/internal/integration/persistence"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string

	// Values captured from earlier responses, referenced as {name}
	// in later request paths and bodies.
	stored map[string]string

	cleanup func()
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// userCounter makes each scenario register a distinct operator account.
var userCounter atomic.Int64

// buildEngine wires the full application against an in-memory database
// and an embedded redis, mirroring the production wiring in cmd/api.
func buildEngine() (*gin.Engine, func(), error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.CounterpartyModel{},
		&model.TransactionModel{},
		&model.TransactionItemModel{},
		&model.ProductModel{},
		&model.StockAdjustmentModel{},
		&model.CheckNoteModel{},
		&model.EmailQueueModel{},
	); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded redis: %w", err)
	}
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	userRepo := persistence.NewUserRepository(db)
	counterpartyRepo := persistence.NewCounterpartyRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	productRepo := persistence.NewProductRepository(db)
	adjustmentRepo := persistence.NewStockAdjustmentRepository(db)
	checkRepo := persistence.NewCheckNoteRepository(db)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("integration-test-secret", time.Hour)
	reportTokenStore := adapters.NewReportTokenStore(redisClient)

	r := router.NewRouter(
		controller.NewHealthController(func() bool { return true }),
		controller.NewAuthController(
			auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
			auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		),
		controller.NewCounterpartyController(
			counterparty.NewCreateCounterpartyUseCase(counterpartyRepo),
			counterparty.NewListCounterpartiesUseCase(counterpartyRepo, transactionRepo),
			counterparty.NewGetCounterpartyUseCase(counterpartyRepo, transactionRepo),
			counterparty.NewUpdateCounterpartyUseCase(counterpartyRepo),
			counterparty.NewDeleteCounterpartyUseCase(counterpartyRepo, transactionRepo),
			transaction.NewListTransactionsUseCase(transactionRepo, counterpartyRepo),
		),
		controller.NewTransactionController(
			transaction.NewCreateTransactionUseCase(transactionRepo, counterpartyRepo, productRepo, adjustmentRepo),
			transaction.NewGetTransactionUseCase(transactionRepo),
			transaction.NewReverseTransactionUseCase(transactionRepo),
			transaction.NewDeleteTransactionUseCase(transactionRepo),
		),
		controller.NewProductController(
			product.NewCreateProductUseCase(productRepo),
			product.NewListProductsUseCase(productRepo, transactionRepo, adjustmentRepo),
			product.NewSetProductActiveUseCase(productRepo),
			product.NewDeleteProductUseCase(productRepo, transactionRepo),
			product.NewAdjustStockUseCase(productRepo, transactionRepo, adjustmentRepo),
		),
		controller.NewCheckController(
			check.NewCreateCheckUseCase(checkRepo, counterpartyRepo),
			check.NewListChecksUseCase(checkRepo),
			check.NewUpdateCheckStatusUseCase(checkRepo, transactionRepo),
			check.NewDeleteCheckUseCase(checkRepo),
			check.NewListUpcomingChecksUseCase(checkRepo),
			controller.CheckWindowConfig{OverdueDays: 30, UpcomingDays: 30},
		),
		controller.NewDashboardController(
			dashboard.NewGetTotalsUseCase(counterpartyRepo, transactionRepo),
		),
		controller.NewReportController(
			report.NewGetDailySummaryUseCase(transactionRepo),
			report.NewGetMonthlySummaryUseCase(transactionRepo),
			report.NewShareStatementUseCase(counterpartyRepo, reportTokenStore),
			report.NewGetSharedStatementUseCase(reportTokenStore, counterpartyRepo, transactionRepo),
			time.Hour,
		),
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tokenService),
	)

	cleanup := func() {
		_ = redisClient.Close()
		mr.Close()
	}
	return r.Setup("test"), cleanup, nil
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		engine, cleanup, err := buildEngine()
		if err != nil {
			return ctx, err
		}

		tc := &TestContext{
			engine:         engine,
			requestHeaders: make(map[string]string),
			stored:         make(map[string]string),
			cleanup:        cleanup,
		}
		tc.server = httptest.NewServer(engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.cleanup != nil {
				tc.cleanup()
			}
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I am authenticated$`, iAmAuthenticated)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, iStoreTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iAmAuthenticated(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	email := fmt.Sprintf("operator-%d@example.com", userCounter.Add(1))
	body := fmt.Sprintf(`{"email":%q,"password":"secret-password-1","name":"Operator"}`, email)

	resp, err := http.Post(tc.server.URL+"/api/v1/auth/register", "application/json", strings.NewReader(body))
	if err != nil {
		return ctx, fmt.Errorf("failed to register test user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return ctx, fmt.Errorf("registration failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var authResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return ctx, fmt.Errorf("failed to decode auth response: %w", err)
	}
	tc.accessToken = authResp.Token

	return SetTestContext(ctx, tc), nil
}

// datePattern matches relative date placeholders like {today}, {today+7}
// and {today-10}, resolved against the wall clock at request time.
var datePattern = regexp.MustCompile(`\{today([+-]\d+)?\}`)

func (tc *TestContext) substitute(s string) string {
	for name, value := range tc.stored {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return datePattern.ReplaceAllStringFunc(s, func(match string) string {
		offset := 0
		if sub := datePattern.FindStringSubmatch(match); sub[1] != "" {
			offset, _ = strconv.Atoi(sub[1])
		}
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	})
}

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.substitute(endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, bytes.NewBufferString(tc.substitute(body.Content))); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iStoreTheResponseFieldAs(ctx context.Context, field, name string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return ctx, err
	}
	tc.stored[name] = fmt.Sprintf("%v", value)

	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = tc.substitute(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}

	expected = tc.substitute(expected)
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.lookupField(field)
	return err
}

// lookupField resolves a dot-separated path into the response JSON.
func (tc *TestContext) lookupField(path string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
		}
		current, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
		}
	}
	return current, nil
}
