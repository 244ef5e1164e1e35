// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/application/usecase/conversation"
	"github.com/finance-tracker/companion/internal/infra/dependency"
	"github.com/finance-tracker/companion/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	tokenID     string

	// Application
	injector  *dependency.Injector
	db        *mock.Db
	scheduler *conversation.ManualScheduler
	clock     *mock.Clock

	// Values captured from responses, substituted as {name}
	stored map[string]string
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

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions. Every scenario gets a
// fresh application wired against the shared in-memory database and Redis.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		if tc.injector != nil {
			tc.injector.Engine.Close()
		}
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	db := mock.NewDb()
	if err := db.ClearDB(); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Assistant.Responder = "ledger"
	cfg.Assistant.ReplyDelay = time.Second
	cfg.Assistant.SupersedePending = false
	cfg.Categories.Income = config.DefaultIncomeCategories
	cfg.Categories.Expense = config.DefaultExpenseCategories
	cfg.Categories.AllowCustom = false

	scheduler := conversation.NewManualScheduler()
	clock := mock.NewClock(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))

	injector := dependency.NewInjector(cfg, db.DbConn, dependency.Options{
		Redis:     redisClient,
		Scheduler: scheduler,
		Clock:     clock.Now,
	})

	return &TestContext{
		server:         httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		requestHeaders: make(map[string]string),
		injector:       injector,
		db:             db,
		scheduler:      scheduler,
		clock:          clock,
		stored:         make(map[string]string),
	}, nil
}
