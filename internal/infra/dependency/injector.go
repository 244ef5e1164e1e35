// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/usecase/category"
	"github.com/finance-tracker/companion/internal/application/usecase/conversation"
	"github.com/finance-tracker/companion/internal/application/usecase/dashboard"
	"github.com/finance-tracker/companion/internal/application/usecase/goal"
	"github.com/finance-tracker/companion/internal/application/usecase/transaction"
	"github.com/finance-tracker/companion/internal/domain/entity"
	"github.com/finance-tracker/companion/internal/infra/server/router"
	"github.com/finance-tracker/companion/internal/integration/adapters"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/companion/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Engine       *conversation.Engine
	TokenService adapter.TokenService // Nil when authentication is disabled
	RateLimiter  *middleware.RateLimiter
	FormSessions *transaction.FormSessions
}

// Options carries optional collaborators. A nil Redis client keeps the chat
// log in memory; nil Scheduler and Clock use the runtime timer and time.Now.
type Options struct {
	Redis     *redis.Client
	Scheduler conversation.Scheduler
	Clock     func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)

	var chatRepo adapter.ChatRepository
	if opts.Redis != nil {
		chatRepo = persistence.NewChatRepository(opts.Redis, cfg.Redis.ChatKey)
	}

	// Create adapters/services
	var tokenService adapter.TokenService
	if cfg.Auth.JWTSecret != "" {
		tokenService = adapters.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, tokenRepo)
	} else {
		slog.Warn("JWT_SECRET is empty, API authentication is disabled")
	}

	categories := entity.NewCategorySet(cfg.Categories.Income, cfg.Categories.Expense, cfg.Categories.AllowCustom)

	// Create transaction use cases
	formSessions := transaction.NewFormSessions(transactionRepo, categories, opts.Clock)
	formSessions.SetLimits(cfg.Server.FormSessionLimit, cfg.Server.FormSessionIdle)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create category, dashboard and goal use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categories, transactionRepo)
	overviewUseCase := dashboard.NewGetOverviewUseCase(transactionRepo, goalRepo)
	breakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(transactionRepo)
	tracker := goal.NewTracker(goalRepo)

	// Create the assistant
	engine := conversation.NewEngine(
		NewResponder(cfg.Assistant, transactionRepo),
		chatRepo,
		opts.Scheduler,
		opts.Clock,
		conversation.EngineConfig{
			WelcomeMessage:   cfg.Assistant.WelcomeMessage,
			ReplyDelay:       cfg.Assistant.ReplyDelay,
			ReplyTimeout:     cfg.Assistant.ReplyTimeout,
			SupersedePending: cfg.Assistant.SupersedePending,
		},
	)

	// Create controllers
	var chatLogCheck controller.HealthCheck
	if opts.Redis != nil {
		chatLogCheck = func(ctx context.Context) error {
			return opts.Redis.Ping(ctx).Err()
		}
	}
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}, chatLogCheck)

	transactionController := controller.NewTransactionController(
		formSessions,
		listTransactionsUseCase,
		getTransactionUseCase,
		deleteTransactionUseCase,
	)
	categoryController := controller.NewCategoryController(listCategoriesUseCase)
	dashboardController := controller.NewDashboardController(overviewUseCase, breakdownUseCase)
	goalController := controller.NewGoalController(tracker)
	conversationController := controller.NewConversationController(engine)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var chatRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		chatRateLimiter = middleware.NewRateLimiter(1000, time.Minute)
	} else {
		chatRateLimiter = middleware.NewRateLimiter(cfg.Assistant.RateLimit, cfg.Assistant.RateWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		transactionController,
		categoryController,
		dashboardController,
		goalController,
		conversationController,
		chatRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		Engine:       engine,
		TokenService: tokenService,
		RateLimiter:  chatRateLimiter,
		FormSessions: formSessions,
	}
}

// NewResponder builds the configured responder chain. Unknown names fall
// back to the ledger chain.
func NewResponder(cfg config.AssistantConfig, store adapter.TransactionStore) adapter.Responder {
	static := conversation.NewStaticResponder(cfg.DefaultReply)

	switch strings.ToLower(cfg.Responder) {
	case "static":
		return static
	case "keyword":
		return conversation.NewKeywordResponder(conversation.DefaultKeywordRules, static)
	default:
		keyword := conversation.NewKeywordResponder(conversation.DefaultKeywordRules, static)
		return conversation.NewLedgerResponder(store, keyword)
	}
}
