// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	transactionController  *controller.TransactionController
	categoryController     *controller.CategoryController
	dashboardController    *controller.DashboardController
	goalController         *controller.GoalController
	conversationController *controller.ConversationController
	chatRateLimiter        *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	dashboardController *controller.DashboardController,
	goalController *controller.GoalController,
	conversationController *controller.ConversationController,
	chatRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		transactionController:  transactionController,
		categoryController:     categoryController,
		dashboardController:    dashboardController,
		goalController:         goalController,
		conversationController: conversationController,
		chatRateLimiter:        chatRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every group requires a
// bearer token unless authentication is disabled.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.GET("/drafts/:form_id", r.transactionController.Draft)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		v1.GET("/categories", r.categoryController.List)

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/overview", r.dashboardController.Overview)
			dashboard.GET("/categories", r.dashboardController.CategoryBreakdown)
		}

		goals := v1.Group("/goals")
		{
			goals.GET("", r.goalController.List)
			goals.POST("", r.goalController.Create)
			goals.GET("/:id", r.goalController.Get)
			goals.PUT("/:id/progress", r.goalController.UpdateProgress)
			goals.POST("/:id/reset", r.goalController.Reset)
			goals.DELETE("/:id", r.goalController.Delete)
		}

		assistant := v1.Group("/assistant")
		{
			assistant.POST("/open", r.conversationController.Open)
			assistant.GET("/messages", r.conversationController.Messages)
			assistant.POST("/messages", r.chatRateLimiter.Middleware(), r.conversationController.Send)
			assistant.DELETE("/messages", r.conversationController.Clear)
			assistant.GET("/stream", r.conversationController.Stream)
		}
	}
}
