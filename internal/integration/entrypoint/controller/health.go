// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthCheck
	chatLog  HealthCheck // Optional
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	ChatLog   string `json:"chat_log"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil chat
// log check reports the mirror as disabled.
func NewHealthController(database, chatLog HealthCheck) *HealthController {
	return &HealthController{
		database: database,
		chatLog:  chatLog,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		ChatLog:   "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.database != nil && h.database(ctx) == nil {
		response.Database = "connected"
	} else {
		response.Status = "degraded"
	}

	if h.chatLog != nil {
		if h.chatLog(ctx) == nil {
			response.ChatLog = "connected"
		} else {
			response.ChatLog = "disconnected"
			response.Status = "degraded"
		}
	}

	c.JSON(http.StatusOK, response)
}
