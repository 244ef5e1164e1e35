// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/conversation"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// ConversationController handles assistant chat endpoints.
type ConversationController struct {
	engine *conversation.Engine
}

// NewConversationController creates a new conversation controller instance.
func NewConversationController(engine *conversation.Engine) *ConversationController {
	return &ConversationController{
		engine: engine,
	}
}

// Open handles POST /assistant/open requests.
func (c *ConversationController) Open(ctx *gin.Context) {
	welcomed, err := c.engine.Open(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OpenConversationResponse{
		Welcomed: welcomed,
		Messages: dto.ToChatMessageResponses(c.engine.Messages()),
	})
}

// Messages handles GET /assistant/messages requests.
func (c *ConversationController) Messages(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ConversationResponse{
		Messages:       dto.ToChatMessageResponses(c.engine.Messages()),
		PendingReplies: c.engine.Pending(),
	})
}

// Send handles POST /assistant/messages requests. The reply arrives later
// and can be read from the log or the stream.
func (c *ConversationController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingMessageFields),
		})
		return
	}

	message, err := c.engine.SubmitUserMessage(ctx.Request.Context(), req.Text)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := dto.SendMessageResponse{}
	if message != nil {
		m := dto.ToChatMessageResponse(*message)
		response.Message = &m
	}
	ctx.JSON(http.StatusAccepted, response)
}

// Clear handles DELETE /assistant/messages requests.
func (c *ConversationController) Clear(ctx *gin.Context) {
	if err := c.engine.Clear(ctx.Request.Context()); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Stream handles GET /assistant/stream requests as server-sent events. Each
// append to the log is pushed as a "message" event.
func (c *ConversationController) Stream(ctx *gin.Context) {
	notifications, unsubscribe := c.engine.Subscribe()
	defer unsubscribe()

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(ctx.Writer).SetWriteDeadline(time.Time{})

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case notification, ok := <-notifications:
			if !ok {
				return false
			}
			ctx.SSEvent("message", dto.ToChatMessageResponse(notification.Latest))
			return true
		}
	})
}
