package api

import (
	"fmt"
	"net/http"

	"alcyxob/gotrain/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the coach chat endpoints.
type ChatHandler struct {
	coachService service.CoachService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(coachService service.CoachService) *ChatHandler {
	return &ChatHandler{coachService: coachService}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetMessages returns the full chat transcript.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.coachService.Transcript(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a chat message to the coach
// @Description Runs one chat turn. When the model replies with a revised
// plan, the plan is swapped atomically and the response carries the new plan;
// a malformed revision leaves the current plan untouched.
// @Tags Chat
// @Accept json
// @Produce json
// @Param message body SendMessageRequest true "Message content"
// @Success 200 {object} service.ChatResult
// @Failure 409 {object} gin.H "A chat turn is already running"
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.coachService.SendMessage(c.Request.Context(), req.Content)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
