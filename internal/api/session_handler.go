package api

import (
	"fmt"
	"net/http"

	"alcyxob/gotrain/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the provider-connection lifecycle endpoints.
type SessionHandler struct {
	coachService service.CoachService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(coachService service.CoachService) *SessionHandler {
	return &SessionHandler{coachService: coachService}
}

type CallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// ConnectURL returns the browser URL that starts the provider OAuth flow.
func (h *SessionHandler) ConnectURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": h.coachService.ConnectURL()})
}

// Callback completes the OAuth flow with the code the provider redirected
// back with.
func (h *SessionHandler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.coachService.CompleteConnection(c.Request.Context(), req.Code); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

// Disconnect drops the provider connection and everything scoped to it:
// credentials, cached activities, the current plan and the chat transcript.
func (h *SessionHandler) Disconnect(c *gin.Context) {
	if err := h.coachService.Disconnect(c.Request.Context()); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disconnected": true})
}

// Reset additionally clears saved goals and unit preferences.
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.coachService.Reset(c.Request.Context()); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
