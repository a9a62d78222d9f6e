package api

import (
	"errors"
	"net/http"

	"alcyxob/gotrain/internal/provider"
	"alcyxob/gotrain/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every endpoint onto the router.
func SetupRoutes(router *gin.Engine, coachService service.CoachService) {
	goalHandler := NewGoalHandler(coachService)
	sessionHandler := NewSessionHandler(coachService)
	planHandler := NewPlanHandler(coachService)
	chatHandler := NewChatHandler(coachService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		goalGroup := apiV1.Group("/goals")
		{
			goalGroup.GET("", goalHandler.GetGoals)
			goalGroup.PUT("", goalHandler.SaveGoals)
			goalGroup.POST("/activities/:activity/toggle", goalHandler.ToggleActivity)
		}

		apiV1.GET("/units", goalHandler.GetUnits)
		apiV1.PUT("/units", goalHandler.SaveUnits)

		connectGroup := apiV1.Group("/connect/strava")
		{
			connectGroup.GET("/url", sessionHandler.ConnectURL)
			connectGroup.POST("/callback", sessionHandler.Callback)
		}
		apiV1.POST("/disconnect", sessionHandler.Disconnect)
		apiV1.POST("/reset", sessionHandler.Reset)

		apiV1.GET("/activities", planHandler.GetActivities)
		apiV1.POST("/activities/refresh", planHandler.RefreshActivities)

		planGroup := apiV1.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.POST("/export", planHandler.ExportPlan)
		}

		apiV1.GET("/stats", planHandler.GetStats)

		chatGroup := apiV1.Group("/chat")
		{
			chatGroup.GET("/messages", chatHandler.GetMessages)
			chatGroup.POST("/messages", chatHandler.SendMessage)
		}
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// abortWithServiceError maps service-layer errors onto HTTP statuses.
// Upstream provider messages are surfaced verbatim; nothing here is fatal.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOperationInProgress):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotConnected):
		abortWithError(c, http.StatusUnauthorized, "Please connect to Strava first.")
	case errors.Is(err, service.ErrGoalsMissing), errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoPlan):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, provider.ErrProviderUnavailable):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
