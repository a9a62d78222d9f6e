package api

import (
	"net/http"

	"alcyxob/gotrain/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the plan, activity and stats endpoints.
type PlanHandler struct {
	coachService service.CoachService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(coachService service.CoachService) *PlanHandler {
	return &PlanHandler{coachService: coachService}
}

// GetActivities returns the cached activity list from the last refresh.
func (h *PlanHandler) GetActivities(c *gin.Context) {
	activities, err := h.coachService.GetActivities(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// RefreshActivities fetches the last 7 days from the provider and replaces
// the cache. 409 when a refresh is already running.
func (h *PlanHandler) RefreshActivities(c *gin.Context) {
	activities, err := h.coachService.RefreshActivities(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetPlan returns the current plan: raw text always, structured form when it
// parses.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.coachService.CurrentPlan(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GeneratePlan godoc
// @Summary Generate a fresh weekly plan
// @Description Refreshes activity data, gathers strength stats and asks the
// model for a full weekly plan. The new plan fully replaces the current one.
// @Tags Plan
// @Produce json
// @Success 200 {object} service.PlanResult
// @Failure 401 {object} gin.H "Not connected to the activity provider"
// @Failure 409 {object} gin.H "A generation is already running"
// @Router /plan/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	plan, err := h.coachService.GeneratePlan(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportPlan uploads the current plan to the archive bucket and returns a
// temporary download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	url, err := h.coachService.ExportPlan(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetStats returns the per-exercise strength summary. Empty when no strength
// source is configured.
func (h *PlanHandler) GetStats(c *gin.Context) {
	stats, err := h.coachService.ExerciseStats(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
