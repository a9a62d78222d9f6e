package api

import (
	"fmt"
	"net/http"

	"alcyxob/gotrain/internal/domain"
	"alcyxob/gotrain/internal/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler serves the goals and unit-preference endpoints.
type GoalHandler struct {
	coachService service.CoachService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(coachService service.CoachService) *GoalHandler {
	return &GoalHandler{coachService: coachService}
}

// --- Request/Response Structs ---

type SaveGoalsRequest struct {
	MainGoal            string   `json:"mainGoal" binding:"required"`
	DaysPerWeek         int      `json:"daysPerWeek" binding:"required,min=1,max=7"`
	FitnessLevel        string   `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	PreferredActivities []string `json:"preferredActivities" binding:"required,min=1"`
	Considerations      string   `json:"considerations"`
}

type SaveUnitsRequest struct {
	Distance string `json:"distance" binding:"required,oneof=kilometers miles"`
	Weight   string `json:"weight" binding:"required,oneof=kg lbs"`
}

// --- Handler Methods ---

// GetGoals returns the saved goals, or the defaults when nothing was saved yet.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.coachService.GetGoals(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// SaveGoals godoc
// @Summary Save the user's training goals
// @Tags Goals
// @Accept json
// @Produce json
// @Param goals body SaveGoalsRequest true "Goal details"
// @Success 200 {object} domain.UserGoals
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /goals [put]
func (h *GoalHandler) SaveGoals(c *gin.Context) {
	var req SaveGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goals, err := h.coachService.SaveGoals(c.Request.Context(), domain.UserGoals{
		MainGoal:            req.MainGoal,
		DaysPerWeek:         req.DaysPerWeek,
		FitnessLevel:        domain.FitnessLevel(req.FitnessLevel),
		PreferredActivities: req.PreferredActivities,
		Considerations:      req.Considerations,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// ToggleActivity flips one preferred-activity tag. Removing the last
// remaining tag is refused by the service, so the returned set is never empty.
func (h *GoalHandler) ToggleActivity(c *gin.Context) {
	tag := c.Param("activity")
	goals, err := h.coachService.ToggleActivity(c.Request.Context(), tag)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetUnits(c *gin.Context) {
	units, err := h.coachService.GetUnits(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *GoalHandler) SaveUnits(c *gin.Context) {
	var req SaveUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	units, err := h.coachService.SaveUnits(c.Request.Context(), domain.Units{
		Distance: req.Distance,
		Weight:   req.Weight,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}
