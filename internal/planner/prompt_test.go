package planner

import (
	"strings"
	"testing"
	"time"

	"alcyxob/gotrain/internal/domain"

	"github.com/stretchr/testify/require"
)

func testGoals(days int) domain.UserGoals {
	return domain.UserGoals{
		MainGoal:            "run a sub-50 10k",
		DaysPerWeek:         days,
		FitnessLevel:        domain.LevelIntermediate,
		PreferredActivities: []string{"running", "strength"},
	}
}

func TestBuildPlanPromptStatesAvailabilityAndRestDays(t *testing.T) {
	prompt := BuildPlanPrompt(testGoals(4), nil, nil, domain.DefaultUnits(), time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	require.Contains(t, prompt, "- Availability: 4 days/week")
	require.Contains(t, prompt, `availability of 4 days/week. For other days, mark them as "rest".`)
}

func TestBuildPlanPromptEmptyActivitiesIsExplicit(t *testing.T) {
	prompt := BuildPlanPrompt(testGoals(3), nil, nil, domain.DefaultUnits(), time.Now())

	require.Contains(t, prompt, "No recent activities found.")
}

func TestBuildPlanPromptRendersActivities(t *testing.T) {
	activities := []domain.ActivityRecord{
		{Name: "Morning Run", Type: "Run", Distance: 8000, MovingTime: 2400},
	}

	prompt := BuildPlanPrompt(testGoals(3), activities, nil, domain.DefaultUnits(), time.Now())

	require.Contains(t, prompt, "- Morning Run: Run, 8km, 40 mins")
	require.NotContains(t, prompt, "No recent activities found.")
}

func TestBuildPlanPromptUnits(t *testing.T) {
	units := domain.Units{Distance: "miles", Weight: "lbs"}

	prompt := BuildPlanPrompt(testGoals(3), nil, nil, units, time.Now())

	require.Contains(t, prompt, "- Preferred Units: miles for distance, lbs for weights.")
	require.Contains(t, prompt, "IMPORTANT: Use miles for all distances and lbs for all weights")
}

func TestBuildPlanPromptDatesFromCurrentDate(t *testing.T) {
	current := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)

	prompt := BuildPlanPrompt(testGoals(3), nil, nil, domain.DefaultUnits(), current)

	require.Contains(t, prompt, "Assign a date to every day, starting from 2025-06-02.")
}

func TestBuildPlanPromptStrengthStatsSection(t *testing.T) {
	stats := []domain.ExerciseStat{
		{ExerciseName: "Bench Press", OneRepMax: 133.3, MaxVolume: 1000, LastWeight: 100, LastReps: 10},
	}

	withStats := BuildPlanPrompt(testGoals(3), nil, stats, domain.DefaultUnits(), time.Now())
	require.Contains(t, withStats, "Strength Training Stats")
	require.Contains(t, withStats, "Bench Press: est. 1RM 133.3 kg")
	require.Contains(t, withStats, "reference the one-rep-max estimates above")

	withoutStats := BuildPlanPrompt(testGoals(3), nil, nil, domain.DefaultUnits(), time.Now())
	require.NotContains(t, withoutStats, "Strength Training Stats")
	require.NotContains(t, withoutStats, "one-rep-max estimates")
}

func TestBuildPlanPromptDeterministic(t *testing.T) {
	goals := testGoals(5)
	activities := []domain.ActivityRecord{{Name: "Ride", Type: "Ride", Distance: 20000, MovingTime: 3600}}
	current := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	first := BuildPlanPrompt(goals, activities, nil, domain.DefaultUnits(), current)
	second := BuildPlanPrompt(goals, activities, nil, domain.DefaultUnits(), current)

	require.Equal(t, first, second)
}

func TestBuildChatSystemPromptWithoutPlan(t *testing.T) {
	prompt := BuildChatSystemPrompt(testGoals(3), nil, nil, domain.DefaultUnits())

	require.Contains(t, prompt, "No plan yet.")
	require.Contains(t, prompt, "<REVISED_PLAN>")
	require.Contains(t, prompt, "Do not wrap the JSON in markdown code fences.")
}

func TestBuildChatSystemPromptEmbedsCurrentPlan(t *testing.T) {
	plan := &domain.WeeklyPlan{WeeklySummary: "Base week with two quality sessions."}

	prompt := BuildChatSystemPrompt(testGoals(3), nil, plan, domain.DefaultUnits())

	require.Contains(t, prompt, "Base week with two quality sessions.")
	require.False(t, strings.Contains(prompt, "No plan yet."))
}
