package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"alcyxob/gotrain/internal/domain"
)

// GenerationSystemPrompt is sent as the system message of the initial
// plan-generation call.
const GenerationSystemPrompt = "You are a professional fitness coach assistant. " +
	"You provide personalized, safe, and effective workout suggestions. " +
	"You always respond in valid JSON format according to the requested schema."

// planSchema is the JSON shape the model is instructed to return. Kept as a
// literal so the instruction text and the parser stay in sync by eyeball.
const planSchema = `{
  "weeklySummary": "Short overview of the week's focus and total volume",
  "days": [
    {
      "dayNumber": 1,
      "date": "YYYY-MM-DD",
      "title": "Day Title (e.g. Endurance Run, Strength Training)",
      "type": "rest | run | strength | cross-train",
      "activities": [
        {
          "name": "Activity Name",
          "duration": "Duration in mins or kms",
          "intensity": "Easy | Moderate | Hard | Max",
          "details": "Specifics like pace or focus",
          "exercises": [
            {"name": "Exercise Name", "sets": "3", "reps": "8-10", "weight": "60 kg", "notes": "optional cue"}
          ]
        }
      ],
      "coachTips": ["Tip 1", "Tip 2"]
    }
  ]
}`

// BuildPlanPrompt renders the deterministic user prompt for the initial
// full-plan generation call. It only formats text; submitting it to the model
// is the caller's job.
func BuildPlanPrompt(
	goals domain.UserGoals,
	activities []domain.ActivityRecord,
	stats []domain.ExerciseStat,
	units domain.Units,
	currentDate time.Time,
) string {
	var b strings.Builder

	b.WriteString("User Goals:\n")
	fmt.Fprintf(&b, "- Main Goal: %s\n", goals.MainGoal)
	fmt.Fprintf(&b, "- Availability: %d days/week\n", goals.DaysPerWeek)
	fmt.Fprintf(&b, "- Level: %s\n", goals.FitnessLevel)
	fmt.Fprintf(&b, "- Preference: %s\n", strings.Join(goals.PreferredActivities, ", "))
	if goals.Considerations != "" {
		fmt.Fprintf(&b, "- Special Considerations/Injuries: %s\n", goals.Considerations)
	}
	fmt.Fprintf(&b, "- Preferred Units: %s for distance, %s for weights.\n", units.Distance, units.Weight)

	b.WriteString("\nRecent Workouts (Last 7 days):\n")
	if len(activities) == 0 {
		// Stated explicitly so the model does not assume more data exists.
		b.WriteString("No recent activities found.\n")
	} else {
		for _, a := range activities {
			fmt.Fprintf(&b, "- %s: %s, %dkm, %d mins\n",
				a.Name, a.Type,
				int(math.Round(a.Distance/1000)),
				int(math.Round(float64(a.MovingTime)/60)))
		}
	}

	if len(stats) > 0 {
		b.WriteString("\nStrength Training Stats (estimated one-rep-max and best volume per exercise):\n")
		for _, s := range stats {
			fmt.Fprintf(&b, "- %s: est. 1RM %.1f kg, max volume %.0f kg, last set %.1f kg x %d\n",
				s.ExerciseName, s.OneRepMax, s.MaxVolume, s.LastWeight, s.LastReps)
		}
	}

	b.WriteString("\nAs a professional fitness coach, generate a highly structured weekly workout plan in JSON format.\n")
	b.WriteString("\nThe JSON should follow this structure:\n")
	b.WriteString(planSchema)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Ensure the plan strictly follows the user's availability of %d days/week. For other days, mark them as \"rest\".\n", goals.DaysPerWeek)
	fmt.Fprintf(&b, "Assign a date to every day, starting from %s.\n", currentDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "IMPORTANT: Use %s for all distances and %s for all weights (if any) in the plan.\n", units.Distance, units.Weight)
	b.WriteString("Put structured strength work (sets/reps/weight) in the \"exercises\" field of the activity, not in freeform text.\n")
	if len(stats) > 0 {
		b.WriteString("When prescribing weights for strength days, reference the one-rep-max estimates above.\n")
	}

	return b.String()
}

// BuildChatSystemPrompt renders the system message for the conversational
// revision loop: the coach persona, current context, and the delimiter
// contract for plan replacements.
func BuildChatSystemPrompt(
	goals domain.UserGoals,
	activities []domain.ActivityRecord,
	currentPlan *domain.WeeklyPlan,
	units domain.Units,
) string {
	var b strings.Builder

	b.WriteString("You are GoTrain AI Coach.\n")
	fmt.Fprintf(&b, "User Goals: %s, %s, %d days/week, focuses: %s.\n",
		goals.MainGoal, goals.FitnessLevel, goals.DaysPerWeek,
		strings.Join(goals.PreferredActivities, ", "))
	if goals.Considerations != "" {
		fmt.Fprintf(&b, "Considerations: %s\n", goals.Considerations)
	}
	fmt.Fprintf(&b, "Units: %s for distance, %s for weights.\n", units.Distance, units.Weight)

	b.WriteString("\nCurrent Workout Plan:\n")
	if currentPlan != nil {
		if encoded, err := json.Marshal(currentPlan); err == nil {
			b.Write(encoded)
			b.WriteString("\n")
		} else {
			b.WriteString("No plan yet.\n")
		}
	} else {
		b.WriteString("No plan yet.\n")
	}

	b.WriteString("\nRecent Activities:\n")
	digests := make([]string, 0, len(activities))
	for _, a := range activities {
		digests = append(digests, fmt.Sprintf("%s (%dkm)", a.Name, int(math.Round(a.Distance/1000))))
	}
	b.WriteString(strings.Join(digests, ", "))
	b.WriteString("\n")

	b.WriteString(`
INSTRUCTIONS:
1. Answer fitness questions accurately and encouragingly.
2. If the user asks to EDIT or CHANGE the plan (e.g., "add yoga", "swap day 2", "make it harder"):
   - You MUST provide a COMPLETELY REVISED JSON plan covering all 7 days.
   - Wrap the JSON in a special tag: <REVISED_PLAN>...</REVISED_PLAN>.
   - Do not wrap the JSON in markdown code fences.
   - Ensure the JSON follows the exact schema from before.
3. Keep responses concise and professional.
`)

	return b.String()
}
