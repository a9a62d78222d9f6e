package domain

// DayType classifies a planned day. The model is asked to stick to these four
// values; rendering treats anything else as a generic cross-train day.
type DayType string

const (
	DayRest       DayType = "rest"
	DayRun        DayType = "run"
	DayStrength   DayType = "strength"
	DayCrossTrain DayType = "cross-train"
)

// Intensity is an open-ended label. The four values below are what the model
// is instructed to use, but unknown values must still render (with a neutral
// style), never fail.
type Intensity string

const (
	IntensityEasy     Intensity = "Easy"
	IntensityModerate Intensity = "Moderate"
	IntensityHard     Intensity = "Hard"
	IntensityMax      Intensity = "Max"
)

// Known reports whether the intensity is one of the instructed values.
func (i Intensity) Known() bool {
	switch i {
	case IntensityEasy, IntensityModerate, IntensityHard, IntensityMax:
		return true
	}
	return false
}

// PlanExercise is a structured strength prescription inside an activity.
// All fields are free text; the model is expected, not guaranteed, to fill
// them for strength days.
type PlanExercise struct {
	Name   string `json:"name"`
	Sets   string `json:"sets,omitempty"`
	Reps   string `json:"reps,omitempty"`
	Weight string `json:"weight,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// WorkoutActivity is one scheduled block within a day.
type WorkoutActivity struct {
	Name      string         `json:"name"`
	Duration  string         `json:"duration"` // free text: "45 mins", "10 km"
	Intensity Intensity      `json:"intensity"`
	Details   string         `json:"details"`
	Exercises []PlanExercise `json:"exercises,omitempty"`
}

// WorkoutDay is one calendar day of the weekly plan.
type WorkoutDay struct {
	DayNumber  int               `json:"dayNumber"`
	Date       string            `json:"date"` // calendar date string assigned by the model
	Title      string            `json:"title"`
	Type       DayType           `json:"type"`
	Activities []WorkoutActivity `json:"activities"`
	CoachTips  []string          `json:"coachTips"`
}

// WeeklyPlan is the full structured plan. Exactly one WeeklyPlan is current
// at a time; a new plan (initial or revised) fully replaces it.
type WeeklyPlan struct {
	WeeklySummary string       `json:"weeklySummary"`
	Days          []WorkoutDay `json:"days"`
}
