package domain

import "encoding/json"

// FitnessLevel type for the user's self-reported experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// UserGoals holds the training goals the user fills in before generating a plan.
// PreferredActivities is never empty; ToggleActivity enforces that.
type UserGoals struct {
	MainGoal            string       `bson:"mainGoal" json:"mainGoal"`
	DaysPerWeek         int          `bson:"daysPerWeek" json:"daysPerWeek"`
	FitnessLevel        FitnessLevel `bson:"fitnessLevel" json:"fitnessLevel"`
	PreferredActivities []string     `bson:"preferredActivities" json:"preferredActivities"`
	Considerations      string       `bson:"considerations,omitempty" json:"considerations,omitempty"`
}

// DefaultGoals returns the goals a fresh session starts from.
func DefaultGoals() UserGoals {
	return UserGoals{
		DaysPerWeek:         3,
		FitnessLevel:        LevelIntermediate,
		PreferredActivities: []string{"running"},
	}
}

// storedGoals mirrors UserGoals plus the legacy singular activity field that
// older saves may still carry.
type storedGoals struct {
	MainGoal            string       `json:"mainGoal"`
	DaysPerWeek         int          `json:"daysPerWeek"`
	FitnessLevel        FitnessLevel `json:"fitnessLevel"`
	PreferredActivity   string       `json:"preferredActivity,omitempty"`
	PreferredActivities []string     `json:"preferredActivities,omitempty"`
	Considerations      string       `json:"considerations,omitempty"`
}

// DecodeGoals parses a persisted goals payload into canonical form.
// Saves written before the multi-select UI carried a single "preferredActivity"
// string; that value becomes the sole element of PreferredActivities and the
// legacy field is dropped.
func DecodeGoals(data []byte) (*UserGoals, error) {
	var raw storedGoals
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	goals := UserGoals{
		MainGoal:            raw.MainGoal,
		DaysPerWeek:         raw.DaysPerWeek,
		FitnessLevel:        raw.FitnessLevel,
		PreferredActivities: raw.PreferredActivities,
		Considerations:      raw.Considerations,
	}

	if len(goals.PreferredActivities) == 0 && raw.PreferredActivity != "" {
		goals.PreferredActivities = []string{raw.PreferredActivity}
	}

	return &goals, nil
}

// ToggleActivity returns a copy of goals with the given tag added if absent or
// removed if present. Removing the last remaining tag is refused: the tag is
// restored as the sole element so the set never goes empty.
func ToggleActivity(goals UserGoals, tag string) UserGoals {
	updated := make([]string, 0, len(goals.PreferredActivities)+1)
	found := false
	for _, a := range goals.PreferredActivities {
		if a == tag {
			found = true
			continue
		}
		updated = append(updated, a)
	}
	if !found {
		updated = append(updated, tag)
	}
	if len(updated) == 0 {
		updated = []string{tag}
	}

	goals.PreferredActivities = updated
	return goals
}

// HasActivity reports whether the tag is currently selected.
func (g UserGoals) HasActivity(tag string) bool {
	for _, a := range g.PreferredActivities {
		if a == tag {
			return true
		}
	}
	return false
}

// Units holds the user's display/prompt unit preferences.
type Units struct {
	Distance string `bson:"distance" json:"distance"` // "kilometers" or "miles"
	Weight   string `bson:"weight" json:"weight"`     // "kg" or "lbs"
}

// DefaultUnits returns the metric defaults used until the user picks otherwise.
func DefaultUnits() Units {
	return Units{Distance: "kilometers", Weight: "kg"}
}
