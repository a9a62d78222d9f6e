package domain

import "time"

// StrengthSession is one recorded gym workout from the strength-history
// provider, containing exercises which in turn contain sets.
type StrengthSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Exercises []ExerciseSet `json:"exercises"`
}

// ExerciseSet groups the sets performed for one exercise within a session.
type ExerciseSet struct {
	ID    string        `json:"id"`
	Title string        `json:"exercise_title"`
	Notes string        `json:"notes"`
	Sets  []StrengthSet `json:"sets"`
}

// StrengthSet is a single set. Weight is in kilograms as delivered by the
// provider; distance/duration/effort are only present for the relevant
// exercise kinds.
type StrengthSet struct {
	ID              string   `json:"id"`
	Index           int      `json:"index"`
	WeightKg        float64  `json:"weight_kg"`
	Reps            int      `json:"reps"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	RPE             *float64 `json:"rpe,omitempty"`
}

// ExerciseStat is the per-exercise summary derived from strength sessions.
// It is recomputed from scratch on every aggregation, never persisted.
type ExerciseStat struct {
	ExerciseName string  `json:"exerciseName"`
	OneRepMax    float64 `json:"oneRepMax"` // Epley estimate, best across all supplied sets
	MaxVolume    float64 `json:"maxVolume"` // weight*reps, best across all supplied sets
	LastWeight   float64 `json:"lastWeight"`
	LastReps     int     `json:"lastReps"`
}
