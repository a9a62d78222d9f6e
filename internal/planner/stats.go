package planner

import "alcyxob/gotrain/internal/domain"

// AggregateExerciseStats folds every set of every supplied strength session
// into one ExerciseStat per distinct exercise name, keeping the best Epley
// one-rep-max estimate and the best single-set volume seen anywhere in the
// input. Output order is first-encounter order. Pure function: identical
// input always yields identical output, empty input yields an empty slice.
func AggregateExerciseStats(sessions []domain.StrengthSession) []domain.ExerciseStat {
	byName := make(map[string]*domain.ExerciseStat)
	order := make([]string, 0, len(sessions))

	for _, session := range sessions {
		for _, exercise := range session.Exercises {
			name := exercise.Title
			stat, ok := byName[name]
			if !ok {
				stat = &domain.ExerciseStat{ExerciseName: name}
				byName[name] = stat
				order = append(order, name)
			}

			for _, set := range exercise.Sets {
				oneRM := EstimateOneRepMax(set.WeightKg, set.Reps)
				if oneRM > stat.OneRepMax {
					stat.OneRepMax = oneRM
				}

				volume := set.WeightKg * float64(set.Reps)
				if volume > stat.MaxVolume {
					stat.MaxVolume = volume
				}

				// The first set of a group (index 0) is taken as the reference
				// for "last" weight/reps. Not a chronological computation.
				if set.Index == 0 {
					stat.LastWeight = set.WeightKg
					stat.LastReps = set.Reps
				}
			}
		}
	}

	stats := make([]domain.ExerciseStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, *byName[name])
	}
	return stats
}

// EstimateOneRepMax applies the Epley formula: weight * (1 + reps/30).
func EstimateOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}
