package planner

import (
	"encoding/json"
	"errors"
	"fmt"

	"alcyxob/gotrain/internal/domain"
)

// ErrMalformedPlan tags a model response that does not decode into the
// weekly-plan shape. Callers degrade to showing the raw text; they never
// treat this as fatal.
var ErrMalformedPlan = errors.New("malformed weekly plan")

// ParsePlan decodes raw model output into a WeeklyPlan. The decode is purely
// structural: field values are returned as-is, with no repair or semantic
// checks (day count, date contiguity). On failure the error wraps
// ErrMalformedPlan so callers can branch with errors.Is.
func ParsePlan(raw string) (*domain.WeeklyPlan, error) {
	var plan domain.WeeklyPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	return &plan, nil
}
