package service

import (
	"context"
	"errors"
	"log"

	"alcyxob/gotrain/internal/domain"
	"alcyxob/gotrain/internal/planner"
	"alcyxob/gotrain/internal/repository"
)

// PlanSnapshot is the current plan in both forms. Plan is nil when the raw
// text does not decode; rendering then falls back to the literal text.
type PlanSnapshot struct {
	RawText string             `json:"rawText"`
	Plan    *domain.WeeklyPlan `json:"plan,omitempty"`
}

// PlanStore owns the single current weekly plan. Only the raw text is
// persisted; the structured form is re-derived by parsing on every read.
// Writers are the initial-generation and revision paths in the coach
// service; Set fully replaces the previous value.
type PlanStore struct {
	repo repository.SessionRepository
}

// NewPlanStore creates a PlanStore on top of the session repository.
func NewPlanStore(repo repository.SessionRepository) *PlanStore {
	return &PlanStore{repo: repo}
}

// Get returns the current plan, or (nil, nil) when no plan has been stored.
func (s *PlanStore) Get(ctx context.Context) (*PlanSnapshot, error) {
	raw, err := s.repo.GetPlanText(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	snapshot := &PlanSnapshot{RawText: raw}
	plan, err := planner.ParsePlan(raw)
	if err != nil {
		// Degraded but usable: callers show the raw text instead.
		log.Printf("WARN: Stored plan text does not parse, serving raw form: %v", err)
		return snapshot, nil
	}
	snapshot.Plan = plan
	return snapshot, nil
}

// Set replaces the current plan with the given raw text.
func (s *PlanStore) Set(ctx context.Context, raw string) error {
	return s.repo.SavePlanText(ctx, raw)
}

// Clear removes the current plan together with the rest of the
// connected-account session (transcript, cached activities, credentials).
// All of that context is scoped to one connected account.
func (s *PlanStore) Clear(ctx context.Context) error {
	return s.repo.ClearSession(ctx)
}
