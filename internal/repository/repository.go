package repository

import (
	"alcyxob/gotrain/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound    = RepositoryError("not found")
	ErrSaveFailed  = RepositoryError("save failed")
	ErrClearFailed = RepositoryError("clear failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SessionRepository persists the single connected-account session: goals,
// unit preferences, the provider credential triple, the cached activity list,
// the current plan in raw text form, and the chat transcript.
//
// The plan is stored as raw text only; the structured form is always
// re-derived by parsing on load. Getters return ErrNotFound when the key was
// never written (list getters return an empty slice instead).
type SessionRepository interface {
	GetGoals(ctx context.Context) (*domain.UserGoals, error)
	SaveGoals(ctx context.Context, goals domain.UserGoals) error

	GetUnits(ctx context.Context) (*domain.Units, error)
	SaveUnits(ctx context.Context, units domain.Units) error

	// Credentials are sealed before they reach the backing store.
	GetCredentials(ctx context.Context) (*domain.Credentials, error)
	SaveCredentials(ctx context.Context, creds domain.Credentials) error
	DeleteCredentials(ctx context.Context) error

	GetActivities(ctx context.Context) ([]domain.ActivityRecord, error)
	SaveActivities(ctx context.Context, activities []domain.ActivityRecord) error

	GetPlanText(ctx context.Context) (string, error)
	SavePlanText(ctx context.Context, raw string) error
	DeletePlanText(ctx context.Context) error

	GetTranscript(ctx context.Context) ([]domain.ChatMessage, error)
	AppendMessage(ctx context.Context, msg domain.ChatMessage) error

	// ClearSession removes everything scoped to the connected account:
	// credentials, cached activities, current plan, chat transcript.
	// Goals and units survive; their lifetime is "until explicit reset".
	ClearSession(ctx context.Context) error

	// ClearAll additionally removes goals and units.
	ClearAll(ctx context.Context) error
}
