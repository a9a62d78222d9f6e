package provider

import (
	"context"
	"errors"

	"alcyxob/gotrain/internal/domain"
)

// Error definitions shared by the provider clients.
var (
	// ErrProviderUnavailable wraps transport-level failures talking to an
	// upstream API.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ActivitySource fetches recent endurance activities for a bearer token.
// The 7-day window lives here; callers just ask for "recent".
type ActivitySource interface {
	RecentActivities(ctx context.Context, accessToken string) ([]domain.ActivityRecord, error)
}

// TokenExchanger performs the OAuth code exchange and refresh flows against
// the activity provider.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error)
}

// OAuthProvider is the full connection surface of the activity provider:
// building the browser authorize URL plus the token flows.
type OAuthProvider interface {
	AuthorizeURL(redirectURI string) string
	TokenExchanger
}

// StrengthSource fetches recorded strength sessions. Pagination is this
// collaborator's concern; the core only consumes whatever window it returns.
type StrengthSource interface {
	Sessions(ctx context.Context, page, pageSize int) ([]domain.StrengthSession, error)
}

// Message is one turn handed to the completion provider.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Completer produces a text completion for a message history. Its output is
// untrusted text: the core always runs it through the plan parser before any
// of it reaches persistent state.
type Completer interface {
	Complete(ctx context.Context, messages []Message, jsonMode bool) (string, error)
}
