package service

import (
	"context"
	"errors"
	"log"
	"time"

	"alcyxob/gotrain/internal/provider"
	"alcyxob/gotrain/internal/repository"
)

// tokenExpiryMargin: a token this close to expiry is refreshed proactively
// instead of being used for one last call.
const tokenExpiryMargin = 60 * time.Second

// TokenManager turns the stored credential triple into a usable bearer token,
// refreshing transparently. It never propagates raw refresh failures: a
// credential that cannot be refreshed forces the disconnected state and
// surfaces as ErrNotConnected, prompting the user to reconnect.
type TokenManager struct {
	repo      repository.SessionRepository
	exchanger provider.TokenExchanger
	now       func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(repo repository.SessionRepository, exchanger provider.TokenExchanger) *TokenManager {
	return &TokenManager{repo: repo, exchanger: exchanger, now: time.Now}
}

// ValidToken returns a bearer token that is good for at least the expiry
// margin, refreshing and re-persisting the triple when needed.
func (m *TokenManager) ValidToken(ctx context.Context) (string, error) {
	creds, err := m.repo.GetCredentials(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotConnected
		}
		return "", err
	}

	expiresAt := time.Unix(creds.ExpiresAt, 0)
	if m.now().Before(expiresAt.Add(-tokenExpiryMargin)) {
		return creds.AccessToken, nil
	}

	refreshed, err := m.exchanger.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		log.Printf("ERROR: Failed to refresh provider token: %v", err)
		// Refresh is impossible; drop the session so the user reconnects.
		if clearErr := m.repo.ClearSession(ctx); clearErr != nil {
			log.Printf("ERROR: Failed to clear session after refresh failure: %v", clearErr)
		}
		return "", ErrNotConnected
	}

	if err := m.repo.SaveCredentials(ctx, *refreshed); err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}
