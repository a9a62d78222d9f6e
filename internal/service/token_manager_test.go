package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/gotrain/internal/domain"

	"github.com/stretchr/testify/require"
)

var tokenTestNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestTokenManager(repo *stubRepo, oauth *stubOAuth) *TokenManager {
	tm := NewTokenManager(repo, oauth)
	tm.now = func() time.Time { return tokenTestNow }
	return tm
}

func TestValidTokenFreshTokenUsedDirectly(t *testing.T) {
	repo := &stubRepo{creds: &domain.Credentials{
		AccessToken:  "fresh",
		RefreshToken: "refresh",
		ExpiresAt:    tokenTestNow.Add(time.Hour).Unix(),
	}}
	// A refresh attempt would fail; it must not happen.
	tm := newTestTokenManager(repo, &stubOAuth{refreshErr: errors.New("must not be called")})

	token, err := tm.ValidToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh", token)
}

func TestValidTokenRefreshesExpiredToken(t *testing.T) {
	repo := &stubRepo{creds: &domain.Credentials{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresAt:    tokenTestNow.Add(-time.Hour).Unix(),
	}}
	renewed := &domain.Credentials{
		AccessToken:  "renewed",
		RefreshToken: "refresh2",
		ExpiresAt:    tokenTestNow.Add(6 * time.Hour).Unix(),
	}
	tm := newTestTokenManager(repo, &stubOAuth{creds: renewed})

	token, err := tm.ValidToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "renewed", token)

	// The renewed triple is persisted.
	require.Equal(t, "refresh2", repo.creds.RefreshToken)
}

func TestValidTokenRefreshesInsideExpiryMargin(t *testing.T) {
	// Expires in 30s, inside the 60s margin: treated as stale.
	repo := &stubRepo{creds: &domain.Credentials{
		AccessToken:  "nearly-stale",
		RefreshToken: "refresh",
		ExpiresAt:    tokenTestNow.Add(30 * time.Second).Unix(),
	}}
	renewed := &domain.Credentials{AccessToken: "renewed", RefreshToken: "refresh2", ExpiresAt: tokenTestNow.Add(6 * time.Hour).Unix()}
	tm := newTestTokenManager(repo, &stubOAuth{creds: renewed})

	token, err := tm.ValidToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "renewed", token)
}

func TestValidTokenRefreshFailureForcesDisconnect(t *testing.T) {
	stored := validPlanJSON
	repo := &stubRepo{
		creds: &domain.Credentials{
			AccessToken:  "stale",
			RefreshToken: "revoked",
			ExpiresAt:    tokenTestNow.Add(-time.Hour).Unix(),
		},
		planText: &stored,
	}
	tm := newTestTokenManager(repo, &stubOAuth{refreshErr: errors.New("invalid refresh token")})

	_, err := tm.ValidToken(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)

	// The dead session is dropped so the user reconnects cleanly.
	require.Equal(t, 1, repo.clearSessionCalls)
	require.Nil(t, repo.creds)
}

func TestValidTokenNotConnected(t *testing.T) {
	tm := newTestTokenManager(&stubRepo{}, &stubOAuth{})

	_, err := tm.ValidToken(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
}
