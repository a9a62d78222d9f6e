package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"alcyxob/gotrain/internal/config"
	"alcyxob/gotrain/internal/domain"
)

const (
	defaultStravaBaseURL  = "https://www.strava.com/api/v3"
	defaultStravaAuthURL  = "https://www.strava.com/oauth/authorize"
	defaultStravaTokenURL = "https://www.strava.com/oauth/token"

	// activityWindow is the fixed fetch window for recent activities.
	activityWindow = 7 * 24 * time.Hour
)

// StravaClient talks to the Strava REST API. It implements ActivitySource
// and TokenExchanger.
type StravaClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time
}

// NewStravaClient creates a Strava client from config. BaseURL overrides are
// used by tests pointing at a local server.
func NewStravaClient(cfg config.StravaConfig) *StravaClient {
	c := &StravaClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      cfg.BaseURL,
		authURL:      cfg.AuthURL,
		tokenURL:     cfg.TokenURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = defaultStravaBaseURL
	}
	if c.authURL == "" {
		c.authURL = defaultStravaAuthURL
	}
	if c.tokenURL == "" {
		c.tokenURL = defaultStravaTokenURL
	}
	return c
}

// AuthorizeURL builds the browser URL that starts the OAuth flow.
func (c *StravaClient) AuthorizeURL(redirectURI string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "read,activity:read_all")
	params.Set("approval_prompt", "auto")
	return c.authURL + "?" + params.Encode()
}

// tokenResponse is the provider's reply to both the exchange and refresh calls.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// ExchangeCode trades an OAuth authorization code for a credential triple.
func (c *StravaClient) ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error) {
	return c.tokenRequest(ctx, map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          code,
		"grant_type":    "authorization_code",
	})
}

// Refresh trades a refresh token for a fresh credential triple.
func (c *StravaClient) Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	return c.tokenRequest(ctx, map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"refresh_token": refreshToken,
		"grant_type":    "refresh_token",
	})
}

func (c *StravaClient) tokenRequest(ctx context.Context, payload map[string]string) (*domain.Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("strava token request failed: %s", resp.Status)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}

	return &domain.Credentials{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    tr.ExpiresAt,
	}, nil
}

// RecentActivities fetches the athlete's activities from the last 7 days.
func (c *StravaClient) RecentActivities(ctx context.Context, accessToken string) ([]domain.ActivityRecord, error) {
	after := c.now().Add(-activityWindow).Unix()
	endpoint := fmt.Sprintf("%s/athlete/activities?after=%d", c.baseURL, after)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("strava activities request failed: %s", resp.Status)
	}

	var activities []domain.ActivityRecord
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, err
	}
	return activities, nil
}
