package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"alcyxob/gotrain/internal/config"
	"alcyxob/gotrain/internal/domain"
)

const defaultHevyBaseURL = "https://api.hevyapp.com"

// HevyClient fetches recorded strength sessions from the Hevy API.
// It implements StrengthSource.
type HevyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewHevyClient creates a Hevy client from config.
func NewHevyClient(cfg config.HevyConfig) *HevyClient {
	c := &HevyClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if c.baseURL == "" {
		c.baseURL = defaultHevyBaseURL
	}
	return c
}

// Configured reports whether an API key is present. The strength source is
// optional; an unconfigured client simply contributes no stats.
func (c *HevyClient) Configured() bool {
	return c.apiKey != ""
}

// workoutsEnvelope is the list wrapper Hevy returns.
type workoutsEnvelope struct {
	Workouts []domain.StrengthSession `json:"workouts"`
}

// Sessions fetches one page of recorded workouts.
func (c *HevyClient) Sessions(ctx context.Context, page, pageSize int) ([]domain.StrengthSession, error) {
	endpoint := fmt.Sprintf("%s/v1/workouts?page=%d&pageSize=%d", c.baseURL, page, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hevy API error: %s", resp.Status)
	}

	var envelope workoutsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Workouts, nil
}
