package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alcyxob/gotrain/internal/config"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o"
)

// OpenAIClient calls the chat-completions endpoint. It implements Completer.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a completion client from config.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	if c.model == "" {
		c.model = defaultOpenAIModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultOpenAIBaseURL
	}
	return c
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the message history and returns the raw completion text.
// With jsonMode set, the provider is asked for a JSON object response (used
// for the initial plan generation, where the whole reply must be a plan).
// Provider-supplied error messages are surfaced verbatim.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	reqBody := completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding completion response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if cr.Error != nil && cr.Error.Message != "" {
			return "", errors.New(cr.Error.Message)
		}
		return "", fmt.Errorf("completion request failed: %s", resp.Status)
	}

	if len(cr.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
