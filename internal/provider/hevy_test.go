package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alcyxob/gotrain/internal/config"

	"github.com/stretchr/testify/require"
)

// decodeJSONBody is a tiny test helper for inspecting request payloads.
func decodeJSONBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func TestHevyConfigured(t *testing.T) {
	require.False(t, NewHevyClient(config.HevyConfig{}).Configured())
	require.True(t, NewHevyClient(config.HevyConfig{APIKey: "k"}).Configured())
}

func TestHevySessions(t *testing.T) {
	var gotKey string
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		gotQuery = r.URL.RawQuery
		require.Equal(t, "/v1/workouts", r.URL.Path)
		w.Write([]byte(`{"workouts":[{"id":"w1","title":"Push Day","exercises":[{"exercise_title":"Bench Press","sets":[{"index":0,"weight_kg":100,"reps":10}]}]}]}`))
	}))
	defer server.Close()

	client := NewHevyClient(config.HevyConfig{APIKey: "the-key", BaseURL: server.URL})

	sessions, err := client.Sessions(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "Push Day", sessions[0].Title)
	require.Len(t, sessions[0].Exercises, 1)
	require.Equal(t, "Bench Press", sessions[0].Exercises[0].Title)
	require.InDelta(t, 100, sessions[0].Exercises[0].Sets[0].WeightKg, 0.001)

	require.Equal(t, "the-key", gotKey)
	require.Equal(t, "page=1&pageSize=5", gotQuery)
}

func TestHevySessionsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewHevyClient(config.HevyConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := client.Sessions(context.Background(), 1, 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "hevy API error")
}
