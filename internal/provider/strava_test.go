package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"alcyxob/gotrain/internal/config"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	client := NewStravaClient(config.StravaConfig{ClientID: "12345"})

	raw := client.AuthorizeURL("http://localhost:3000/callback")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "www.strava.com", parsed.Host)
	require.Equal(t, "/oauth/authorize", parsed.Path)

	q := parsed.Query()
	require.Equal(t, "12345", q.Get("client_id"))
	require.Equal(t, "http://localhost:3000/callback", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "read,activity:read_all", q.Get("scope"))
	require.Equal(t, "auto", q.Get("approval_prompt"))
}

func TestExchangeCode(t *testing.T) {
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, decodeJSONBody(r, &gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1750000000}`))
	}))
	defer server.Close()

	client := NewStravaClient(config.StravaConfig{
		ClientID:     "12345",
		ClientSecret: "sekrit",
		TokenURL:     server.URL,
	})

	creds, err := client.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "at", creds.AccessToken)
	require.Equal(t, "rt", creds.RefreshToken)
	require.Equal(t, int64(1750000000), creds.ExpiresAt)

	require.Equal(t, "the-code", gotPayload["code"])
	require.Equal(t, "authorization_code", gotPayload["grant_type"])
	require.Equal(t, "sekrit", gotPayload["client_secret"])
}

func TestRefreshSendsRefreshGrant(t *testing.T) {
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, decodeJSONBody(r, &gotPayload))
		w.Write([]byte(`{"access_token":"new","refresh_token":"rt2","expires_at":1750000000}`))
	}))
	defer server.Close()

	client := NewStravaClient(config.StravaConfig{TokenURL: server.URL})

	creds, err := client.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	require.Equal(t, "new", creds.AccessToken)
	require.Equal(t, "refresh_token", gotPayload["grant_type"])
	require.Equal(t, "old-refresh", gotPayload["refresh_token"])
}

func TestRecentActivitiesWindowAndAuth(t *testing.T) {
	fixedNow := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)

	var gotAuth string
	var gotAfter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAfter = r.URL.Query().Get("after")
		w.Write([]byte(`[{"id":1,"name":"Morning Run","type":"Run","distance":8012.3,"moving_time":2400}]`))
	}))
	defer server.Close()

	client := NewStravaClient(config.StravaConfig{BaseURL: server.URL})
	client.now = func() time.Time { return fixedNow }

	activities, err := client.RecentActivities(context.Background(), "bearer-token")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, "Morning Run", activities[0].Name)
	require.InDelta(t, 8012.3, activities[0].Distance, 0.001)

	require.Equal(t, "Bearer bearer-token", gotAuth)

	after, err := strconv.ParseInt(gotAfter, 10, 64)
	require.NoError(t, err)
	require.Equal(t, fixedNow.Add(-7*24*time.Hour).Unix(), after)
}

func TestRecentActivitiesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewStravaClient(config.StravaConfig{BaseURL: server.URL})

	_, err := client.RecentActivities(context.Background(), "stale")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}
