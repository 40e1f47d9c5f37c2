package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing URL", func(t *testing.T) {
		_, err := NewClient("", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:7033/api/", logger)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:7033/api", client.baseURL)
	})

	t.Run("options", func(t *testing.T) {
		custom := &http.Client{Timeout: 3 * time.Second}
		client, err := NewClient("http://localhost:7033", logger,
			WithHTTPClient(custom),
			WithUserAgent("test/1.0"),
		)
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
		assert.Equal(t, "test/1.0", client.userAgent)
	})
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Banner{})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	// Anonymous: no header.
	_, err = client.GetBanners(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	// Authenticated: bearer token attached.
	client.SetToken("tok-123")
	_, err = client.GetBanners(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	// Cleared again.
	client.ClearToken()
	_, err = client.GetBanners(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedTeardown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode("token expired")
	}))
	defer server.Close()

	newClient := func(t *testing.T, hookCount *int) *Client {
		t.Helper()
		client, err := NewClient(server.URL, zerolog.Nop(),
			WithUnauthorizedHook(func() { *hookCount++ }),
		)
		require.NoError(t, err)
		return client
	}

	ctx := context.Background()

	t.Run("plain endpoint triggers teardown", func(t *testing.T) {
		var hooks int
		client := newClient(t, &hooks)
		_, err := client.GetFavoriteIDs(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, hooks)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsUnauthorized())
	})

	t.Run("login endpoint is exempt", func(t *testing.T) {
		var hooks int
		client := newClient(t, &hooks)
		_, err := client.Login(ctx, Credentials{Username: "alice"})
		require.Error(t, err)
		assert.Zero(t, hooks)
	})

	t.Run("playback endpoint is exempt", func(t *testing.T) {
		var hooks int
		client := newClient(t, &hooks)
		_, err := client.GetPlayData(ctx, 5)
		require.Error(t, err)
		assert.Zero(t, hooks)
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		validation bool
		server     bool
	}{
		{
			name:       "json string body",
			status:     400,
			body:       `"wrong password"`,
			wantMsg:    "wrong password",
			validation: true,
		},
		{
			name:       "message object body",
			status:     422,
			body:       `{"message":"username taken"}`,
			wantMsg:    "username taken",
			validation: true,
		},
		{
			name:       "plain text body",
			status:     403,
			body:       "VIP required",
			wantMsg:    "VIP required",
			validation: true,
		},
		{
			name:    "empty body falls back to status text",
			status:  500,
			body:    "",
			wantMsg: "Internal Server Error",
			server:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(server.URL, zerolog.Nop())
			require.NoError(t, err)

			_, err = client.GetBanners(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.validation, apiErr.IsValidation())
			assert.Equal(t, tt.server, apiErr.IsServerError())
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	// Point at a server that is immediately closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetBanners(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(MoviesPage{})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.ListMovies(context.Background(), MovieQuery{
		SortBy:    "published_at",
		Genre:     "Action",
		PageIndex: 2,
		PageSize:  18,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"published_at"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"Action"}, gotQuery["genre"])
	assert.Equal(t, []string{"2"}, gotQuery["pageIndex"])
	assert.Equal(t, []string{"18"}, gotQuery["pageSize"])
	assert.NotContains(t, gotQuery, "region")
	assert.NotContains(t, gotQuery, "monetizationType")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad input", ErrorMessage(&APIError{StatusCode: 400, Message: "bad input"}, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(assert.AnError, "fallback"))
}
