package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const loginEndpoint = "/auth/login"

// Client is the authenticated gateway to the streaming service API.
// All store packages talk to the backend through it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string

	mu    sync.RWMutex
	token string

	// Called when a request comes back 401, except for the login and
	// playback endpoints which handle auth failures themselves.
	onUnauthorized func()
}

// NewClient creates a new API client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API URL is required", ErrInvalidConfig)
	}

	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimRight(baseURL, "/")

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		logger:         logger,
		userAgent:      options.userAgent,
		onUnauthorized: options.onUnauthorized,
	}, nil
}

// SetToken installs the bearer credential attached to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently held bearer credential, or "" when anonymous.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetUnauthorizedHook registers the session-teardown callback invoked on 401
// responses. Wired after construction because the session store itself
// depends on the client.
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.mu.Lock()
	c.onUnauthorized = hook
	c.mu.Unlock()
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("url", reqURL).Msg("Request failed")
		return nil, fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body, resp.StatusCode),
			Body:       string(body),
		}

		if apiErr.IsUnauthorized() && !exemptFromTeardown(endpoint) {
			c.mu.RLock()
			hook := c.onUnauthorized
			c.mu.RUnlock()
			if hook != nil {
				hook()
			}
		}

		return nil, apiErr
	}

	return body, nil
}

// exemptFromTeardown reports whether a 401 on this endpoint must not tear
// down the session: an expired login attempt and gated playback data are
// expected to fail for reasons the caller handles itself.
func exemptFromTeardown(endpoint string) bool {
	return endpoint == loginEndpoint || strings.Contains(endpoint, "/play")
}

// get performs a GET request and decodes the JSON response into dest
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dest any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// post performs a POST request and decodes the JSON response into dest
func (c *Client) post(ctx context.Context, endpoint string, payload, dest any) error {
	body, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// del performs a DELETE request
func (c *Client) del(ctx context.Context, endpoint string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
	return err
}

// extractMessage pulls a user-displayable message out of an error response.
// The backend returns either a bare JSON string or an object with a
// "message" field; anything else falls back to the raw body or status text.
func extractMessage(body []byte, statusCode int) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(statusCode)
	}

	var str string
	if err := json.Unmarshal(body, &str); err == nil && str != "" {
		return str
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}

	return trimmed
}

// defaultTimeout matches the backend's own request deadline.
const defaultTimeout = 10 * time.Second
