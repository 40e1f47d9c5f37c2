package api

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout        time.Duration
	userAgent      string
	httpClient     *http.Client
	onUnauthorized func()
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:   defaultTimeout,
		userAgent: "clapper/1.0",
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUnauthorizedHook sets the callback invoked when a request comes back
// 401 on a non-exempt endpoint.
func WithUnauthorizedHook(hook func()) Option {
	return func(o *clientOptions) {
		o.onUnauthorized = hook
	}
}
