package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// RequestIDHeader carries a per-request trace identifier.
const RequestIDHeader = "X-Request-ID"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// NewJSONClient returns an HTTPClient bound to baseURL that sends and
// accepts JSON, enforces timeout on every request, and stamps each request
// with an X-Request-ID generated by ids unless the caller already set one.
func NewJSONClient(baseURL string, timeout time.Duration, ids *UUIDGenerator) *HTTPClient {
	c := NewHTTPClient()
	c.SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(RequestIDHeader) == "" {
				r.SetHeader(RequestIDHeader, ids.Generate())
			}
			return nil
		})

	return c
}
