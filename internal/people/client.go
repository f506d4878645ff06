package people

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNilClient is returned when a method is called on a nil *Client.
var ErrNilClient = errors.New("client is nil")

// Fetcher defines the interface for loading people from the demo API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]User, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the people listing endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	limit     int
}

const (
	// DefaultEndpoint is the public demo API the roster reads from.
	DefaultEndpoint  = "https://dummyjson.com/users"
	defaultUserAgent = "roster/0.1"
)

// Options tune the client. The zero value is valid.
type Options struct {
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// Limit asks the API for that many users. Zero leaves the API default.
	Limit int
	// HTTPClient replaces the default transport, mostly for tests.
	HTTPClient *http.Client
}

// NewClient builds a Client for the given endpoint URL.
func NewClient(endpoint string, opts Options) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	limit := opts.Limit
	if limit < 0 {
		limit = 0
	}
	return &Client{
		endpoint:  u,
		http:      httpClient,
		userAgent: defaultUserAgent,
		limit:     limit,
	}, nil
}

// Endpoint returns the resolved endpoint URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// FetchUsers retrieves the people listing.
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	reqURL := *c.endpoint
	if c.limit > 0 {
		values := reqURL.Query()
		values.Set("limit", strconv.Itoa(c.limit))
		reqURL.RawQuery = values.Encode()
	}
	var payload UserListResponse
	if err := c.doURL(ctx, http.MethodGet, &reqURL, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

func (c *Client) doURL(ctx context.Context, method string, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
