package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlaceholderSentinel marks an endpoint URL that was never filled in.
const PlaceholderSentinel = "REPLACE_WITH_YOUR"

// Fetcher retrieves the spreadsheet dataset. It is implemented by *Client and
// can be faked in tests.
type Fetcher interface {
	FetchDataset(ctx context.Context) (Dataset, error)
	Endpoint() string
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the spreadsheet web API.
type Client struct {
	endpoint  string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "sheetdash/0.1"
	defaultTimeout   = 30 * time.Second
)

// NewClient builds a Client for the given endpoint URL. A zero timeout uses
// the default. Placeholder and empty URLs are accepted here and rejected on
// every fetch, so the dashboard can still start and report the problem.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed != "" && !IsPlaceholder(trimmed) {
		if err := validateURL(trimmed); err != nil {
			return nil, err
		}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: trimmed,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// IsPlaceholder reports whether endpoint still contains the placeholder sentinel.
func IsPlaceholder(endpoint string) bool {
	return strings.Contains(endpoint, PlaceholderSentinel)
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

// FetchDataset performs a single GET against the endpoint. A payload that is
// valid JSON but not a non-empty array returns an empty dataset and no error.
func (c *Client) FetchDataset(ctx context.Context) (Dataset, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.endpoint == "" || IsPlaceholder(c.endpoint) {
		return nil, &FetchError{Kind: KindConfiguration, URL: c.endpoint, Err: ErrNotConfigured}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: c.endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: c.endpoint, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: KindTransport, URL: c.endpoint, StatusCode: resp.StatusCode}
	}

	ds, err := decodeDataset(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindParse, URL: c.endpoint, Err: err}
	}
	return ds, nil
}

func validateURL(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse api_url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("parse api_url %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("parse api_url %q: missing host", endpoint)
	}
	return nil
}
