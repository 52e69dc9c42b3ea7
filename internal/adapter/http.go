package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amishk599/jobmerge/internal/model"
)

const (
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent identifies this aggregator to the upstream hosts.
	DefaultUserAgent = "jobs-aggregator/1.0"
)

// Ensure HTTPFetcher implements model.DocumentFetcher.
var _ model.DocumentFetcher = (*HTTPFetcher)(nil)

// HTTPFetcher retrieves raw document text. It makes exactly one attempt per
// call; failures surface as *model.FetchError.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewHTTPFetcher returns a fetcher that abandons a request after timeout and
// sends userAgent on every request. Zero values fall back to the defaults.
func NewHTTPFetcher(client *http.Client, timeout time.Duration, userAgent string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    client,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Fetch GETs url and returns the response body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}
	return string(body), nil
}
