package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	UserAgent = "ufc-events/1.0 (github.com/pfrederiksen/ufc-events)"
	Timeout   = 30 * time.Second

	// maxBodyBytes bounds a single page read
	maxBodyBytes = 10 << 20
)

var (
	// ErrRetrieval marks a failure to fetch page markup
	ErrRetrieval = errors.New("retrieval failed")
	// ErrExtraction marks a required field that could not be resolved
	ErrExtraction = errors.New("extraction failed")
)

// Fetcher retrieves the markup at a page address
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, pageURL string) (string, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, pageURL string) (string, error) {
	return f(ctx, pageURL)
}

// HTTPFetcher fetches pages over HTTP. With MaxRetries 0 every page gets exactly one attempt.
type HTTPFetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
}

// FetcherOption configures an HTTPFetcher
type FetcherOption func(*HTTPFetcher)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithRetries enables exponential retries for transport errors and 5xx responses
func WithRetries(maxRetries int, initial, max time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxRetries = maxRetries
		f.backoff = initial
		f.maxBackoff = max
	}
}

// NewHTTPFetcher creates an HTTPFetcher with the default timeout and User-Agent
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent:  UserAgent,
		backoff:    500 * time.Millisecond,
		maxBackoff: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the page body. Errors wrap ErrRetrieval.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	var body string
	op := func() error {
		b, err := f.fetchOnce(ctx, pageURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	var err error
	if f.maxRetries <= 0 {
		err = op()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
	} else {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = f.backoff
		b.MaxInterval = f.maxBackoff
		b.MaxElapsedTime = 0
		err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.maxRetries)), ctx))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRetrieval, pageURL, err)
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return "", err
		}
		return "", backoff.Permanent(err)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(b), nil
}
