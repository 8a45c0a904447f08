package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/tk8-stats/internal/logger"
)

const (
	DefaultRetries = 2
	maxBodyBytes   = 16 << 20
)

// HTTPFetcher fetches pages with a plain GET, retrying transient failures
type HTTPFetcher struct {
	client          *http.Client
	userAgent       string
	retries         int
	initialInterval time.Duration
	maxBody         int64
}

// NewHTTPFetcher creates a fetcher. A zero timeout uses Timeout; a negative
// retries value disables retrying.
func NewHTTPFetcher(userAgent string, timeout time.Duration, retries int) *HTTPFetcher {
	if userAgent == "" {
		userAgent = UserAgent
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:       userAgent,
		retries:         retries,
		initialInterval: 500 * time.Millisecond,
		maxBody:         maxBodyBytes,
	}
}

// Fetch returns the response body for url. Network errors, 429 and 5xx
// responses are retried; any other non-200 status fails immediately.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body []byte
	attempt := 0

	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		if int64(len(body)) > f.maxBody {
			return backoff.Permanent(fmt.Errorf("%w: response larger than %d bytes", ErrTooLarge, f.maxBody))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Retrying fetch", logger.Fields{
			"url":     url,
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
		logger.IncrCounter("fetch.retries")
	}

	if err := backoff.RetryNotify(op, f.backOff(ctx), notify); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	return string(body), nil
}

func (f *HTTPFetcher) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.retries)), ctx)
}
