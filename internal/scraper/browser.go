package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserUserAgent is sent by the headless browser; some sites block non-browser agents
const BrowserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// BrowserFetcher renders pages in headless Chrome before returning their HTML
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
	waitFor  string
}

// NewBrowserFetcher starts a Chrome allocator. Call Close when done.
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(BrowserUserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		timeout:  timeout,
		waitFor:  "table",
	}
}

// Close shuts down the browser
func (b *BrowserFetcher) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Fetch navigates to url, waits for a table to render and returns the outer HTML
func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	// Propagate caller cancellation into the browser tab
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(b.waitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: chromedp: %w", ErrFetch, url, err)
	}
	if html == "" {
		return "", fmt.Errorf("%w: %s: empty document", ErrFetch, url)
	}
	return html, nil
}
