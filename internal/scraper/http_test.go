package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(retries int) *HTTPFetcher {
	f := NewHTTPFetcher("", time.Second, retries)
	f.initialInterval = time.Millisecond
	return f
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		retries   int
		wantError bool
		wantCalls int32
	}{
		{
			name:      "success first try",
			statuses:  []int{http.StatusOK},
			retries:   2,
			wantCalls: 1,
		},
		{
			name:      "server error then success",
			statuses:  []int{http.StatusBadGateway, http.StatusOK},
			retries:   2,
			wantCalls: 2,
		},
		{
			name:      "rate limited then success",
			statuses:  []int{http.StatusTooManyRequests, http.StatusOK},
			retries:   2,
			wantCalls: 2,
		},
		{
			name:      "not found is not retried",
			statuses:  []int{http.StatusNotFound},
			retries:   2,
			wantError: true,
			wantCalls: 1,
		},
		{
			name:      "retries exhausted",
			statuses:  []int{http.StatusInternalServerError},
			retries:   2,
			wantError: true,
			wantCalls: 3,
		},
		{
			name:      "retry disabled",
			statuses:  []int{http.StatusInternalServerError},
			retries:   0,
			wantError: true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "tk8-stats") {
					t.Errorf("User-Agent = %q, should contain 'tk8-stats'", userAgent)
				}

				n := atomic.AddInt32(&calls, 1)
				idx := int(n) - 1
				if idx >= len(tt.statuses) {
					idx = len(tt.statuses) - 1
				}
				w.WriteHeader(tt.statuses[idx])
				w.Write([]byte("<html><title>ok</title></html>"))
			}))
			defer server.Close()

			body, err := newTestFetcher(tt.retries).Fetch(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Error("Fetch() expected error, got nil")
				} else if !errors.Is(err, ErrFetch) {
					t.Errorf("Fetch() error = %v, want ErrFetch", err)
				}
			} else {
				if err != nil {
					t.Errorf("Fetch() unexpected error: %v", err)
				}
				if !strings.Contains(body, "<title>ok</title>") {
					t.Errorf("Fetch() body = %q", body)
				}
			}

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("server called %d times, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestHTTPFetcher_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestFetcher(2).Fetch(ctx, server.URL); !errors.Is(err, ErrFetch) {
		t.Errorf("Fetch() error = %v, want ErrFetch", err)
	}
}

func TestNewHTTPFetcher_Defaults(t *testing.T) {
	f := NewHTTPFetcher("", 0, -1)

	if f.userAgent != UserAgent {
		t.Errorf("userAgent = %q, want %q", f.userAgent, UserAgent)
	}
	if f.client.Timeout != Timeout {
		t.Errorf("timeout = %v, want %v", f.client.Timeout, Timeout)
	}
	if f.retries != 0 {
		t.Errorf("retries = %d, want 0", f.retries)
	}
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError bool
	}{
		{name: "at limit", body: strings.Repeat("a", 16)},
		{name: "over limit", body: strings.Repeat("a", 17), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := newTestFetcher(2)
			f.maxBody = 16

			body, err := f.Fetch(context.Background(), server.URL)
			if tt.wantError {
				if !errors.Is(err, ErrFetch) || !errors.Is(err, ErrTooLarge) {
					t.Errorf("Fetch() error = %v, want ErrFetch and ErrTooLarge", err)
				}
				if got := atomic.LoadInt32(&calls); got != 1 {
					t.Errorf("server called %d times, want 1", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if body != tt.body {
				t.Errorf("Fetch() body length = %d, want %d", len(body), len(tt.body))
			}
		})
	}
}
