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

func TestHTTPFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantError  bool
	}{
		{
			name:       "successful fetch",
			body:       "<html><body>ok</body></html>",
			statusCode: http.StatusOK,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "ufc-events") {
					t.Errorf("User-Agent = %q, should contain 'ufc-events'", userAgent)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			body, err := NewHTTPFetcher().Fetch(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Fatal("Fetch() expected error, got nil")
				}
				if !errors.Is(err, ErrRetrieval) {
					t.Errorf("Fetch() error = %v, want ErrRetrieval", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if body != tt.body {
				t.Errorf("Fetch() body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestHTTPFetcher_NoRetryByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewHTTPFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() expected error, got nil")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(WithRetries(3, time.Millisecond, 5*time.Millisecond))
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if body != "recovered" {
		t.Errorf("Fetch() body = %q, want recovered", body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestHTTPFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewHTTPFetcher(WithRetries(3, time.Millisecond, 5*time.Millisecond))
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() expected error, got nil")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestHTTPFetcher_Options(t *testing.T) {
	f := NewHTTPFetcher(WithUserAgent("custom/2.0"), WithTimeout(2*time.Second))
	if f.userAgent != "custom/2.0" {
		t.Errorf("userAgent = %q, want custom/2.0", f.userAgent)
	}
	if f.client.Timeout != 2*time.Second {
		t.Errorf("client timeout = %v, want 2s", f.client.Timeout)
	}

	f = NewHTTPFetcher(WithUserAgent(""), WithTimeout(0))
	if f.userAgent != UserAgent || f.client.Timeout != Timeout {
		t.Errorf("empty options should keep defaults, got %q / %v", f.userAgent, f.client.Timeout)
	}
}
