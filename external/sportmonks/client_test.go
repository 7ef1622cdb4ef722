package sportmonks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/live-dattacks/internal/platform/resilience"
	"github.com/riskibarqy/live-dattacks/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL + "/v3/football/",
		Token:          "secret-token",
		CircuitBreaker: breaker,
	})
}

func TestFetchInplay_SendsLiveQueryAndHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/football/livescores/inplay" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_token") != "secret-token" {
			t.Errorf("missing api token")
		}
		if query.Get("include") != DefaultLiveInclude {
			t.Errorf("unexpected include %q", query.Get("include"))
		}
		if query.Get("filters") != DefaultLiveFilters {
			t.Errorf("unexpected filters %q", query.Get("filters"))
		}
		if query.Get("timezone") != "Europe/London" || query.Get("populate") != "400" {
			t.Errorf("unexpected timezone/populate %q/%q", query.Get("timezone"), query.Get("populate"))
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header %q", got)
		}
		if got := r.Header.Get("Cache-Control"); !strings.Contains(got, "no-store") {
			t.Errorf("expected caching disabled, got %q", got)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"A vs B"},"junk",{"id":2}]}`))
	}, resilience.CircuitBreakerConfig{})

	fixtures, err := client.FetchInplay(context.Background())
	if err != nil {
		t.Fatalf("fetch inplay: %v", err)
	}
	if len(fixtures) != 3 {
		t.Fatalf("expected 3 fixtures, got %d", len(fixtures))
	}
	if got, _ := fixtures[0]["id"].(float64); got != 1 {
		t.Fatalf("unexpected first fixture id: %v", fixtures[0]["id"])
	}
	if len(fixtures[1]) != 0 {
		t.Fatalf("expected non-object entry to become empty record, got %v", fixtures[1])
	}
}

func TestFetchInplay_NonArrayDataIsEmpty(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"data":{"id":1}}`, `{"message":"no data"}`, `[]`, `null`} {
		body := body
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}, resilience.CircuitBreakerConfig{})

		fixtures, err := client.FetchInplay(context.Background())
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if fixtures == nil || len(fixtures) != 0 {
			t.Fatalf("body %s: expected empty non-nil list, got %v", body, fixtures)
		}
	}
}

func TestFetchInplay_FailureMessages(t *testing.T) {
	t.Parallel()

	statusClient := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"token invalid"}`, http.StatusUnauthorized)
	}, resilience.CircuitBreakerConfig{})
	if _, err := statusClient.FetchInplay(context.Background()); err == nil || err.Error() != "HTTP 401" {
		t.Fatalf("expected HTTP 401 error, got %v", err)
	}

	jsonClient := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}, resilience.CircuitBreakerConfig{})
	_, err := jsonClient.FetchInplay(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode livescores payload") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFetchInplay_CancellationIsReturnedAsContextError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, resilience.CircuitBreakerConfig{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.FetchInplay(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFetchInplay_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchInplay(context.Background()); err == nil || err.Error() != "HTTP 502" {
			t.Fatalf("attempt %d: expected HTTP 502, got %v", i, err)
		}
	}

	_, err := client.FetchInplay(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable once circuit is open, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`Get "https://x/inplay?api_token=abc123&include=trends": dial tcp`, "abc123")
	if strings.Contains(got, "abc123") {
		t.Fatalf("token leaked: %s", got)
	}
	if got := redactAPIURL("https://x/inplay?api_token=abc123"); strings.Contains(got, "abc123") {
		t.Fatalf("token leaked in url: %s", got)
	}
}
