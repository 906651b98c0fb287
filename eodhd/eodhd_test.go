package eodhd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/backtest/series"
)

// newTestClient returns a Client pointed at a stub API, with no disk cache.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{apiKey: "demo", baseURL: srv.URL, http: srv.Client()}
}

func TestFetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/eod/AAPL.US"; got != want {
			t.Errorf("request path = %q, want %q", got, want)
		}
		if got := r.URL.Query().Get("api_token"); got != "demo" {
			t.Errorf("api_token = %q, want demo", got)
		}
		// Out of order on purpose: the series sorts its axis.
		w.Write([]byte(`[
			{"date": "2025-01-03", "open": 1, "close": 102.5, "adjusted_close": 101.5, "volume": 10},
			{"date": "2025-01-02", "open": 1, "close": 101.0, "adjusted_close": 100.0, "volume": 10}
		]`))
	}))
	defer srv.Close()

	prices, err := newTestClient(srv).FetchPrices("AAPL.US", series.NewDate(2025, 1, 2), series.NewDate(2025, 1, 3))
	if err != nil {
		t.Fatalf("FetchPrices returned error: %v", err)
	}

	if prices.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", prices.Len())
	}
	if on, v := prices.First(); on != series.NewDate(2025, 1, 2) || v != 100.0 {
		t.Errorf("First() = %s, %v want 2025-01-02, 100", on, v)
	}
	if on, v := prices.Last(); on != series.NewDate(2025, 1, 3) || v != 101.5 {
		t.Errorf("Last() = %s, %v want 2025-01-03, 101.5", on, v)
	}
}

func TestFetchPricesSkipsZeroClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date": "2025-01-02", "adjusted_close": 100.0},
			{"date": "2025-01-03", "adjusted_close": 0}
		]`))
	}))
	defer srv.Close()

	prices, err := newTestClient(srv).FetchPrices("AAPL.US", series.NewDate(2025, 1, 2), series.NewDate(2025, 1, 3))
	if err != nil {
		t.Fatalf("FetchPrices returned error: %v", err)
	}
	if prices.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (zero close is a hole, not a price)", prices.Len())
	}
}

func TestFetchPricesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such ticker", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).FetchPrices("NOPE.US", series.NewDate(2025, 1, 2), series.NewDate(2025, 1, 3)); err == nil {
		t.Errorf("FetchPrices on a 404 should fail")
	}
}

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/real-time/AAPL.US"; got != want {
			t.Errorf("request path = %q, want %q", got, want)
		}
		w.Write([]byte(`{"code": "AAPL.US", "timestamp": 1756200000, "close": 231.59}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Latest("AAPL.US")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if got != 231.59 {
		t.Errorf("Latest = %v, want 231.59", got)
	}
}
