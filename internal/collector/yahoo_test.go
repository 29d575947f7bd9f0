package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"TickerBoard/internal/model"
)

func newTestFetcher(t *testing.T, status int, body string) (*YahooFetcher, *int32, *http.Request) {
	t.Helper()
	var hits int32
	var last http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		last = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher(Options{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Format:  LabelFormat{Location: time.UTC},
	})
	return f, &hits, &last
}

const okBody = `{"chart":{"result":[{"timestamp":[1700000000,1700086400],
	"indicators":{"quote":[{"close":[100.5,101.25]}]}}],"error":null}}`

func TestYahoo_WellFormedResponse(t *testing.T) {
	f, _, req := newTestFetcher(t, http.StatusOK, okBody)

	ts, err := f.FetchTimeSeries(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchTimeSeries: %v", err)
	}
	labels := ts.Labels()
	if len(labels) != 2 || labels[0] != "11/14/2023" || labels[1] != "11/15/2023" {
		t.Errorf("labels = %v", labels)
	}
	values := ts.Values()
	if len(values) != 2 || values[0] != 100.5 || values[1] != 101.25 {
		t.Errorf("values = %v", values)
	}
	if ts.Symbol() != "AAPL" {
		t.Errorf("symbol = %q", ts.Symbol())
	}

	if req.URL.Path != "/v8/finance/chart/AAPL" {
		t.Errorf("path = %q", req.URL.Path)
	}
	q := req.URL.Query()
	if q.Get("interval") != "1d" || q.Get("range") != "1mo" {
		t.Errorf("query = %v", q)
	}
}

func TestYahoo_EmbeddedError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`
	for _, status := range []int{http.StatusOK, http.StatusNotFound} {
		f, _, _ := newTestFetcher(t, status, body)
		ts, err := f.FetchTimeSeries(context.Background(), "ZZZZ")
		if ts != nil {
			t.Errorf("status %d: expected nil series", status)
		}
		if !errors.Is(err, model.ErrFetchFailed) {
			t.Fatalf("status %d: expected fetch failure, got %v", status, err)
		}
		if !strings.Contains(err.Error(), "No data found") {
			t.Errorf("status %d: error should carry the description, got %v", status, err)
		}
	}
}

func TestYahoo_MalformedShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"not json", http.StatusOK, `<html></html>`},
		{"missing chart", http.StatusOK, `{}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"missing timestamp", http.StatusOK, `{"chart":{"result":[{"indicators":{"quote":[{"close":[1]}]}}]}}`},
		{"missing indicators", http.StatusOK, `{"chart":{"result":[{"timestamp":[1700000000]}]}}`},
		{"empty quote", http.StatusOK, `{"chart":{"result":[{"timestamp":[1700000000],"indicators":{"quote":[]}}]}}`},
		{"length mismatch", http.StatusOK, `{"chart":{"result":[{"timestamp":[1700000000,1700086400],"indicators":{"quote":[{"close":[1]}]}}]}}`},
		{"all null", http.StatusOK, `{"chart":{"result":[{"timestamp":[1700000000],"indicators":{"quote":[{"close":[null]}]}}]}}`},
		{"wrong types", http.StatusOK, `{"chart":{"result":[{"timestamp":["x"],"indicators":{"quote":[{"close":[1]}]}}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := newTestFetcher(t, tt.status, tt.body)
			_, err := f.FetchTimeSeries(context.Background(), "AAA")
			if !errors.Is(err, model.ErrFetchFailed) {
				t.Errorf("expected fetch failure, got %v", err)
			}
		})
	}
}

func TestYahoo_NullClosesDroppedAndSorted(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[1700172800,1700000000,1700086400],
		"indicators":{"quote":[{"close":[103,100.5,null]}]}}]}}`
	f, _, _ := newTestFetcher(t, http.StatusOK, body)

	ts, err := f.FetchTimeSeries(context.Background(), "AAA")
	if err != nil {
		t.Fatalf("FetchTimeSeries: %v", err)
	}
	if ts.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", ts.Len())
	}
	labels, values := ts.Labels(), ts.Values()
	if labels[0] != "11/14/2023" || labels[1] != "11/16/2023" {
		t.Errorf("labels not ascending: %v", labels)
	}
	if values[0] != 100.5 || values[1] != 103 {
		t.Errorf("values = %v", values)
	}
}

func TestYahoo_EveryCallHitsNetwork(t *testing.T) {
	f, hits, _ := newTestFetcher(t, http.StatusOK, okBody)
	for i := 0; i < 3; i++ {
		if _, err := f.FetchTimeSeries(context.Background(), "AAPL"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(hits); got != 3 {
		t.Errorf("expected 3 upstream requests, got %d", got)
	}
}

func TestYahoo_EmptyTickerSkipsNetwork(t *testing.T) {
	f, hits, _ := newTestFetcher(t, http.StatusOK, okBody)
	_, err := f.FetchTimeSeries(context.Background(), "")
	if !errors.Is(err, model.ErrFetchFailed) {
		t.Errorf("expected fetch failure, got %v", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Error("empty ticker must not reach the network")
	}
}

func TestYahoo_CancelledContext(t *testing.T) {
	f, _, _ := newTestFetcher(t, http.StatusOK, okBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchTimeSeries(ctx, "AAPL")
	if !errors.Is(err, model.ErrFetchFailed) {
		t.Errorf("expected fetch failure, got %v", err)
	}
}

func TestYahoo_IndexSymbolEscaped(t *testing.T) {
	f, _, req := newTestFetcher(t, http.StatusOK, okBody)
	if _, err := f.FetchTimeSeries(context.Background(), "^GSPC"); err != nil {
		t.Fatalf("FetchTimeSeries: %v", err)
	}
	if req.URL.Path != "/v8/finance/chart/^GSPC" {
		t.Errorf("path = %q", req.URL.Path)
	}
}

func TestLabelFormat(t *testing.T) {
	lf := LabelFormat{Location: time.UTC}
	if got := lf.Label(1700000000); got != "11/14/2023" {
		t.Errorf("default layout: %q", got)
	}
	lf.Layout = "2006-01-02"
	if got := lf.Label(1700000000); got != "2023-11-14" {
		t.Errorf("custom layout: %q", got)
	}
	tokyo := time.FixedZone("JST", 9*3600)
	if got := (LabelFormat{Location: tokyo}).Label(1700000000); got != "11/15/2023" {
		t.Errorf("zone-shifted label: %q", got)
	}
}

func TestNew_Providers(t *testing.T) {
	for _, name := range []string{"", "yahoo", "financego", "mock"} {
		f, err := New(name, Options{})
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if name != "" && f.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, f.Name())
		}
	}
	if _, err := New("bloomberg", Options{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{Price: 50, Days: 5}
	ts, err := m.FetchTimeSeries(context.Background(), "AAA")
	if err != nil {
		t.Fatalf("FetchTimeSeries: %v", err)
	}
	if ts.Len() != 5 {
		t.Errorf("expected 5 points, got %d", ts.Len())
	}
	m.Err = errors.New("boom")
	if _, err := m.FetchTimeSeries(context.Background(), "BBB"); !errors.Is(err, model.ErrFetchFailed) {
		t.Errorf("expected fetch failure, got %v", err)
	}
	if calls := m.Calls(); len(calls) != 2 || calls[1] != "BBB" {
		t.Errorf("calls = %v", calls)
	}
}
