package collector

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"TickerBoard/internal/model"
)

// point is one timestamped close before label conversion.
type point struct {
	ts    int64
	close float64
}

// buildSeries orders points chronologically and converts them into a TimeSeries.
func buildSeries(ticker string, points []point, lf LabelFormat) (*model.TimeSeries, error) {
	if len(points) == 0 {
		return nil, &model.FetchError{Ticker: ticker, Reason: "no data returned"}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].ts < points[j].ts })

	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = lf.Label(p.ts)
		values[i] = p.close
	}
	ts, err := model.NewTimeSeries(ticker, labels, values)
	if err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "build series", Err: err}
	}
	return ts, nil
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Days   int
	Err    error
	Format LabelFormat

	// Series overrides generated data per ticker when set.
	Series map[string]*model.TimeSeries

	mu    sync.Mutex
	calls []string
}

// Name identifies the provider in logs.
func (m *MockFetcher) Name() string { return "mock" }

// FetchTimeSeries records the call and returns Err, a Series override, or generated data.
func (m *MockFetcher) FetchTimeSeries(ctx context.Context, ticker string) (*model.TimeSeries, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ticker)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "request", Err: err}
	}
	if m.Err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "mock", Err: m.Err}
	}
	if ts, ok := m.Series[ticker]; ok {
		return ts, nil
	}
	days := m.Days
	if days <= 0 {
		days = 21
	}
	price := m.Price
	if price <= 0 {
		price = 100
	}
	return buildSeries(ticker, generateMockPoints(price, days), m.Format)
}

// Calls returns the tickers requested so far.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func generateMockPoints(basePrice float64, count int) []point {
	start := time.Now().AddDate(0, 0, -count).Truncate(24 * time.Hour)
	points := make([]point, count)
	for i := 0; i < count; i++ {
		points[i] = point{
			ts:    start.AddDate(0, 0, i).Unix(),
			close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

// New picks a fetcher implementation by provider name.
func New(provider string, opts Options) (Fetcher, error) {
	switch provider {
	case "", "yahoo":
		return NewYahooFetcher(opts), nil
	case "financego":
		return NewFinanceGoFetcher(opts), nil
	case "mock":
		return &MockFetcher{Format: opts.Format}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}

// Options configures the network-backed fetchers.
type Options struct {
	BaseURL  string
	Interval string
	Range    string
	Timeout  time.Duration
	Proxy    string
	Format   LabelFormat
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultYahooBaseURL
	}
	if o.Interval == "" {
		o.Interval = "1d"
	}
	if o.Range == "" {
		o.Range = "1mo"
	}
	return o
}
