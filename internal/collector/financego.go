package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"TickerBoard/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the finance-go chart iterator.
// It keeps its own backend so the timeout and proxy do not leak into the
// library's global client.
type FinanceGoFetcher struct {
	client   chart.Client
	interval datetime.Interval
	rng      string
	format   LabelFormat
	now      func() time.Time
}

// NewFinanceGoFetcher creates a fetcher honoring the base URL, timeout, proxy,
// interval and range in opts.
func NewFinanceGoFetcher(opts Options) *FinanceGoFetcher {
	opts = opts.withDefaults()
	httpClient := &http.Client{Timeout: opts.Timeout}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
		}
	}
	return &FinanceGoFetcher{
		client: chart.Client{B: &finance.BackendConfiguration{
			Type:       finance.YFinBackend,
			URL:        strings.TrimRight(opts.BaseURL, "/"),
			HTTPClient: httpClient,
		}},
		interval: datetime.Interval(opts.Interval),
		rng:      opts.Range,
		format:   opts.Format,
		now:      time.Now,
	}
}

// Name identifies the provider in logs.
func (f *FinanceGoFetcher) Name() string { return "financego" }

// FetchTimeSeries requests the configured range of bars. Cancelling ctx aborts
// the request in flight.
func (f *FinanceGoFetcher) FetchTimeSeries(ctx context.Context, ticker string) (ts *model.TimeSeries, err error) {
	if ticker == "" {
		return nil, &model.FetchError{Ticker: ticker, Reason: "empty ticker"}
	}
	if err := ctx.Err(); err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "request", Err: err}
	}
	// finance-go indexes response arrays without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			ts, err = nil, &model.FetchError{Ticker: ticker, Reason: "unexpected response shape", Err: fmt.Errorf("%v", r)}
		}
	}()

	end := f.now()
	params := &chart.Params{
		Symbol:   ticker,
		End:      datetime.New(&end),
		Interval: f.interval,
	}
	params.Context = &ctx
	if start, ok := rangeStart(end, f.rng); ok {
		params.Start = datetime.New(&start)
	}

	iter := f.client.Get(params)
	var points []point
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, &model.FetchError{Ticker: ticker, Reason: "request", Err: err}
		}
		bar := iter.Bar()
		// finance-go decodes null closes as zero.
		if bar.Close.IsZero() {
			continue
		}
		points = append(points, point{ts: int64(bar.Timestamp), close: closeToFloat(bar.Close)})
	}
	if err := iter.Err(); err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "finance-go chart", Err: err}
	}
	return buildSeries(ticker, points, f.format)
}

// rangeStart turns a Yahoo range ("5d", "1mo", "1y", "ytd") into a start time.
// ok is false for "max" or anything unrecognized, which leaves the start open.
func rangeStart(end time.Time, rng string) (time.Time, bool) {
	if rng == "ytd" {
		return time.Date(end.Year(), 1, 1, 0, 0, 0, 0, end.Location()), true
	}
	for _, u := range []string{"mo", "d", "y"} {
		if !strings.HasSuffix(rng, u) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(rng, u))
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		switch u {
		case "d":
			return end.AddDate(0, 0, -n), true
		case "mo":
			return end.AddDate(0, -n, 0), true
		default:
			return end.AddDate(-n, 0, 0), true
		}
	}
	return time.Time{}, false
}

// closeToFloat rounds to four places, the precision Yahoo quotes in.
func closeToFloat(d decimal.Decimal) float64 {
	v, _ := d.Round(4).Float64()
	return v
}
