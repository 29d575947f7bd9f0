package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance quote host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	client   *resty.Client
	interval string
	rng      string
	format   LabelFormat
}

// NewYahooFetcher creates a fetcher with optional proxy support.
func NewYahooFetcher(opts Options) *YahooFetcher {
	opts = opts.withDefaults()
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}
	return &YahooFetcher{
		client:   client,
		interval: opts.Interval,
		rng:      opts.Range,
		format:   opts.Format,
	}
}

// Name identifies the provider in logs.
func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the chart API. Pointers distinguish
// absent fields from zero values so the shape can be validated explicitly.
type yahooChart struct {
	Chart *struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators *struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchTimeSeries issues one GET per call. There is no retry and no cache.
func (f *YahooFetcher) FetchTimeSeries(ctx context.Context, ticker string) (*model.TimeSeries, error) {
	if ticker == "" {
		return nil, &model.FetchError{Ticker: ticker, Reason: "empty ticker"}
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"interval": f.interval,
			"range":    f.rng,
		}).
		Get("/v8/finance/chart/{ticker}")
	if err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "request", Err: err}
	}

	log.Debug().
		Str("ticker", ticker).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("yahoo chart response")

	body := resp.Body()
	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)

	// Yahoo reports unknown symbols as 404 with a chart.error body; prefer its description.
	if decodeErr == nil && chart.Chart != nil && chart.Chart.Error != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "api error: " + chart.Chart.Error.Description}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &model.FetchError{Ticker: ticker, Reason: fmt.Sprintf("status %d", resp.StatusCode())}
	}
	if decodeErr != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "decode", Err: decodeErr}
	}

	points, err := validateChart(&chart)
	if err != nil {
		return nil, &model.FetchError{Ticker: ticker, Reason: "unexpected response shape", Err: err}
	}
	return buildSeries(ticker, points, f.format)
}

// validateChart checks the response shape and pairs timestamps with closes.
// Null closes are dropped together with their timestamp.
func validateChart(c *yahooChart) ([]point, error) {
	if c.Chart == nil {
		return nil, fmt.Errorf("missing chart")
	}
	if len(c.Chart.Result) == 0 {
		return nil, fmt.Errorf("missing chart.result")
	}
	result := c.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("missing timestamp")
	}
	if result.Indicators == nil || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("missing indicators.quote")
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("%d timestamps but %d closes", len(result.Timestamp), len(closes))
	}

	points := make([]point, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		points = append(points, point{ts: ts, close: *closes[i]})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("all closes are null")
	}
	return points, nil
}
