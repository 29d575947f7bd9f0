// Package board implements the stock chart page controller.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"TickerBoard/internal/chart"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"
	"TickerBoard/internal/notifier"
)

// User-facing messages.
const (
	MsgEmptyTicker = "Please enter a stock ticker."
	MsgFetchFailed = "Failed to fetch stock data. Please check the ticker symbol and try again."
)

// Result is the outcome of a successful search.
type Result struct {
	Series   *model.TimeSeries
	Instance *chart.Instance
	// Superseded is set when a newer search already owns the canvas.
	Superseded bool
}

// Controller runs a search: normalize, fetch, render.
type Controller struct {
	Fetcher  collector.Fetcher
	Renderer *chart.Renderer
	Notifier notifier.Notifier

	mu   sync.Mutex
	last string
}

// NewController creates a Controller. A nil notifier logs alerts.
func NewController(f collector.Fetcher, r *chart.Renderer, n notifier.Notifier) *Controller {
	if n == nil {
		n = notifier.LogNotifier{}
	}
	return &Controller{Fetcher: f, Renderer: r, Notifier: n}
}

// Search charts the ticker entered by the user. An empty ticker is a *model.ValidationError
// and never reaches the fetcher; any fetch problem is a *model.FetchError and nothing is drawn.
// Both kinds raise a notification before returning.
func (c *Controller) Search(ctx context.Context, raw string) (*Result, error) {
	q := model.NewTickerQuery(raw)
	if q.IsEmpty() {
		c.alert(ctx, MsgEmptyTicker)
		return nil, &model.ValidationError{Field: "stock-ticker", Message: MsgEmptyTicker}
	}

	gen := c.Renderer.Begin()
	series, err := c.Fetcher.FetchTimeSeries(ctx, q.Symbol)
	if err != nil {
		log.Error().Err(err).Str("ticker", q.Symbol).Str("source", c.Fetcher.Name()).Msg("error fetching stock data")
		c.alert(ctx, MsgFetchFailed)
		return nil, err
	}

	inst, err := c.Renderer.RenderAt(gen, series.Labels(), series.Values())
	if errors.Is(err, chart.ErrStale) {
		return &Result{Series: series, Superseded: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", q.Symbol, err)
	}

	c.mu.Lock()
	c.last = q.Symbol
	c.mu.Unlock()

	log.Info().
		Str("ticker", q.Symbol).
		Int("points", series.Len()).
		Uint64("generation", inst.Generation).
		Msg("chart updated")
	return &Result{Series: series, Instance: inst}, nil
}

// LastTicker returns the symbol of the most recent chart, or "" before the first one.
func (c *Controller) LastTicker() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Controller) alert(ctx context.Context, text string) {
	if err := c.Notifier.Alert(ctx, text); err != nil {
		log.Warn().Err(err).Msg("deliver notification")
	}
}
