package collector

import (
	"context"
	"time"

	"TickerBoard/internal/model"
)

// Fetcher retrieves one month of daily closes for a normalized ticker.
// Every failure is reported as a *model.FetchError.
type Fetcher interface {
	FetchTimeSeries(ctx context.Context, ticker string) (*model.TimeSeries, error)
	Name() string
}

// DefaultDateLayout renders dates the way a US-locale browser does (M/D/YYYY).
const DefaultDateLayout = "1/2/2006"

// LabelFormat controls how bar timestamps become date labels.
type LabelFormat struct {
	Layout   string
	Location *time.Location
}

// Label converts a unix timestamp in seconds into a date label.
func (lf LabelFormat) Label(ts int64) string {
	layout := lf.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	loc := lf.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format(layout)
}
