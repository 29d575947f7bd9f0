package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeSeries holds the date labels and closing prices of one fetch.
// Labels and Values always have the same length and are never mutated after construction.
type TimeSeries struct {
	symbol    string
	labels    []string
	values    []float64
	fetchedAt time.Time
}

// NewTimeSeries copies labels and values into a new series.
func NewTimeSeries(symbol string, labels []string, values []float64) (*TimeSeries, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("series %s: %d labels but %d values", symbol, len(labels), len(values))
	}
	ts := &TimeSeries{
		symbol:    symbol,
		labels:    make([]string, len(labels)),
		values:    make([]float64, len(values)),
		fetchedAt: time.Now(),
	}
	copy(ts.labels, labels)
	copy(ts.values, values)
	return ts, nil
}

// Symbol, Len and FetchedAt describe the series.
func (ts *TimeSeries) Symbol() string       { return ts.symbol }
func (ts *TimeSeries) Len() int             { return len(ts.labels) }
func (ts *TimeSeries) FetchedAt() time.Time { return ts.fetchedAt }

// Labels returns a copy of the date labels.
func (ts *TimeSeries) Labels() []string {
	out := make([]string, len(ts.labels))
	copy(out, ts.labels)
	return out
}

// Values returns a copy of the closing prices.
func (ts *TimeSeries) Values() []float64 {
	out := make([]float64, len(ts.values))
	copy(out, ts.values)
	return out
}

// Last returns the most recent label and value. ok is false for an empty series.
func (ts *TimeSeries) Last() (label string, value float64, ok bool) {
	if len(ts.labels) == 0 {
		return "", 0, false
	}
	n := len(ts.labels) - 1
	return ts.labels[n], ts.values[n], true
}

type timeSeriesJSON struct {
	Symbol    string    `json:"symbol"`
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	FetchedAt time.Time `json:"fetched_at"`
}

// MarshalJSON encodes the series as {symbol, labels, values, fetched_at}.
func (ts *TimeSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeSeriesJSON{
		Symbol:    ts.symbol,
		Labels:    ts.labels,
		Values:    ts.values,
		FetchedAt: ts.fetchedAt,
	})
}
