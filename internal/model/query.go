package model

import "strings"

// TickerQuery is the normalized symbol of a single search.
type TickerQuery struct {
	Symbol string
}

// NewTickerQuery trims and upper-cases the raw input.
func NewTickerQuery(raw string) TickerQuery {
	return TickerQuery{Symbol: strings.ToUpper(strings.TrimSpace(raw))}
}

// IsEmpty reports whether nothing but whitespace was entered.
func (q TickerQuery) IsEmpty() bool { return q.Symbol == "" }
