package calculator

import (
	"errors"

	"TickerBoard/internal/model"
)

const (
	SMAPeriod = 5
	RSIPeriod = 14
)

// Summary condenses a series into the figures shown beside the chart.
type Summary struct {
	Symbol    string
	Points    int
	First     float64
	Last      float64
	Change    float64
	ChangePct float64
	High      float64
	Low       float64
	Position  float64
	SMA       float64 // zero when fewer than SMAPeriod points
	RSI       float64
}

// Summarize computes the summary of s. It fails only for an empty series.
func Summarize(s *model.TimeSeries) (*Summary, error) {
	if s == nil || s.Len() == 0 {
		return nil, errors.New("empty series")
	}
	closes := s.Values()

	high, low, err := CalculateRange(closes)
	if err != nil {
		return nil, err
	}
	first, last := closes[0], closes[len(closes)-1]
	pos, err := CalculatePosition(last, high, low)
	if err != nil {
		return nil, err
	}
	rsi, err := CalculateRSI(closes, RSIPeriod)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Symbol:   s.Symbol(),
		Points:   len(closes),
		First:    first,
		Last:     last,
		Change:   last - first,
		High:     high,
		Low:      low,
		Position: pos,
		RSI:      rsi,
	}
	if first != 0 {
		sum.ChangePct = (last - first) / first * 100
	}
	if sma, err := CalculateSMA(closes, SMAPeriod); err == nil {
		sum.SMA = sma
	}
	return sum, nil
}
