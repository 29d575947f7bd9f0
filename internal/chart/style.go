package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	SeriesName = "Stock Price"
	XAxisName  = "Date"
	YAxisName  = "Price (USD)"

	// maxTicks bounds the number of date labels drawn on the x-axis.
	maxTicks = 8
)

var (
	lineColor = drawing.ColorFromHex("007BFF")
	// rgba(0, 123, 255, 0.1)
	fillColor = drawing.Color{R: 0, G: 123, B: 255, A: 26}
)

// draw renders a line chart of values against labels into PNG bytes.
func draw(labels []string, values []float64, width, height int) ([]byte, error) {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	c := gochart.Chart{
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  XAxisName,
			Ticks: dateTicks(labels),
		},
		YAxis: gochart.YAxis{
			Name: YAxisName,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    SeriesName,
				XValues: xs,
				YValues: values,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					FillColor:   fillColor,
				},
			},
		},
	}

	// go-chart refuses zero-width ranges. With ticks set it takes the x range
	// from them, so dateTicks pads a single label to -1..1 as well.
	if len(values) == 1 {
		c.XAxis.Range = &gochart.ContinuousRange{Min: -1, Max: 1}
	}
	if lo, hi := bounds(values); lo == hi {
		c.YAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}

	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// dateTicks thins labels down to at most maxTicks evenly spaced ticks, always keeping the last.
// A single label is centered between two blank ticks.
func dateTicks(labels []string) []gochart.Tick {
	n := len(labels)
	switch n {
	case 0:
		return nil
	case 1:
		return []gochart.Tick{{Value: -1}, {Value: 0, Label: labels[0]}, {Value: 1}}
	}
	step := (n + maxTicks - 1) / maxTicks
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	if last := n - 1; int(ticks[len(ticks)-1].Value) != last {
		ticks = append(ticks, gochart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

func bounds(values []float64) (lo, hi float64) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}
