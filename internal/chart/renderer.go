// Package chart owns the single live chart bound to a canvas.
package chart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrStale is returned when a render belongs to a search that a newer chart has superseded.
	ErrStale = errors.New("chart: render superseded by a newer search")
	// ErrNoData is returned when there is nothing to plot.
	ErrNoData = errors.New("chart: no data to plot")
)

// Canvas size bounds in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
	MinSize       = 100
	MaxSize       = 4000
)

// Instance is a rendered chart bound to a canvas. It is released with Destroy.
type Instance struct {
	Canvas     string
	Generation uint64
	Width      int
	Height     int

	labels []string
	values []float64

	mu        sync.Mutex
	png       []byte
	destroyed bool
}

// PNG returns the rendered image, or nil once the instance is destroyed.
func (i *Instance) PNG() []byte {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return nil
	}
	out := make([]byte, len(i.png))
	copy(out, i.png)
	return out
}

// Destroy releases the rendered image. Calling it twice is a no-op.
func (i *Instance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.destroyed = true
	i.png = nil
}

// Destroyed reports whether Destroy has been called.
func (i *Instance) Destroyed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}

// Renderer holds at most one live Instance. Every render destroys the previous
// instance before the new one is created.
type Renderer struct {
	canvas string

	mu     sync.Mutex
	width  int
	height int
	live   *Instance
	issued uint64
}

// NewRenderer creates a renderer for the named canvas. Non-positive sizes fall back to defaults.
func NewRenderer(canvas string, width, height int) *Renderer {
	return &Renderer{
		canvas: canvas,
		width:  clampSize(width, DefaultWidth),
		height: clampSize(height, DefaultHeight),
	}
}

// Canvas returns the id of the element the chart is bound to.
func (r *Renderer) Canvas() string { return r.canvas }

// Size returns the dimensions the next render will use.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Begin hands out the generation token for a search that is about to start.
func (r *Renderer) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
	return r.issued
}

// Render draws labels against values as the newest chart.
func (r *Renderer) Render(labels []string, values []float64) (*Instance, error) {
	return r.RenderAt(r.Begin(), labels, values)
}

// RenderAt draws the chart for the search holding generation gen. A completion whose
// generation is older than the live instance is discarded with ErrStale.
func (r *Renderer) RenderAt(gen uint64, labels []string, values []float64) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.live != nil && gen < r.live.Generation {
		log.Debug().
			Str("canvas", r.canvas).
			Uint64("generation", gen).
			Uint64("live", r.live.Generation).
			Msg("discarding stale render")
		return nil, ErrStale
	}
	return r.replace(gen, labels, values, r.width, r.height)
}

// Resize redraws the live instance at a new size. It returns the live instance
// unchanged when there is nothing to redraw or the size already matches.
func (r *Renderer) Resize(width, height int) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width = clampSize(width, r.width)
	height = clampSize(height, r.height)
	if r.live == nil || (r.live.Width == width && r.live.Height == height) {
		return r.live, nil
	}
	r.width, r.height = width, height
	prev := r.live
	return r.replace(prev.Generation, prev.labels, prev.values, width, height)
}

// replace must be called with r.mu held. The image is drawn first so a draw
// failure leaves the live instance untouched; the previous instance is
// destroyed before the new one is created and bound.
func (r *Renderer) replace(gen uint64, labels []string, values []float64, width, height int) (*Instance, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}

	png, err := draw(labels, values, width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas %s: %w", r.canvas, err)
	}

	if r.live != nil {
		r.live.Destroy()
		r.live = nil
	}

	inst := &Instance{
		Canvas:     r.canvas,
		Generation: gen,
		Width:      width,
		Height:     height,
		labels:     append([]string(nil), labels...),
		values:     append([]float64(nil), values...),
		png:        png,
	}
	r.live = inst
	log.Debug().
		Str("canvas", r.canvas).
		Uint64("generation", gen).
		Int("points", len(values)).
		Int("bytes", len(png)).
		Msg("chart rendered")
	return inst, nil
}

// Current returns the live instance, or nil before the first successful render.
func (r *Renderer) Current() *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// Live reports how many instances are bound to the canvas (0 or 1).
func (r *Renderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live == nil {
		return 0
	}
	return 1
}

func clampSize(v, fallback int) int {
	switch {
	case v <= 0:
		return fallback
	case v < MinSize:
		return MinSize
	case v > MaxSize:
		return MaxSize
	}
	return v
}
