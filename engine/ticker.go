package engine

import (
	"errors"
	"image"
	"image/draw"
	"time"

	"marquee/strip"
)

var ErrBadCanvasSize = errors.New("engine: canvas dimensions must be positive")

// TickerConfig carries the scroll parameters for one ticker session.
type TickerConfig struct {
	Speed float64
	Loop  bool

	// RewindThreshold snaps the offset back to zero when less time than
	// this remains before a scheduled mode switch, so the strip is not cut
	// off mid-item. Zero disables the snap.
	RewindThreshold time.Duration
}

// TickerEngine scrolls one composite strip across a fixed-size window. Each
// Tick advances the offset and renders the visible crop into a reusable
// frame. The engine references the strip, it never copies or mutates it.
type TickerEngine struct {
	cfg     TickerConfig
	state   ScrollState
	strip   *strip.CompositeStrip
	frame   *image.RGBA
	atEnd   bool
	canvasW int
	canvasH int
}

func NewTickerEngine(canvasW, canvasH int, cfg TickerConfig) (*TickerEngine, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, ErrBadCanvasSize
	}
	return &TickerEngine{
		cfg:     cfg,
		canvasW: canvasW,
		canvasH: canvasH,
		frame:   image.NewRGBA(image.Rect(0, 0, canvasW, canvasH)),
		state: ScrollState{
			Speed:       cfg.Speed,
			Loop:        cfg.Loop,
			CanvasWidth: canvasW,
		},
	}, nil
}

// SetStrip replaces the scrolled content and rewinds to offset zero.
func (e *TickerEngine) SetStrip(s *strip.CompositeStrip) {
	e.strip = s
	e.state.Offset = 0
	e.atEnd = false
	if s != nil {
		e.state.ContentWidth = s.Width()
	} else {
		e.state.ContentWidth = 0
	}
}

// Rewind resets the scroll offset without touching the strip.
func (e *TickerEngine) Rewind() {
	e.state.Offset = 0
	e.atEnd = false
}

// RewindIfEndingSoon rewinds when less than the configured threshold remains
// before the caller rotates this ticker out of the foreground.
func (e *TickerEngine) RewindIfEndingSoon(remaining time.Duration) {
	if e.cfg.RewindThreshold <= 0 {
		return
	}
	if remaining >= 0 && remaining < e.cfg.RewindThreshold {
		e.Rewind()
	}
}

// State returns the current scroll state.
func (e *TickerEngine) State() ScrollState {
	return e.state
}

// Tick advances the scroll by one step and renders the visible window.
//
// The second return reports cycle completion: for looping content it fires
// exactly once per wrap so the caller may rotate in fresh content without
// stopping the scroll; for non-looping content it fires once, on the first
// tick the end clamp is reached.
func (e *TickerEngine) Tick() (*image.RGBA, bool) {
	if e.strip == nil {
		return e.frame, false
	}

	next, signal := Advance(e.state)
	e.state = next

	if !e.cfg.Loop {
		if signal && e.atEnd {
			signal = false
		} else if signal {
			e.atEnd = true
		}
	}

	e.render()
	return e.frame, signal
}

// EstimateDuration derives the foreground time for the current strip.
func (e *TickerEngine) EstimateDuration(delaySeconds, bufferFraction, minSeconds, maxSeconds float64) DurationEstimate {
	return EstimateDuration(EstimateParams{
		ContentWidth:   e.state.ContentWidth,
		CanvasWidth:    e.canvasW,
		Speed:          e.cfg.Speed,
		DelaySeconds:   delaySeconds,
		BufferFraction: bufferFraction,
		MinSeconds:     minSeconds,
		MaxSeconds:     maxSeconds,
	})
}

func (e *TickerEngine) render() {
	bounds := e.frame.Bounds()
	draw.Draw(e.frame, bounds, image.Black, image.Point{}, draw.Src)

	src := e.strip.Image()
	for _, op := range VisibleCrop(e.state) {
		dst := image.Rect(op.DstX, 0, op.DstX+op.SrcW, e.canvasH)
		draw.Draw(e.frame, dst, src, image.Pt(op.SrcX, 0), draw.Over)
	}
}
