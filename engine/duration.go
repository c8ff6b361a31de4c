package engine

// EstimateParams feeds a duration estimate. Widths are pixels, Speed is
// pixels per tick, DelaySeconds is seconds per tick.
type EstimateParams struct {
	ContentWidth   int
	CanvasWidth    int
	Speed          float64
	DelaySeconds   float64
	BufferFraction float64
	MinSeconds     float64
	MaxSeconds     float64
}

// DurationEstimate is how long a ticker should remain the active display
// mode, derived from its own scroll geometry rather than a fixed constant.
type DurationEstimate struct {
	Seconds float64
	Clamped bool
}

// EstimateDuration computes the foreground time for a strip of the given
// width. The content must fully enter and exit the canvas, so total travel
// is canvas+content pixels; a buffer fraction pads the result before it is
// clamped into [MinSeconds, MaxSeconds].
//
// A non-positive speed or content width is not an error: an unattended
// display degrades to the minimum duration instead of dividing by zero.
func EstimateDuration(p EstimateParams) DurationEstimate {
	if p.Speed <= 0 || p.ContentWidth <= 0 {
		return DurationEstimate{Seconds: p.MinSeconds, Clamped: true}
	}

	travel := float64(p.CanvasWidth + p.ContentWidth)
	ticks := travel / p.Speed
	seconds := ticks * p.DelaySeconds * (1 + p.BufferFraction)

	if seconds < p.MinSeconds {
		return DurationEstimate{Seconds: p.MinSeconds, Clamped: true}
	}
	if p.MaxSeconds > 0 && seconds > p.MaxSeconds {
		return DurationEstimate{Seconds: p.MaxSeconds, Clamped: true}
	}
	return DurationEstimate{Seconds: seconds}
}
