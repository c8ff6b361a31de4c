package engine

import "math"

// ScrollState tracks the position of a composite strip relative to the
// visible canvas window. It is a value type; only Advance produces a new one.
type ScrollState struct {
	Offset       float64
	Speed        float64
	Loop         bool
	ContentWidth int
	CanvasWidth  int
}

// CropOp describes one horizontal paste from the strip into the canvas.
// A wraparound frame needs two of these; everything else needs one.
type CropOp struct {
	SrcX int
	SrcW int
	DstX int
}

// Advance moves the scroll offset by one tick.
//
// For looping content the returned bool reports that the offset wrapped past
// the end of the strip, i.e. one full cycle completed. For non-looping
// content it reports that the offset sits at its clamp; callers that need a
// one-shot "finished" signal should edge-trigger it (TickerEngine does).
func Advance(s ScrollState) (ScrollState, bool) {
	if s.ContentWidth <= 0 || s.Speed <= 0 {
		return s, false
	}

	s.Offset += s.Speed
	if s.Loop {
		if s.Offset >= float64(s.ContentWidth) {
			s.Offset = math.Mod(s.Offset, float64(s.ContentWidth))
			return s, true
		}
		return s, false
	}

	limit := float64(s.ContentWidth - s.CanvasWidth)
	if limit < 0 {
		limit = 0
	}
	if s.Offset >= limit {
		s.Offset = limit
		return s, true
	}
	return s, false
}

// VisibleCrop computes the paste operations for the current offset.
//
// Content narrower than the canvas always yields the whole strip at x=0.
// Otherwise a single crop [offset, offset+canvas) is returned unless the
// window straddles the strip's end, in which case the tail is pasted at x=0
// and the head fills the remainder. No doubled strip copy is ever needed.
func VisibleCrop(s ScrollState) []CropOp {
	if s.ContentWidth <= 0 || s.CanvasWidth <= 0 {
		return nil
	}
	if s.ContentWidth <= s.CanvasWidth {
		return []CropOp{{SrcX: 0, SrcW: s.ContentWidth, DstX: 0}}
	}

	off := int(s.Offset)
	if off < 0 {
		off = 0
	}
	if off >= s.ContentWidth {
		off %= s.ContentWidth
	}

	if off+s.CanvasWidth <= s.ContentWidth {
		return []CropOp{{SrcX: off, SrcW: s.CanvasWidth, DstX: 0}}
	}

	tail := s.ContentWidth - off
	return []CropOp{
		{SrcX: off, SrcW: tail, DstX: 0},
		{SrcX: 0, SrcW: s.CanvasWidth - tail, DstX: tail},
	}
}
