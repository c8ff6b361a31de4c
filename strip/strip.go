package strip

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
)

var ErrEmptyStrip = errors.New("strip: no renderable items")

// GapPolicy decides the horizontal spacing around items.
type GapPolicy interface {
	Leading() int
	Between() int
}

// FixedGap separates items by a fixed pixel count with no leading gap.
type FixedGap int

func (g FixedGap) Leading() int { return 0 }
func (g FixedGap) Between() int { return int(g) }

// CanvasGap separates items by one full canvas width and leads with the
// same, so ticker content enters from a blank screen and the loop seam
// reads as a natural pause.
type CanvasGap int

func (g CanvasGap) Leading() int { return int(g) }
func (g CanvasGap) Between() int { return int(g) }

// ItemBounds records where one item landed inside the built strip.
type ItemBounds struct {
	Label string
	X     int
	Width int
}

// CompositeStrip is an immutable wide bitmap plus its layout metadata. It is
// built once per content refresh and referenced, never patched, by a ticker
// engine for the lifetime of a scroll session.
type CompositeStrip struct {
	img   *image.RGBA
	items []ItemBounds
}

func (s *CompositeStrip) Image() *image.RGBA { return s.img }
func (s *CompositeStrip) Width() int         { return s.img.Bounds().Dx() }
func (s *CompositeStrip) Height() int        { return s.img.Bounds().Dy() }

// Items returns a copy of the per-item layout bounds.
func (s *CompositeStrip) Items() []ItemBounds {
	out := make([]ItemBounds, len(s.items))
	copy(out, s.items)
	return out
}

// Builder turns an ordered sequence of heterogeneous items into one
// horizontally-scrollable bitmap. Builds are deterministic for a given input
// and share no mutable state, so a producer may rebuild on its own schedule.
type Builder struct {
	Height     int
	Gap        GapPolicy
	MinWidth   int
	Background color.Color
}

// Build composes the strip. An item whose Render fails is skipped with a
// logged warning; construction only fails when nothing at all rendered.
// The builder never touches the display canvas.
func (b *Builder) Build(items []ItemRenderer) (*CompositeStrip, error) {
	if b.Height <= 0 {
		return nil, errors.New("strip: height must be positive")
	}
	gap := b.Gap
	if gap == nil {
		gap = FixedGap(0)
	}

	type rendered struct {
		label string
		img   *image.RGBA
	}
	var parts []rendered
	for _, item := range items {
		if item == nil {
			continue
		}
		w := item.Width()
		if w <= 0 {
			log.Printf("Strip: skipping item %q: zero width", item.Label())
			continue
		}
		scratch := image.NewRGBA(image.Rect(0, 0, w, b.Height))
		if b.Background != nil {
			draw.Draw(scratch, scratch.Bounds(), image.NewUniform(b.Background), image.Point{}, draw.Src)
		}
		if err := item.Render(scratch); err != nil {
			log.Printf("Strip: skipping item %q: %v", item.Label(), err)
			continue
		}
		parts = append(parts, rendered{label: item.Label(), img: scratch})
	}
	if len(parts) == 0 {
		return nil, ErrEmptyStrip
	}

	width := gap.Leading()
	for i, p := range parts {
		if i > 0 {
			width += gap.Between()
		}
		width += p.img.Bounds().Dx()
	}
	if width < b.MinWidth {
		width = b.MinWidth
	}

	img := image.NewRGBA(image.Rect(0, 0, width, b.Height))
	if b.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(b.Background), image.Point{}, draw.Src)
	}

	bounds := make([]ItemBounds, 0, len(parts))
	x := gap.Leading()
	for i, p := range parts {
		if i > 0 {
			x += gap.Between()
		}
		w := p.img.Bounds().Dx()
		draw.Draw(img, image.Rect(x, 0, x+w, b.Height), p.img, image.Point{}, draw.Src)
		bounds = append(bounds, ItemBounds{Label: p.label, X: x, Width: w})
		x += w
	}

	return &CompositeStrip{img: img, items: bounds}, nil
}
