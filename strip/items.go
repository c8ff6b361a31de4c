package strip

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

var (
	ErrNoGlyphs = errors.New("strip: text item has no glyph renderer")
	ErrNoImage  = errors.New("strip: image item has no bitmap")
)

// ItemRenderer is the capability a content producer hands the builder: it
// reports its own rendered width and draws itself into a scratch image of
// exactly that width and the strip height.
type ItemRenderer interface {
	Label() string
	Width() int
	Render(dst *image.RGBA) error
}

// TextItem renders a single string through a TextMetrics/GlyphRenderer pair.
type TextItem struct {
	Name    string
	Text    string
	Color   color.Color
	Metrics TextMetrics
	Glyphs  GlyphRenderer
}

func (t *TextItem) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Text
}

func (t *TextItem) Width() int {
	if t.Metrics == nil {
		return 0
	}
	return t.Metrics.WidthOf(t.Text)
}

func (t *TextItem) Render(dst *image.RGBA) error {
	if t.Metrics == nil || t.Glyphs == nil {
		return ErrNoGlyphs
	}
	col := t.Color
	if col == nil {
		col = color.White
	}
	h := dst.Bounds().Dy()
	baseline := (h + t.Metrics.LineHeight()) / 2
	t.Glyphs.DrawString(dst, t.Text, 0, baseline, col)
	return nil
}

// ImageItem places a pre-rendered bitmap, e.g. a team logo, vertically
// centered in the strip.
type ImageItem struct {
	Name string
	Img  image.Image
}

func (i *ImageItem) Label() string { return i.Name }

func (i *ImageItem) Width() int {
	if i.Img == nil {
		return 0
	}
	return i.Img.Bounds().Dx()
}

func (i *ImageItem) Render(dst *image.RGBA) error {
	if i.Img == nil {
		return ErrNoImage
	}
	src := i.Img.Bounds()
	y := (dst.Bounds().Dy() - src.Dy()) / 2
	r := image.Rect(0, y, src.Dx(), y+src.Dy())
	draw.Draw(dst, r, i.Img, src.Min, draw.Over)
	return nil
}
