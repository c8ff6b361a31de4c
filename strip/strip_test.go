package strip

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// blockItem renders a solid rectangle of a fixed width.
type blockItem struct {
	name  string
	width int
	col   color.RGBA
}

func (b *blockItem) Label() string { return b.name }
func (b *blockItem) Width() int    { return b.width }

func (b *blockItem) Render(dst *image.RGBA) error {
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < b.width; x++ {
			dst.SetRGBA(x, y, b.col)
		}
	}
	return nil
}

// brokenItem reports a width but always fails to render.
type brokenItem struct{}

func (brokenItem) Label() string                { return "broken" }
func (brokenItem) Width() int                   { return 40 }
func (brokenItem) Render(dst *image.RGBA) error { return errors.New("upstream image corrupt") }

func TestBuildIsDeterministic(t *testing.T) {
	items := []ItemRenderer{
		&blockItem{name: "a", width: 10, col: color.RGBA{R: 255, A: 255}},
		&blockItem{name: "b", width: 20, col: color.RGBA{G: 255, A: 255}},
	}
	builder := Builder{Height: 8, Gap: FixedGap(4)}

	first, err := builder.Build(items)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := builder.Build(items)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if first.Width() != second.Width() || !bytes.Equal(first.Image().Pix, second.Image().Pix) {
		t.Fatalf("identical inputs produced different strips")
	}
}

func TestBuildLayout(t *testing.T) {
	items := []ItemRenderer{
		&blockItem{name: "a", width: 10, col: color.RGBA{R: 255, A: 255}},
		&blockItem{name: "b", width: 20, col: color.RGBA{G: 255, A: 255}},
	}

	built, err := (&Builder{Height: 8, Gap: FixedGap(4)}).Build(items)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if built.Width() != 34 {
		t.Fatalf("fixed gap: expected width 34, got %d", built.Width())
	}
	bounds := built.Items()
	if len(bounds) != 2 || bounds[0].X != 0 || bounds[1].X != 14 {
		t.Fatalf("unexpected layout %+v", bounds)
	}
	if got := built.Image().RGBAAt(14, 3); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("second item not at its recorded bounds: %+v", got)
	}

	built, err = (&Builder{Height: 8, Gap: CanvasGap(30)}).Build(items)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// leading 30 + 10 + 30 + 20
	if built.Width() != 90 {
		t.Fatalf("canvas gap: expected width 90, got %d", built.Width())
	}
	if got := built.Items()[0].X; got != 30 {
		t.Fatalf("canvas gap: expected leading gap before first item, x=%d", got)
	}
}

func TestBuildSkipsFailingItem(t *testing.T) {
	items := []ItemRenderer{
		&blockItem{name: "a", width: 10, col: color.RGBA{R: 255, A: 255}},
		brokenItem{},
		&blockItem{name: "b", width: 20, col: color.RGBA{G: 255, A: 255}},
	}

	built, err := (&Builder{Height: 8, Gap: FixedGap(4)}).Build(items)
	if err != nil {
		t.Fatalf("one bad item must not abort the build: %v", err)
	}
	bounds := built.Items()
	if len(bounds) != 2 || bounds[0].Label != "a" || bounds[1].Label != "b" {
		t.Fatalf("unexpected surviving items %+v", bounds)
	}
	if built.Width() != 34 {
		t.Fatalf("skipped item still took space: width=%d", built.Width())
	}
}

func TestBuildFailsWhenNothingRenders(t *testing.T) {
	if _, err := (&Builder{Height: 8}).Build([]ItemRenderer{brokenItem{}}); !errors.Is(err, ErrEmptyStrip) {
		t.Fatalf("expected ErrEmptyStrip, got %v", err)
	}
	if _, err := (&Builder{Height: 8}).Build(nil); !errors.Is(err, ErrEmptyStrip) {
		t.Fatalf("expected ErrEmptyStrip for empty input, got %v", err)
	}
}

func TestBuildPadsToMinWidth(t *testing.T) {
	items := []ItemRenderer{&blockItem{name: "a", width: 10, col: color.RGBA{R: 255, A: 255}}}
	built, err := (&Builder{Height: 8, MinWidth: 128}).Build(items)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if built.Width() != 128 {
		t.Fatalf("expected pad to 128, got %d", built.Width())
	}
}

func TestTextItemRendersThroughFace(t *testing.T) {
	face := NewFaceRenderer(basicfont.Face7x13)
	item := &TextItem{Text: "SCORE 4-2", Metrics: face, Glyphs: face}

	w := item.Width()
	if w <= 0 {
		t.Fatalf("expected positive text width")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, 16))
	if err := item.Render(dst); err != nil {
		t.Fatalf("render: %v", err)
	}

	lit := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatalf("text item drew nothing")
	}
}

func TestTextItemWithoutGlyphsFails(t *testing.T) {
	item := &TextItem{Text: "x"}
	if got := item.Width(); got != 0 {
		t.Fatalf("expected zero width without metrics, got %d", got)
	}
	if err := item.Render(image.NewRGBA(image.Rect(0, 0, 4, 4))); !errors.Is(err, ErrNoGlyphs) {
		t.Fatalf("expected ErrNoGlyphs, got %v", err)
	}
}

func TestCellRendererUsesRuneWidths(t *testing.T) {
	r := NewCellRenderer(basicfont.Face7x13, 8, 16)
	if got := r.WidthOf("ab"); got != 16 {
		t.Fatalf("expected 2 cells = 16px, got %d", got)
	}
	// Fullwidth rune takes two cells.
	if got := r.WidthOf("日"); got != 16 {
		t.Fatalf("expected wide rune = 16px, got %d", got)
	}
	if got := r.LineHeight(); got != 16 {
		t.Fatalf("expected cell height 16, got %d", got)
	}
}

func TestImageItemCentersVertically(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(logo.Pix); i += 4 {
		logo.Pix[i] = 255
		logo.Pix[i+3] = 255
	}

	item := &ImageItem{Name: "logo", Img: logo}
	dst := image.NewRGBA(image.Rect(0, 0, 4, 12))
	if err := item.Render(dst); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("expected empty row above centered image")
	}
	if got := dst.RGBAAt(0, 5); got.R != 255 {
		t.Fatalf("expected image pixels in the vertical middle")
	}
}
