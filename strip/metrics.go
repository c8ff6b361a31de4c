// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: strip/metrics.go
// Summary: Text measurement and glyph drawing capabilities for strip items.

package strip

import (
	"image"
	"image/color"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextMetrics reports the pixel geometry of rendered text.
type TextMetrics interface {
	WidthOf(s string) int
	LineHeight() int
}

// GlyphRenderer draws a string into an RGBA image at a baseline position and
// returns the horizontal advance in pixels.
type GlyphRenderer interface {
	DrawString(dst *image.RGBA, s string, x, baseline int, c color.Color) int
}

// FaceRenderer measures and draws text through a font.Face with proportional
// advances. It satisfies both TextMetrics and GlyphRenderer.
type FaceRenderer struct {
	face font.Face
}

func NewFaceRenderer(face font.Face) *FaceRenderer {
	return &FaceRenderer{face: face}
}

func (r *FaceRenderer) WidthOf(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

func (r *FaceRenderer) LineHeight() int {
	return r.face.Metrics().Height.Ceil()
}

func (r *FaceRenderer) DrawString(dst *image.RGBA, s string, x, baseline int, c color.Color) int {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
	return d.Dot.X.Ceil() - x
}

// CellRenderer measures and draws text on a fixed cell grid, the way a
// terminal does: every rune occupies runewidth cells of cellW pixels. Wide
// runes take two cells, zero-width runes take none.
type CellRenderer struct {
	face  font.Face
	cellW int
	cellH int
}

func NewCellRenderer(face font.Face, cellW, cellH int) *CellRenderer {
	return &CellRenderer{face: face, cellW: cellW, cellH: cellH}
}

func (r *CellRenderer) WidthOf(s string) int {
	return runewidth.StringWidth(s) * r.cellW
}

func (r *CellRenderer) LineHeight() int {
	return r.cellH
}

func (r *CellRenderer) DrawString(dst *image.RGBA, s string, x, baseline int, c color.Color) int {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
	}
	start := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(string(ch))
		x += w * r.cellW
	}
	return x - start
}
