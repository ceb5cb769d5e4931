package layout

import (
	"image"
	"image/color"
	"math"

	"github.com/ByLCY/glyphbox/markup"
	"github.com/ByLCY/glyphbox/metrics"
)

// Quad is everything a renderer needs to draw one glyph.
type Quad struct {
	Rune  rune
	Index int
	Font  metrics.Font
	// Tex is the glyph rectangle in the font atlas.
	Tex image.Rectangle
	// Rect is the world-space ink rectangle, y up.
	Rect Rect
	// Origin is the pen position on the baseline.
	Origin image.Point

	TopLeft     markup.Color
	TopRight    markup.Color
	BottomRight markup.Color
	BottomLeft  markup.Color
}

// Colored reports whether the quad carries its own colors.
func (q Quad) Colored() bool { return q.TopLeft.Valid }

// GlyphRenderer receives the quads of a Text in layout order.
type GlyphRenderer interface {
	DrawGlyph(q Quad)
}

// Render emits one quad per glyph with visible ink.
//
// The run's top and bottom colors span the whole line box: a glyph's top
// corners get the color interpolated at its top edge and its bottom corners
// the color at its bottom edge.
func (t *Text) Render(r GlyphRenderer) {
	t.ensure()
	for li := range t.lines.items {
		l := &t.lines.items[li]
		lineTop, lineBottom := l.Baseline+l.Ascent, l.Baseline-l.Descent
		for wi := l.First; wi < l.Last; wi++ {
			w := t.words.at(wi)
			for gi := w.First; gi < w.Last; gi++ {
				g := t.glyphs.at(gi)
				if g.Width <= 0 || g.Height <= 0 {
					continue
				}
				run := t.runs[g.Run]
				top, bottom := run.Top, run.Bottom
				if !top.Valid {
					top = bottom
				}
				if !bottom.Valid {
					bottom = top
				}
				rect := g.Bounds()
				upper := blend(top, bottom, lineTop, lineBottom, rect.Y+rect.Height)
				lower := blend(top, bottom, lineTop, lineBottom, rect.Y)
				font := run.Font
				if font == nil {
					font = t.factory.Font
				}
				r.DrawGlyph(Quad{
					Rune:        g.Rune,
					Index:       g.Index,
					Font:        font,
					Tex:         g.Tex,
					Rect:        rect,
					Origin:      image.Pt(g.X, g.Y),
					TopLeft:     upper,
					TopRight:    upper,
					BottomRight: lower,
					BottomLeft:  lower,
				})
			}
		}
	}
}

func blend(top, bottom markup.Color, lineTop, lineBottom, y int) markup.Color {
	if !top.Valid {
		return markup.Color{}
	}
	span := lineTop - lineBottom
	if span <= 0 || top.RGBA == bottom.RGBA {
		return top
	}
	f := float64(lineTop-y) / float64(span)
	f = math.Max(0, math.Min(1, f))
	return markup.RGBA(Lerp(top.RGBA, bottom.RGBA, f))
}

// Lerp interpolates between a and b; f is clamped to [0, 1] by callers.
func Lerp(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
