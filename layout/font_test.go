package layout

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/glyphbox/metrics"
)

// stubFont 是测试用的等宽字体：默认每个字符 advance 相同，可按字符覆盖。
type stubFont struct {
	name    string
	def     int
	space   int
	ascent  int
	descent int
	advance map[rune]int
	kern    map[[2]rune]int
	missing map[rune]bool
}

func newStubFont(name string, advance, space int) *stubFont {
	return &stubFont{name: name, def: advance, space: space, ascent: 8, descent: 2}
}

func (f *stubFont) Name() string { return f.name }

func (f *stubFont) Glyph(r rune) (metrics.Glyph, bool) {
	if f.missing[r] {
		return metrics.Glyph{}, false
	}
	adv := f.def
	if a, ok := f.advance[r]; ok {
		adv = a
	}
	return metrics.Glyph{
		Advance:  adv,
		BearingX: 1,
		BearingY: f.ascent,
		Width:    adv - 2,
		Height:   f.ascent + f.descent,
	}, true
}

func (f *stubFont) Kern(prev, next rune) int { return f.kern[[2]rune{prev, next}] }
func (f *stubFont) SpaceAdvance() int        { return f.space }
func (f *stubFont) Ascent() int              { return f.ascent }
func (f *stubFont) Descent() int             { return f.descent }

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

type stubResolver struct {
	fonts map[string]metrics.Font
}

func (r stubResolver) Color(name string) (color.RGBA, error) {
	switch name {
	case "red":
		return red, nil
	case "blue":
		return blue, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %s", name)
}

func (r stubResolver) Font(name string) (metrics.Font, error) {
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown font %s", name)
}
