package layout

import (
	"testing"

	"github.com/tdewolff/test"
)

func hitText(t *testing.T, content string) *Text {
	t.Helper()
	txt := newText(t, newStubFont("body", 10, 5), content, 100)
	txt.SetBounds(0, 0, 100, 50)
	return txt
}

func TestGlyphIndexAt(t *testing.T) {
	txt := hitText(t, "AB CD")
	// baseline = 50 - 8, line band [40, 50)
	test.T(t, txt.GlyphIndexAt(0, 45), 0)
	test.T(t, txt.GlyphIndexAt(12, 45), 1)
	test.T(t, txt.GlyphIndexAt(22, 45), -1, "gap between words")
	test.T(t, txt.GlyphIndexAt(26, 40), 2)
	test.T(t, txt.GlyphIndexAt(12, 50), -1, "above the line")
	test.T(t, txt.GlyphIndexAt(12, 10), -1)
}

func TestCharIndexAt(t *testing.T) {
	txt := hitText(t, "AB CD")
	test.T(t, txt.CharIndexAt(-5, 45), 0)
	test.T(t, txt.CharIndexAt(6, 45), 1)
	test.T(t, txt.CharIndexAt(12, 45), 1)
	test.T(t, txt.CharIndexAt(23, 45), 3)
	test.T(t, txt.CharIndexAt(100, 45), 5)
	test.T(t, txt.CharIndexAt(12, 500), 1, "above the block picks the first line")
}

func TestCharIndexAtAcrossLines(t *testing.T) {
	txt := hitText(t, "AB\n\nCD")
	lines := txt.Lines()
	test.T(t, len(lines), 3)
	test.T(t, lines[1].Start, 3)
	test.T(t, lines[2].Start, 4)

	test.T(t, txt.CharIndexAt(50, lines[1].Baseline), 3)
	test.T(t, txt.CharIndexAt(0, lines[2].Baseline), 4)
	test.T(t, txt.CharIndexAt(100, -100), 6)
}

func TestGlyphBounds(t *testing.T) {
	txt := hitText(t, "AB CD")
	r, ok := txt.GlyphBounds(0)
	test.That(t, ok)
	test.T(t, r, Rect{X: 1, Y: 40, Width: 8, Height: 10})

	r, ok = txt.GlyphBounds(2)
	test.That(t, ok)
	test.T(t, r.X, 26)

	_, ok = txt.GlyphBounds(4)
	test.That(t, !ok)
	_, ok = txt.GlyphBounds(-1)
	test.That(t, !ok)
}

func TestBounds(t *testing.T) {
	txt := hitText(t, "AB CD\nE")
	test.T(t, txt.Bounds(), Rect{X: 0, Y: 30, Width: 45, Height: 20})

	txt.SetHorizontalAlignment(Right)
	test.T(t, txt.Bounds(), Rect{X: 55, Y: 30, Width: 45, Height: 20})
}
