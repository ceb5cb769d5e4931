package layout

// Bounds returns the rectangle covered by all line boxes, or a zero Rect when
// there is nothing laid out.
func (t *Text) Bounds() Rect {
	t.ensure()
	var r Rect
	for _, l := range t.lines.items {
		r = r.Union(l.Bounds())
	}
	return r
}

// GlyphBounds returns the ink rectangle of glyph i in layout order.
func (t *Text) GlyphBounds(i int) (Rect, bool) {
	t.ensure()
	if i < 0 || i >= t.glyphs.size() {
		return Rect{}, false
	}
	return t.glyphs.at(i).Bounds(), true
}

// GlyphIndexAt returns the glyph whose advance cell contains (x, y), or -1.
func (t *Text) GlyphIndexAt(x, y int) int {
	t.ensure()
	for li := range t.lines.items {
		l := &t.lines.items[li]
		if y < l.Baseline-l.Descent || y >= l.Baseline+l.Ascent {
			continue
		}
		for wi := l.First; wi < l.Last; wi++ {
			w := t.words.at(wi)
			for gi := w.First; gi < w.Last; gi++ {
				g := t.glyphs.at(gi)
				if x >= g.X && x < g.X+g.Advance {
					return gi
				}
			}
		}
	}
	return -1
}

// CharIndexAt returns the caret position nearest to (x, y) as a character
// index into the markup-free text.
func (t *Text) CharIndexAt(x, y int) int {
	t.ensure()
	lines := t.lines.items
	if len(lines) == 0 {
		return 0
	}
	l := &lines[len(lines)-1]
	for i := range lines {
		// 行带包含下方的行距，点落在两行之间时归上一行
		if y >= lines[i].Baseline-lines[i].Descent-t.leading {
			l = &lines[i]
			break
		}
	}
	if l.Words() == 0 {
		return l.Start
	}
	index := l.Start
	for wi := l.First; wi < l.Last; wi++ {
		w := t.words.at(wi)
		for gi := w.First; gi < w.Last; gi++ {
			g := t.glyphs.at(gi)
			if x < g.X+g.Advance/2 {
				return g.Index
			}
			index = g.Index + 1
		}
	}
	return index
}
