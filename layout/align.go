package layout

// align computes the block height, places every line baseline according to
// the vertical alignment and writes final pen positions into the glyphs.
func (t *Text) align() {
	lines := t.lines.items
	t.height = 0
	if len(lines) == 0 {
		return
	}
	for _, l := range lines {
		t.height += l.Ascent + l.Descent
	}
	t.height += t.leading * (len(lines) - 1)

	baseline := t.firstBaseline(lines[0])
	widest := 0
	for _, l := range lines {
		widest = max(widest, l.Width)
	}
	for i := range lines {
		l := &lines[i]
		if i > 0 {
			baseline -= lines[i-1].Descent + t.leading + l.Ascent
		}
		l.Baseline = baseline
		l.X = t.box.X + t.alignOffset(*l, widest)
		t.place(l)
	}
}

func (t *Text) firstBaseline(first Line) int {
	box := t.box
	switch t.valign {
	case Bottom:
		return box.Y + t.height - first.Ascent
	case Middle:
		return box.Y + box.Height - floorDiv(box.Height-t.height, 2) - first.Ascent
	case Baseline:
		return box.Y + t.factory.Font.Descent()
	default:
		return box.Y + box.Height - first.Ascent
	}
}

// alignOffset 计算行相对 box.X 的水平偏移；宽度不受限时以最宽行为参照。
func (t *Text) alignOffset(l Line, widest int) int {
	if l.Justified {
		return 0
	}
	container := t.box.Width
	if container <= 0 {
		container = widest
	}
	switch t.halign {
	case Right:
		return container - l.Width
	case Centered:
		return floorDiv(container-l.Width, 2)
	default:
		return 0
	}
}

// place sets the pen position of every glyph on the line.
func (t *Text) place(l *Line) {
	x := l.X
	for wi := l.First; wi < l.Last; wi++ {
		w := t.words.at(wi)
		for gi := w.First; gi < w.Last; gi++ {
			g := t.glyphs.at(gi)
			x += g.Kerning
			g.X, g.Y = x, l.Baseline
			x += g.Advance
		}
		if wi < l.Last-1 {
			x += w.TrailingGap() + w.Gap
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
