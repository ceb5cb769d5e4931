package layout

// justify spreads the unused width of every eligible line over its word gaps.
// The first remainder gaps get one extra pixel so the line ends exactly at the
// right edge of the box.
func (t *Text) justify() {
	if !t.justifying() || t.box.Width <= 0 {
		return
	}
	lines := t.lines.items
	for i := range lines {
		l := &lines[i]
		if l.ParagraphBreak || l.Words() < 2 || i == len(lines)-1 {
			continue
		}
		gaps := l.Words() - 1
		available := t.box.Width - l.Width
		if available < 0 {
			continue
		}
		spread, remainder := available/gaps, available%gaps
		for g := 0; g < gaps; g++ {
			extra := spread
			if g < remainder {
				extra++
			}
			t.words.at(l.First + g).Gap = extra
		}
		l.Slack = available
		l.Justified = true
	}
}

func (t *Text) justifying() bool {
	return t.justified || t.halign == Justified
}
