package layout

import (
	"unicode"

	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/metrics"
)

// lineBuilder segments runs into words and greedily packs the words into
// lines no wider than width. Glyphs, words and lines go straight into the
// buffers of the owning Text.
type lineBuilder struct {
	t     *Text
	width int // <= 0: 不换行

	word     Word
	open     bool
	prevRune rune
	prevFont metrics.Font

	line Line
	font metrics.Font // 当前 run 的字体，空行用它的上升/下降
}

func newLineBuilder(t *Text) *lineBuilder {
	b := &lineBuilder{t: t, width: t.box.Width, font: t.factory.Font}
	b.startLine(0)
	return b
}

// build runs the segmenter over every run and returns once all lines are pushed.
func (b *lineBuilder) build() {
	index := 0
	for ri := range b.t.runs {
		run := &b.t.runs[ri]
		font := run.Font
		if font == nil {
			font = b.t.factory.Font
		}
		b.font = font
		for _, r := range run.Text {
			switch {
			case r == '\n':
				b.closeWord()
				b.breakLine(index)
			case unicode.IsSpace(r):
				b.closeWord()
			default:
				b.appendGlyph(r, index, ri, font)
			}
			index++
		}
		// 单词可以跨越 run 边界，后续字形沿用新 run 的样式
	}
	b.closeWord()
	if b.line.Words() > 0 {
		b.flush(false)
	}
}

func (b *lineBuilder) appendGlyph(r rune, index, run int, font metrics.Font) {
	m := lookupGlyph(font, r)
	if !b.open {
		first := b.t.glyphs.size()
		b.word = Word{First: first, Last: first}
		b.open = true
	}
	kern := 0
	if b.word.Last > b.word.First && b.prevFont == font {
		kern = font.Kern(b.prevRune, r)
	}
	b.t.glyphs.push(Glyph{
		Rune:     r,
		Index:    index,
		Run:      run,
		Advance:  m.Advance,
		BearingX: m.BearingX,
		BearingY: m.BearingY,
		Width:    m.Width,
		Height:   m.Height,
		Kerning:  kern,
		Tex:      m.Tex,
	})
	b.word.Last++
	b.word.Width += m.Advance + kern
	b.word.Ascent = max(b.word.Ascent, font.Ascent())
	b.word.Descent = max(b.word.Descent, font.Descent())
	b.word.font = font
	b.prevRune, b.prevFont = r, font
}

// closeWord commits the open word, starting a new line first when it does
// not fit. An empty line accepts any word so over-wide words overflow alone.
func (b *lineBuilder) closeWord() {
	if !b.open {
		return
	}
	b.open = false
	w := b.word
	if b.line.Words() > 0 && b.width > 0 {
		last := b.t.words.at(b.line.Last - 1)
		if b.line.Width+w.Width+last.TrailingGap() > b.width {
			b.flush(false)
		}
	}
	b.add(w)
}

func (b *lineBuilder) add(w Word) {
	if b.line.Words() > 0 {
		b.line.Width += b.t.words.at(b.line.Last - 1).TrailingGap()
	} else {
		b.line.Start = b.t.glyphs.at(w.First).Index
	}
	b.t.words.push(w)
	b.line.Last++
	b.line.Width += w.Width
	b.line.Ascent = max(b.line.Ascent, w.Ascent)
	b.line.Descent = max(b.line.Descent, w.Descent)
}

// breakLine closes the current line for a hard newline at index.
func (b *lineBuilder) breakLine(index int) {
	b.flush(true)
	b.line.Start = index + 1
}

func (b *lineBuilder) flush(paragraph bool) {
	l := b.line
	l.ParagraphBreak = paragraph
	if l.Words() == 0 && b.font != nil {
		l.Ascent, l.Descent = b.font.Ascent(), b.font.Descent()
	}
	b.t.lines.push(l)
	b.startLine(l.Start)
}

func (b *lineBuilder) startLine(start int) {
	next := b.t.words.size()
	b.line = Line{First: next, Last: next, Start: start}
}

var fallbackRunes = [...]rune{'\uFFFD', '?'}

// lookupGlyph always yields metrics so every character keeps one glyph.
func lookupGlyph(font metrics.Font, r rune) metrics.Glyph {
	if g, ok := font.Glyph(r); ok {
		return g
	}
	for _, alt := range fallbackRunes {
		if g, ok := font.Glyph(alt); ok {
			logger.Get().Debug("layout: missing glyph, using fallback", "font", font.Name(), "rune", string(r), "fallback", string(alt))
			return g
		}
	}
	logger.Get().Debug("layout: missing glyph", "font", font.Name(), "rune", string(r))
	return metrics.Glyph{}
}
