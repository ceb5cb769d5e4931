// Package layout lays out styled text inside a box: runs are segmented into
// words, words are packed greedily into lines, lines are justified and
// aligned, and every glyph receives a final pen position.
//
// A Text caches its layout. Mutations only mark it dirty; the next read
// recomputes everything once.
package layout

import (
	"unicode/utf8"

	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/markup"
	"github.com/ByLCY/glyphbox/metrics"
)

// Text is a laid out block of text. It is not safe for concurrent use.
type Text struct {
	plain    bool
	raw      string
	factory  markup.Factory
	resolver markup.Resolver
	runs     []markup.Run

	box       Box
	leading   int
	halign    HAlign
	valign    VAlign
	justified bool

	dirty  bool
	height int
	glyphs buffer[Glyph]
	words  buffer[Word]
	lines  buffer[Line]
}

// NewText returns a Text whose content is parsed as markup.
func NewText() *Text {
	return &Text{dirty: true}
}

// NewPlainText returns a Text that lays its content out literally with the
// factory's style; braces carry no meaning.
func NewPlainText() *Text {
	return &Text{plain: true, dirty: true}
}

// Plain reports whether t ignores markup.
func (t *Text) Plain() bool { return t.plain }

// SetText replaces the content. Directive values are resolved immediately;
// on error the previous content is kept.
func (t *Text) SetText(s string) error {
	if s == t.raw {
		return nil
	}
	runs, err := t.parse(s, t.factory, t.resolver)
	if err != nil {
		return err
	}
	t.raw, t.runs = s, runs
	t.invalidate()
	return nil
}

// Text returns the content exactly as set.
func (t *Text) Text() string { return t.raw }

// PlainText returns the content without markup.
func (t *Text) PlainText() string {
	if t.plain {
		return t.raw
	}
	return markup.Strip(t.raw)
}

// SetFont replaces the factory's base font, keeping its kind and colors.
func (t *Text) SetFont(f metrics.Font) error {
	fac := t.factory
	fac.Font = f
	return t.SetFactory(fac)
}

// Font returns the base font, nil until one is set.
func (t *Text) Font() metrics.Font { return t.factory.Font }

// SetFactory replaces the style source and re-parses the content with it.
func (t *Text) SetFactory(f markup.Factory) error {
	runs, err := t.parse(t.raw, f, t.resolver)
	if err != nil {
		return err
	}
	t.factory, t.runs = f, runs
	t.invalidate()
	return nil
}

// Factory returns the current style source.
func (t *Text) Factory() markup.Factory { return t.factory }

// SetResolver replaces the directive name resolver and re-parses the content.
func (t *Text) SetResolver(r markup.Resolver) error {
	runs, err := t.parse(t.raw, t.factory, r)
	if err != nil {
		return err
	}
	t.resolver, t.runs = r, runs
	t.invalidate()
	return nil
}

// Runs returns the styled runs of the current content.
func (t *Text) Runs() []markup.Run { return t.runs }

// SetBounds moves and resizes the box.
func (t *Text) SetBounds(x, y, width, height int) {
	t.setBox(Box{X: x, Y: y, Width: width, Height: height})
}

// SetLocation moves the box.
func (t *Text) SetLocation(x, y int) {
	t.setBox(Box{X: x, Y: y, Width: t.box.Width, Height: t.box.Height})
}

// SetSize resizes the box.
func (t *Text) SetSize(width, height int) {
	t.setBox(Box{X: t.box.X, Y: t.box.Y, Width: width, Height: height})
}

func (t *Text) setBox(b Box) {
	if b == t.box {
		return
	}
	t.box = b
	t.invalidate()
}

// Box returns the layout box.
func (t *Text) Box() Box { return t.box }

// SetHorizontalAlignment sets how each line sits within the box width.
func (t *Text) SetHorizontalAlignment(a HAlign) {
	if a == t.halign {
		return
	}
	t.halign = a
	t.invalidate()
}

// HorizontalAlignment returns the horizontal alignment.
func (t *Text) HorizontalAlignment() HAlign { return t.halign }

// SetVerticalAlignment sets where the block sits within the box height.
func (t *Text) SetVerticalAlignment(a VAlign) {
	if a == t.valign {
		return
	}
	t.valign = a
	t.invalidate()
}

// VerticalAlignment returns the vertical alignment.
func (t *Text) VerticalAlignment() VAlign { return t.valign }

// SetJustified enables justification of full lines.
func (t *Text) SetJustified(j bool) {
	if j == t.justified {
		return
	}
	t.justified = j
	t.invalidate()
}

// Justified reports whether justification is enabled.
func (t *Text) Justified() bool { return t.justified }

// SetLeading sets the extra space between lines.
func (t *Text) SetLeading(leading int) {
	if leading == t.leading {
		return
	}
	t.leading = leading
	t.invalidate()
}

// Leading returns the extra space between lines.
func (t *Text) Leading() int { return t.leading }

// Dirty reports whether the next read will recompute the layout.
func (t *Text) Dirty() bool { return t.dirty }

// TextHeight returns the height of the laid out block.
func (t *Text) TextHeight() int {
	t.ensure()
	return t.height
}

// LineCount returns the number of lines.
func (t *Text) LineCount() int {
	t.ensure()
	return t.lines.size()
}

// Lines returns the laid out lines. The slice is owned by t and is only
// valid until the next mutation.
func (t *Text) Lines() []Line {
	t.ensure()
	return t.lines.items
}

// Words returns the laid out words, indexed by Line.First/Last.
func (t *Text) Words() []Word {
	t.ensure()
	return t.words.items
}

// Glyphs returns the positioned glyphs in layout order, indexed by Word.First/Last.
func (t *Text) Glyphs() []Glyph {
	t.ensure()
	return t.glyphs.items
}

// GlyphCount returns the number of glyphs.
func (t *Text) GlyphCount() int {
	t.ensure()
	return t.glyphs.size()
}

func (t *Text) invalidate() { t.dirty = true }

func (t *Text) ensure() {
	if !t.dirty {
		return
	}
	t.layout()
	t.dirty = false
}

func (t *Text) layout() {
	need := 0
	for _, r := range t.runs {
		need += utf8.RuneCountInString(r.Text)
	}
	t.glyphs.reset(need)
	t.words.reset(need/2 + 1)
	t.lines.reset(need/2 + 1)
	t.height = 0

	if t.factory.Font == nil {
		logger.Get().Debug("layout: no font set, skipping layout")
		return
	}

	newLineBuilder(t).build()
	t.justify()
	t.align()
	logger.Get().Debug("layout: relayout",
		"lines", t.lines.size(),
		"words", t.words.size(),
		"glyphs", t.glyphs.size(),
		"height", t.height)
}

func (t *Text) parse(s string, f markup.Factory, r markup.Resolver) ([]markup.Run, error) {
	if s == "" {
		return nil, nil
	}
	if t.plain {
		return []markup.Run{{Text: s, Style: f.Style()}}, nil
	}
	return markup.Parse(s, f, r)
}
