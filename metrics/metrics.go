// Package metrics defines what the layout engine needs to know about a font.
// Implementations live elsewhere (see package fonts); the engine only consumes
// this contract.
package metrics

import "image"

// Glyph holds the integer pixel metrics of one character.
// BearingX is the horizontal offset from the pen to the left ink edge,
// BearingY the distance from the baseline up to the top ink edge.
type Glyph struct {
	Advance  int
	BearingX int
	BearingY int
	Width    int
	Height   int
	// Tex is the glyph's rectangle inside the font atlas, if the font has one.
	Tex image.Rectangle
}

// Font is a sized font handle.
type Font interface {
	Name() string
	// Glyph reports false when the font has no glyph for r.
	Glyph(r rune) (Glyph, bool)
	// Kern returns the adjustment applied between prev and next.
	Kern(prev, next rune) int
	// SpaceAdvance is the width of a single space, used between words.
	SpaceAdvance() int
	Ascent() int
	Descent() int
}

// AtlasSource is implemented by fonts that rasterise glyphs into a shared
// alpha atlas addressed by Glyph.Tex.
type AtlasSource interface {
	Atlas() *image.Alpha
}
