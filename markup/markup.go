// Package markup turns annotated text into styled runs.
//
// The markup language is plain text with inline directives:
//
//	{color:red}Warning{color:ink} text continues {font:bold top:gold bottom:ink}here
//
// Directives hold whitespace-separated key:value pairs. Recognised keys are
// top, bottom, color and font. Anything else is ignored. A '{' without a
// closing '}' ends markup processing and the rest of the input is kept as
// literal text. There is no escape for a literal brace.
package markup

import (
	"image/color"

	"github.com/ByLCY/glyphbox/metrics"
)

// Color is an optional color. The zero value means "no color", so renderers
// fall back to their default.
type Color struct {
	RGBA  color.RGBA
	Valid bool
}

// RGBA wraps c as a set Color.
func RGBA(c color.RGBA) Color { return Color{RGBA: c, Valid: true} }

// Style is the state that applies to a run of text.
type Style struct {
	Top    Color
	Bottom Color
	Font   metrics.Font
}

// Run is a maximal span of text sharing one Style.
type Run struct {
	Text string
	// Offset is the rune offset of Text within the markup-free text.
	Offset int
	Style
}

// Kind selects the Factory variant.
type Kind uint8

const (
	// KindDefault starts with separate top and bottom colors.
	KindDefault Kind = iota
	// KindSimple keeps one uniform color; top and bottom directives set both edges.
	KindSimple
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// Factory is the style source for a parse: the initial state and the rules
// for applying color directives.
type Factory struct {
	Kind   Kind
	Top    Color
	Bottom Color // unused by KindSimple
	Font   metrics.Font
}

// Default returns a factory with distinct top and bottom colors.
func Default(top, bottom Color, font metrics.Font) Factory {
	return Factory{Kind: KindDefault, Top: top, Bottom: bottom, Font: font}
}

// Simple returns a factory with one uniform color.
func Simple(c Color, font metrics.Font) Factory {
	return Factory{Kind: KindSimple, Top: c, Font: font}
}

// Style returns the state a parse starts with.
func (f Factory) Style() Style {
	if f.Kind == KindSimple {
		return Style{Top: f.Top, Bottom: f.Top, Font: f.Font}
	}
	return Style{Top: f.Top, Bottom: f.Bottom, Font: f.Font}
}

// Resolver looks up the names used in directives.
type Resolver interface {
	Color(name string) (color.RGBA, error)
	Font(name string) (metrics.Font, error)
}
