package markup_test

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/tdewolff/test"

	"github.com/ByLCY/glyphbox/markup"
	"github.com/ByLCY/glyphbox/metrics"
)

type namedFont string

func (f namedFont) Name() string                     { return string(f) }
func (f namedFont) Glyph(rune) (metrics.Glyph, bool) { return metrics.Glyph{Advance: 10}, true }
func (f namedFont) Kern(rune, rune) int              { return 0 }
func (f namedFont) SpaceAdvance() int                { return 5 }
func (f namedFont) Ascent() int                      { return 8 }
func (f namedFont) Descent() int                     { return 2 }

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
	gold = color.RGBA{R: 255, G: 215, A: 255}
)

type resolver struct{}

func (resolver) Color(name string) (color.RGBA, error) {
	switch name {
	case "red":
		return red, nil
	case "blue":
		return blue, nil
	case "gold":
		return gold, nil
	}
	return color.RGBA{}, fmt.Errorf("no color %q", name)
}

func (resolver) Font(name string) (metrics.Font, error) {
	if name == "bold" || name == "body" {
		return namedFont(name), nil
	}
	return nil, fmt.Errorf("no font %q", name)
}

func factory() markup.Factory {
	return markup.Default(markup.Color{}, markup.Color{}, namedFont("body"))
}

func TestParseColorRuns(t *testing.T) {
	runs, err := markup.Parse("{color:red}HELLO{color:blue} WORLD", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 2)
	test.String(t, runs[0].Text, "HELLO")
	test.T(t, runs[0].Top, markup.RGBA(red))
	test.T(t, runs[0].Bottom, markup.RGBA(red))
	test.String(t, runs[1].Text, " WORLD")
	test.T(t, runs[1].Top, markup.RGBA(blue))
	test.T(t, runs[1].Offset, 5)
}

func TestParseTopBottom(t *testing.T) {
	runs, err := markup.Parse("a{top:red}b{bottom:blue}c", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 3)
	test.T(t, runs[0].Top, markup.Color{})
	test.T(t, runs[1].Top, markup.RGBA(red))
	test.T(t, runs[1].Bottom, markup.Color{})
	test.T(t, runs[2].Top, markup.RGBA(red))
	test.T(t, runs[2].Bottom, markup.RGBA(blue))
}

func TestParseSimpleFactoryStaysUniform(t *testing.T) {
	f := markup.Simple(markup.RGBA(gold), namedFont("body"))
	runs, err := markup.Parse("x{top:red}y", f, resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 2)
	test.T(t, runs[0].Top, markup.RGBA(gold))
	test.T(t, runs[0].Bottom, markup.RGBA(gold))
	test.T(t, runs[1].Top, markup.RGBA(red))
	test.T(t, runs[1].Bottom, markup.RGBA(red))
}

func TestParseFontDirective(t *testing.T) {
	runs, err := markup.Parse("plain {font:bold color:gold}loud", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 2)
	test.String(t, runs[0].Font.Name(), "body")
	test.String(t, runs[1].Font.Name(), "bold")
	test.T(t, runs[1].Top, markup.RGBA(gold))
}

func TestParseUnterminatedDirective(t *testing.T) {
	runs, err := markup.Parse("{font:missing NO CLOSE", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 1)
	test.String(t, runs[0].Text, "{font:missing NO CLOSE")
	test.String(t, runs[0].Font.Name(), "body")

	// 前导指令前的缓冲为空，不产生 run
	runs, err = markup.Parse("{color:red}ok {oops", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 1)
	test.String(t, runs[0].Text, "ok {oops")
	test.T(t, runs[0].Top, markup.RGBA(red))

	runs, err = markup.Parse("a{color:red}ok {oops", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 2)
	test.String(t, runs[0].Text, "a")
	test.String(t, runs[1].Text, "ok {oops")
	test.T(t, runs[1].Top, markup.RGBA(red))
}

func TestParseUnresolvedFont(t *testing.T) {
	_, err := markup.Parse("{font:unknownfont}x", factory(), resolver{})
	test.That(t, err != nil, "expected an error")
	test.That(t, errors.Is(err, markup.ErrUnresolved))

	var rerr *markup.ResolveError
	test.That(t, errors.As(err, &rerr))
	test.String(t, rerr.Key, "font")
	test.String(t, rerr.Name, "unknownfont")
}

func TestParseNilResolver(t *testing.T) {
	_, err := markup.Parse("{color:red}x", factory(), nil)
	test.That(t, errors.Is(err, markup.ErrNoResolver))
	test.That(t, errors.Is(err, markup.ErrUnresolved))
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	runs, err := markup.Parse("{size:12 bogus}a{}b", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 2)
	test.String(t, runs[0].Text+runs[1].Text, "ab")
}

func TestParseEmpty(t *testing.T) {
	runs, err := markup.Parse("", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 0)

	runs, err = markup.Parse("{color:red}{color:blue}", factory(), resolver{})
	test.Error(t, err)
	test.T(t, len(runs), 0)
}

func TestStrip(t *testing.T) {
	raw := "{color:red}HELLO{color:blue} WÖRLD\n{broken"
	test.String(t, markup.Strip(raw), "HELLO WÖRLD\n{broken")

	runs, err := markup.Parse(raw, factory(), resolver{})
	test.Error(t, err)
	joined := ""
	for _, r := range runs {
		joined += r.Text
	}
	test.String(t, joined, markup.Strip(raw))
	test.T(t, runs[len(runs)-1].Offset, 5)
}
