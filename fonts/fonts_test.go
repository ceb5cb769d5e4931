package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltin(t *testing.T) {
	data, err := Load("builtin:goregular", "")
	test.Error(t, err)
	test.T(t, len(data), len(goregular.TTF))

	_, err = Load("built-in:GoBold", "")
	test.Error(t, err)

	_, err = Load("builtin:comic", "")
	test.That(t, errors.Is(err, ErrUnknownBuiltin))
	test.That(t, len(Builtins()) == 12)
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	test.Error(t, os.WriteFile(filepath.Join(dir, "body.ttf"), goregular.TTF, 0o644))

	data, err := Load("body.ttf", dir)
	test.Error(t, err)
	test.T(t, len(data), len(goregular.TTF))

	_, err = Load("body.ttf", "")
	test.That(t, err != nil, "relative path without base dir")
	_, err = Load("missing.ttf", dir)
	test.That(t, err != nil)
	_, err = Load("", dir)
	test.That(t, err != nil)
}

func TestFaceMetrics(t *testing.T) {
	face, err := Open("builtin:goregular", "", 16)
	test.Error(t, err)
	test.String(t, face.Name(), "builtin:goregular")
	test.That(t, face.Ascent() > 0 && face.Ascent() <= 20, "ascent", face.Ascent())
	test.That(t, face.Descent() > 0 && face.Descent() < face.Ascent(), "descent", face.Descent())
	test.That(t, face.SpaceAdvance() > 0)

	g, ok := face.Glyph('A')
	test.That(t, ok)
	test.That(t, g.Advance > 0)
	test.That(t, g.Width > 0 && g.Height > 0)
	test.That(t, g.BearingY > 0 && g.BearingY <= face.Ascent()+1)
	test.That(t, g.Tex.In(face.Atlas().Bounds()))
	test.T(t, g.Tex.Dx(), g.Width)

	again, ok := face.Glyph('A')
	test.That(t, ok)
	test.T(t, again, g)

	space, ok := face.Glyph(' ')
	test.That(t, ok)
	test.T(t, space.Advance, face.SpaceAdvance())
	test.That(t, space.Tex.Empty())
}

func TestFaceMissingGlyph(t *testing.T) {
	face, err := Open("builtin:goregular", "", 12)
	test.Error(t, err)
	_, ok := face.Glyph('\U0001F600')
	test.That(t, !ok)
}

func TestFaceAtlasGrows(t *testing.T) {
	face, err := Open("builtin:gobold", "", 48)
	test.Error(t, err)
	initial := face.Atlas().Bounds()

	var drawn []rune
	for r := rune('!'); r <= '~'; r++ {
		g, ok := face.Glyph(r)
		test.That(t, ok, string(r))
		if g.Tex.Empty() {
			continue
		}
		test.That(t, g.Tex.In(face.Atlas().Bounds()), string(r))
		drawn = append(drawn, r)
	}
	grown := face.Atlas().Bounds()
	test.That(t, grown.Dy() > initial.Dy(), "atlas should have grown")

	// 扩容后之前分配的矩形仍然有效且互不重叠
	seen := map[rune]bool{}
	for _, a := range drawn {
		ga, _ := face.Glyph(a)
		for _, b := range drawn {
			if a == b || seen[b] {
				continue
			}
			gb, _ := face.Glyph(b)
			test.That(t, !ga.Tex.Overlaps(gb.Tex), string(a), string(b))
		}
		seen[a] = true
	}
}

func TestNewFaceErrors(t *testing.T) {
	_, err := NewFace("bad", []byte("not a font"), 12)
	test.That(t, err != nil)
	_, err = NewFace("zero", goregular.TTF, 0)
	test.That(t, err != nil)
}
