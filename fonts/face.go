package fonts

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/metrics"
)

const (
	atlasWidth  = 256
	atlasHeight = 64
	atlasPad    = 1
)

// Face is a sized font. Glyph masks are rasterised on first use into a
// shared alpha atlas that grows as needed. Safe for concurrent use.
type Face struct {
	name string
	size float64
	data []byte
	font *opentype.Font

	ascent  int
	descent int
	space   int

	mu     sync.Mutex
	face   font.Face
	glyphs map[rune]cachedGlyph
	atlas  *image.Alpha
	penX   int
	penY   int
	rowH   int
}

type cachedGlyph struct {
	glyph metrics.Glyph
	ok    bool
}

var (
	_ metrics.Font        = (*Face)(nil)
	_ metrics.AtlasSource = (*Face)(nil)
)

// NewFace parses data and returns a face of size pixels.
func NewFace(name string, data []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("字体 %s 的字号必须大于 0", name)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	// DPI 72 时 Size 即像素
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("创建字体 %s 失败: %w", name, err)
	}
	m := face.Metrics()
	space, _ := face.GlyphAdvance(' ')
	return &Face{
		name:    name,
		size:    size,
		data:    data,
		font:    f,
		face:    face,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
		space:   space.Round(),
		glyphs:  map[rune]cachedGlyph{},
		atlas:   image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasHeight)),
	}, nil
}

func (f *Face) Name() string { return f.name }

// Size returns the pixel size the face was created with.
func (f *Face) Size() float64 { return f.size }

// Data returns the raw font file.
func (f *Face) Data() []byte { return f.data }

func (f *Face) Ascent() int       { return f.ascent }
func (f *Face) Descent() int      { return f.descent }
func (f *Face) SpaceAdvance() int { return f.space }

// Kern returns the pair adjustment in whole pixels.
func (f *Face) Kern(prev, next rune) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Kern(prev, next).Round()
}

// Glyph returns the metrics of r, rasterising it into the atlas the first
// time. Runes mapped to the .notdef glyph are reported as missing.
func (f *Face) Glyph(r rune) (metrics.Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.glyphs[r]; ok {
		return c.glyph, c.ok
	}
	g, ok := f.rasterise(r)
	f.glyphs[r] = cachedGlyph{glyph: g, ok: ok}
	return g, ok
}

// Atlas returns the current atlas. A later Glyph call may replace it with a
// larger copy; rectangles handed out earlier stay valid in the new image.
func (f *Face) Atlas() *image.Alpha {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.atlas
}

func (f *Face) rasterise(r rune) (metrics.Glyph, bool) {
	if idx, err := f.font.GlyphIndex(nil, r); err != nil || idx == 0 {
		return metrics.Glyph{}, false
	}
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return metrics.Glyph{}, false
	}
	g := metrics.Glyph{
		Advance:  advance.Round(),
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Width:    dr.Dx(),
		Height:   dr.Dy(),
	}
	if !dr.Empty() {
		g.Tex = f.pack(dr.Size())
		draw.Draw(f.atlas, g.Tex, mask, maskp, draw.Src)
	}
	return g, true
}

// pack reserves a size rectangle using shelf packing.
func (f *Face) pack(size image.Point) image.Rectangle {
	w, h := size.X+atlasPad, size.Y+atlasPad
	bounds := f.atlas.Bounds()
	if f.penX+w > bounds.Dx() {
		f.penX = 0
		f.penY += f.rowH
		f.rowH = 0
	}
	if w > bounds.Dx() || f.penY+h > bounds.Dy() {
		f.grow(w, f.penY+h)
	}
	r := image.Rect(f.penX, f.penY, f.penX+size.X, f.penY+size.Y)
	f.penX += w
	f.rowH = max(f.rowH, h)
	return r
}

func (f *Face) grow(minW, minH int) {
	old := f.atlas.Bounds()
	w, h := old.Dx(), old.Dy()
	for w < minW {
		w *= 2
	}
	for h < minH {
		h *= 2
	}
	next := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(next, old, f.atlas, image.Point{}, draw.Src)
	f.atlas = next
	logger.Get().Debug("fonts: atlas grown", "font", f.name, "width", w, "height", h)
}
