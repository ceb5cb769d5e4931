// Package rasterrenderer draws laid out text into a PNG using the glyph
// atlases of the fonts.
package rasterrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/layout"
	"github.com/ByLCY/glyphbox/metrics"
	"github.com/ByLCY/glyphbox/renderer"
)

// Options configures the raster renderer.
type Options struct {
	// Margin around the page content, in pixels.
	Margin int
	// Background fills the image first; nil leaves it transparent.
	Background color.Color
	// Ink colors glyphs whose run carries no color.
	Ink color.RGBA
}

// Renderer composites atlas masks into an RGBA image.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with a white background and dark gray ink.
func NewRenderer() *Renderer {
	return NewRendererWithOptions(Options{
		Background: color.White,
		Ink:        color.RGBA{R: 30, G: 30, B: 30, A: 255},
	})
}

// NewRendererWithOptions creates a renderer with opts.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render encodes Image(t) as PNG.
func (r *Renderer) Render(t *layout.Text) ([]byte, error) {
	img, err := r.Image(t)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Image draws t. Layout space is y up, image space y down: the page's top
// edge becomes row 0.
func (r *Renderer) Image(t *layout.Text) (*image.RGBA, error) {
	if t == nil {
		return nil, fmt.Errorf("待渲染的文本为空")
	}
	page := renderer.Page(t, r.opts.Margin)
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("缺少可渲染的内容")
	}
	img := image.NewRGBA(image.Rect(0, 0, page.Width, page.Height))
	if r.opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)
	}
	c := &compositor{dst: img, page: page, ink: r.opts.Ink}
	t.Render(c)
	if c.err != nil {
		return nil, c.err
	}
	logger.Get().Debug("raster: rendered", "glyphs", c.drawn, "width", page.Width, "height", page.Height)
	return img, nil
}

type compositor struct {
	dst   *image.RGBA
	page  layout.Rect
	ink   color.RGBA
	err   error
	drawn int
}

func (c *compositor) DrawGlyph(q layout.Quad) {
	if c.err != nil {
		return
	}
	src, ok := q.Font.(metrics.AtlasSource)
	if !ok {
		c.err = fmt.Errorf("字体 %s 没有字形图集，无法输出位图", q.Font.Name())
		return
	}
	atlas := src.Atlas()
	x0 := q.Rect.X - c.page.X
	y0 := c.page.Y + c.page.Height - (q.Rect.Y + q.Rect.Height)
	rows := q.Tex.Dy()
	for i := 0; i < rows; i++ {
		col := c.ink
		if q.Colored() {
			f := 0.0
			if rows > 1 {
				f = float64(i) / float64(rows-1)
			}
			col = layout.Lerp(q.TopLeft.RGBA, q.BottomLeft.RGBA, f)
		}
		row := image.Rect(x0, y0+i, x0+q.Tex.Dx(), y0+i+1)
		draw.DrawMask(c.dst, row, image.NewUniform(col), image.Point{}, atlas, image.Pt(q.Tex.Min.X, q.Tex.Min.Y+i), draw.Over)
	}
	c.drawn++
}
