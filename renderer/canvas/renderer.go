package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/layout"
	"github.com/ByLCY/glyphbox/metrics"
	"github.com/ByLCY/glyphbox/renderer"
)

const (
	// 布局以 96 dpi 像素为单位，canvas 以毫米为单位，字号以 pt 为单位。
	pxToMm = 25.4 / 96
	pxToPt = 72.0 / 96

	guideWidth = 0.1
)

// Outline is a font whose source bytes can be embedded in a PDF.
type Outline interface {
	metrics.Font
	Data() []byte
	Size() float64
}

// Options configures the canvas renderer.
type Options struct {
	// Margin around the page content, in pixels.
	Margin int
	// Ink colors glyphs whose run carries no color.
	Ink color.RGBA
	// Guides outlines the layout box and every line box.
	Guides bool
	Title  string
}

// Renderer draws laid out text into a PDF via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu   sync.Mutex
	families map[metrics.Font]*canvas.FontFamily
	faces    map[faceKey]*canvas.FontFace
}

type faceKey struct {
	font metrics.Font
	col  color.RGBA
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with a dark gray ink and no margin.
func NewRenderer() *Renderer {
	return NewRendererWithOptions(Options{Ink: color.RGBA{R: 30, G: 30, B: 30, A: 255}})
}

// NewRendererWithOptions creates a renderer with opts.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		opts:     opts,
		families: map[metrics.Font]*canvas.FontFamily{},
		faces:    map[faceKey]*canvas.FontFace{},
	}
}

// Render renders t into a single-page PDF sized to its content.
func (r *Renderer) Render(t *layout.Text) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("待渲染的文本为空")
	}
	page := renderer.Page(t, r.opts.Margin)
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("缺少可渲染的内容")
	}
	w, h := float64(page.Width)*pxToMm, float64(page.Height)*pxToMm

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.opts.Title, "", "", "", "glyphbox")

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI) // 与布局一致：原点在左下角，y 轴向上

	if r.opts.Guides {
		r.drawGuides(ctx, t, page)
	}
	d := &drawer{r: r, ctx: ctx, page: page}
	t.Render(d)
	if d.err != nil {
		return nil, d.err
	}
	logger.Get().Debug("canvas: rendered", "glyphs", d.drawn, "width_mm", w, "height_mm", h)

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawer adapts the canvas context to layout.GlyphRenderer. The first
// error stops further drawing.
type drawer struct {
	r     *Renderer
	ctx   *canvas.Context
	page  layout.Rect
	err   error
	drawn int
}

func (d *drawer) DrawGlyph(q layout.Quad) {
	if d.err != nil {
		return
	}
	col := d.r.opts.Ink
	if q.Colored() {
		// PDF 文本只能单色填充，取字形上下边缘颜色的中值
		col = layout.Lerp(q.TopLeft.RGBA, q.BottomLeft.RGBA, 0.5)
	}
	face, err := d.r.fontFace(q.Font, col)
	if err != nil {
		d.err = err
		return
	}
	x, y := d.toMm(q.Origin.X, q.Origin.Y)
	d.ctx.DrawText(x, y, canvas.NewTextLine(face, string(q.Rune), canvas.Left))
	d.drawn++
}

func (d *drawer) toMm(x, y int) (float64, float64) {
	return float64(x-d.page.X) * pxToMm, float64(y-d.page.Y) * pxToMm
}

func (r *Renderer) drawGuides(ctx *canvas.Context, t *layout.Text, page layout.Rect) {
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeWidth(guideWidth)
	rect := func(rc layout.Rect) {
		ctx.DrawPath(float64(rc.X-page.X)*pxToMm, float64(rc.Y-page.Y)*pxToMm,
			canvas.Rectangle(float64(rc.Width)*pxToMm, float64(rc.Height)*pxToMm))
	}
	if b := t.Box(); b.Width > 0 && b.Height > 0 {
		ctx.SetStrokeColor(canvas.Red)
		rect(layout.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
	}
	ctx.SetStrokeColor(canvas.Lightgray)
	for _, l := range t.Lines() {
		rect(l.Bounds())
	}
}

// fontFace returns a cached face of font in col, loading the font into its
// own family on first use.
func (r *Renderer) fontFace(font metrics.Font, col color.RGBA) (*canvas.FontFace, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	key := faceKey{font: font, col: col}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	outline, ok := font.(Outline)
	if !ok {
		return nil, fmt.Errorf("字体 %s 不提供字体数据，无法输出 PDF", font.Name())
	}
	family, ok := r.families[font]
	if !ok {
		family = canvas.NewFontFamily(outline.Name())
		if err := family.LoadFont(outline.Data(), 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", outline.Name(), err)
		}
		r.families[font] = family
	}
	face := family.Face(outline.Size()*pxToPt, col, canvas.FontRegular, canvas.FontNormal)
	r.faces[key] = face
	return face, nil
}
