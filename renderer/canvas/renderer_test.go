package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/ByLCY/glyphbox/fonts"
	"github.com/ByLCY/glyphbox/layout"
	"github.com/ByLCY/glyphbox/markup"
	"github.com/ByLCY/glyphbox/metrics"
)

type colorResolver map[string]color.RGBA

func (r colorResolver) Color(name string) (color.RGBA, error) {
	if c, ok := r[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %s", name)
}

func (colorResolver) Font(name string) (metrics.Font, error) {
	return nil, fmt.Errorf("unknown font %s", name)
}

// bareFont has metrics but no outline data.
type bareFont struct{}

func (bareFont) Name() string { return "bare" }
func (bareFont) Glyph(rune) (metrics.Glyph, bool) {
	return metrics.Glyph{Advance: 10, BearingY: 8, Width: 8, Height: 10}, true
}
func (bareFont) Kern(rune, rune) int { return 0 }
func (bareFont) SpaceAdvance() int   { return 4 }
func (bareFont) Ascent() int         { return 8 }
func (bareFont) Descent() int        { return 2 }

func newText(t *testing.T, font metrics.Font, content string) *layout.Text {
	t.Helper()
	txt := layout.NewText()
	txt.SetBounds(0, 0, 200, 100)
	if err := txt.SetResolver(colorResolver{"red": {R: 255, A: 255}, "blue": {B: 255, A: 255}}); err != nil {
		t.Fatalf("设置 resolver 失败: %v", err)
	}
	if err := txt.SetFactory(markup.Simple(markup.Color{}, font)); err != nil {
		t.Fatalf("设置样式失败: %v", err)
	}
	if err := txt.SetText(content); err != nil {
		t.Fatalf("设置文本失败: %v", err)
	}
	return txt
}

func regular(t *testing.T) *fonts.Face {
	t.Helper()
	face, err := fonts.Open("builtin:goregular", "", 16)
	if err != nil {
		t.Fatalf("加载字体失败: %v", err)
	}
	return face
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRendererWithOptions(Options{Margin: 8, Title: "demo"})
	out, err := r.Render(newText(t, regular(t), "hello {color:red}world"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderCachesFacesPerColor(t *testing.T) {
	r := NewRenderer()
	txt := newText(t, regular(t), "aa {color:red}bb {color:blue}cc {color:red}dd")
	for i := 0; i < 2; i++ {
		if _, err := r.Render(txt); err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
	}
	// 默认墨色、红、蓝各一个 face，同一字体只加载一次
	if len(r.faces) != 3 {
		t.Fatalf("expected 3 cached faces, got %d", len(r.faces))
	}
	if len(r.families) != 1 {
		t.Fatalf("expected 1 font family, got %d", len(r.families))
	}
}

func TestRenderGuides(t *testing.T) {
	r := NewRendererWithOptions(Options{Guides: true})
	out, err := r.Render(newText(t, regular(t), "line one\nline two"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderRequiresFontData(t *testing.T) {
	_, err := NewRenderer().Render(newText(t, bareFont{}, "abc"))
	if err == nil || !strings.Contains(err.Error(), "bare") {
		t.Fatalf("expected font data error, got %v", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := NewRenderer().Render(nil); err == nil {
		t.Fatalf("expected error for nil text")
	}
	if _, err := NewRenderer().Render(layout.NewText()); err == nil {
		t.Fatalf("expected error for text without box or lines")
	}
}
