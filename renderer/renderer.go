package renderer

import (
	"github.com/ByLCY/glyphbox/layout"
)

// Renderer 将排版好的文本输出为最终文件，例如 PDF 或 PNG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(t *layout.Text) ([]byte, error)
}

// Page returns the area a renderer should cover for t: the union of the
// layout box and the laid out lines, grown by margin on every side.
func Page(t *layout.Text, margin int) layout.Rect {
	area := t.Bounds()
	if b := t.Box(); b.Width > 0 && b.Height > 0 {
		area = area.Union(layout.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
	}
	if area.Width <= 0 || area.Height <= 0 {
		return layout.Rect{}
	}
	return layout.Rect{
		X:      area.X - margin,
		Y:      area.Y - margin,
		Width:  area.Width + 2*margin,
		Height: area.Height + 2*margin,
	}
}
