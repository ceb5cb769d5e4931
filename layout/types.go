package layout

import (
	"fmt"
	"image"
	"strings"

	"github.com/ByLCY/glyphbox/metrics"
)

// Box is the target rectangle in pixels. Y is the bottom edge; y grows upwards.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"` // <= 0 disables wrapping
	Height int `json:"height"`
}

// Rect is an axis aligned rectangle, (X, Y) being its bottom-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the point lies inside r (right and top edges excluded).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest rectangle covering r and o. Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Width <= 0 && r.Height <= 0 {
		return o
	}
	if o.Width <= 0 && o.Height <= 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Glyph 是一个已定位的字符。X/Y 为落笔点（基线位置），排版完成后才有效。
type Glyph struct {
	Rune     rune            `json:"rune"`
	Index    int             `json:"index"` // 去除标记后文本中的字符下标
	Run      int             `json:"run"`
	Advance  int             `json:"advance"`
	BearingX int             `json:"bearingX"`
	BearingY int             `json:"bearingY"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Kerning  int             `json:"kerning"` // 相对同一单词内前一个字形
	Tex      image.Rectangle `json:"-"`
	X        int             `json:"x"`
	Y        int             `json:"y"`
}

// Bounds returns the ink rectangle of a positioned glyph.
func (g Glyph) Bounds() Rect {
	return Rect{
		X:      g.X + g.BearingX,
		Y:      g.Y + g.BearingY - g.Height,
		Width:  g.Width,
		Height: g.Height,
	}
}

// Word is a break-free glyph range [First, Last) of the glyph buffer.
type Word struct {
	First   int `json:"first"`
	Last    int `json:"last"`
	Width   int `json:"width"`
	Ascent  int `json:"ascent"`
	Descent int `json:"descent"`
	Gap     int `json:"gap"` // 两端对齐分配到词后的额外像素

	font     metrics.Font
	trailing int
	measured bool
}

// TrailingGap is the space that follows the word when another word comes
// after it on the same line: one space advance in the font of its last glyph.
func (w *Word) TrailingGap() int {
	if !w.measured {
		w.measured = true
		w.trailing = 0
		if w.font != nil {
			w.trailing = w.font.SpaceAdvance()
		}
	}
	return w.trailing
}

// Line is a word range [First, Last) of the word buffer.
type Line struct {
	First          int  `json:"first"`
	Last           int  `json:"last"`
	Start          int  `json:"start"` // 行首字符下标
	Width          int  `json:"width"` // 不含行尾空隙与对齐补白
	Slack          int  `json:"slack"` // 两端对齐分配的像素总和
	Ascent         int  `json:"ascent"`
	Descent        int  `json:"descent"`
	ParagraphBreak bool `json:"paragraphBreak"`
	Justified      bool `json:"justified"`
	X              int  `json:"x"`
	Baseline       int  `json:"baseline"`
}

// Words returns the number of words on the line.
func (l Line) Words() int { return l.Last - l.First }

// Bounds returns the line box including justification slack.
func (l Line) Bounds() Rect {
	return Rect{X: l.X, Y: l.Baseline - l.Descent, Width: l.Width + l.Slack, Height: l.Ascent + l.Descent}
}

// HAlign is the horizontal alignment of each line.
type HAlign uint8

const (
	Left HAlign = iota
	Right
	Centered
	Justified
)

func (a HAlign) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case Centered:
		return "centered"
	case Justified:
		return "justified"
	default:
		return fmt.Sprintf("HAlign(%d)", uint8(a))
	}
}

// ParseHAlign accepts left/right/center(ed)/justify/justified.
func ParseHAlign(s string) (HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start", "":
		return Left, nil
	case "right", "end":
		return Right, nil
	case "center", "centered":
		return Centered, nil
	case "justify", "justified":
		return Justified, nil
	}
	return Left, fmt.Errorf("未知的水平对齐方式：%s", s)
}

// VAlign is the vertical alignment of the whole block.
type VAlign uint8

const (
	Top VAlign = iota
	Bottom
	Middle
	Baseline
)

func (a VAlign) String() string {
	switch a {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Middle:
		return "centered"
	case Baseline:
		return "baseline"
	default:
		return fmt.Sprintf("VAlign(%d)", uint8(a))
	}
}

// ParseVAlign accepts top/bottom/center(ed)/middle/baseline.
func ParseVAlign(s string) (VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "center", "centered", "middle":
		return Middle, nil
	case "baseline":
		return Baseline, nil
	}
	return Top, fmt.Errorf("未知的垂直对齐方式：%s", s)
}
