package sheet

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor 解析 #rgb、#rrggbb、#rrggbbaa 或 SVG 颜色名。
func ParseColor(value string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return color.RGBA{}, fmt.Errorf("颜色值为空")
	}
	if !strings.HasPrefix(v, "#") {
		if c, ok := colornames.Map[v]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("未知的颜色名：%s", value)
	}
	hex := v[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	// 十六进制写法是非预乘的
	c := color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}
