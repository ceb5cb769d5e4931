// Package binding fills ${path} placeholders in sheet text with JSON data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/glyphbox/internal/logger"
)

var placeholder = regexp.MustCompile(`\$\{\s*([^}]*?)\s*\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 路径可包含数组下标，例如 ${items[0].name}。
//
// 无法解析的占位符替换为空串。替换后的值不做转义，值中的 {key:value} 仍按标记解析。
func Interpolate(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		groups := placeholder.FindStringSubmatch(match)
		if len(groups) < 2 || groups[1] == "" {
			logger.Get().Debug("binding: empty placeholder", "placeholder", match)
			return ""
		}
		val, ok := Lookup(data, groups[1])
		if !ok {
			logger.Get().Debug("binding: unresolved placeholder", "path", groups[1])
			return ""
		}
		return format(val)
	})
}

// Lookup resolves a dotted path with optional [index] steps against
// decoded JSON (maps and slices).
func Lookup(data any, path string) (any, bool) {
	steps := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
	if len(steps) == 0 {
		return nil, false
	}
	current := data
	for _, step := range steps {
		switch c := current.(type) {
		case map[string]any:
			val, ok := c[strings.TrimSpace(step)]
			if !ok {
				return nil, false
			}
			current = val
		case []any:
			idx, err := strconv.Atoi(strings.TrimSpace(step))
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			current = c[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// JSON 数字统一为 float64，整数不输出小数部分
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
