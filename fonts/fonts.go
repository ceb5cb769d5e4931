// Package fonts loads TrueType/OpenType fonts and exposes them as
// metrics.Font values backed by a glyph atlas.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// ErrUnknownBuiltin is returned for a builtin: source that names no bundled font.
var ErrUnknownBuiltin = errors.New("fonts: unknown built-in font")

var builtins = map[string][]byte{
	"goregular":         goregular.TTF,
	"gobold":            gobold.TTF,
	"goitalic":          goitalic.TTF,
	"gobolditalic":      gobolditalic.TTF,
	"gomedium":          gomedium.TTF,
	"gomediumitalic":    gomediumitalic.TTF,
	"gomono":            gomono.TTF,
	"gomonobold":        gomonobold.TTF,
	"gomonoitalic":      gomonoitalic.TTF,
	"gomonobolditalic":  gomonobolditalic.TTF,
	"gosmallcaps":       gosmallcaps.TTF,
	"gosmallcapsitalic": gosmallcapsitalic.TTF,
}

// Builtins lists the names accepted after the builtin: prefix.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 返回字体字节。src 可写为 "builtin:goregular"（或 "built-in:"），
// 其余视为文件路径，相对路径基于 baseDir 解析。
func Load(src, baseDir string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if data, ok := builtins[strings.ToLower(name)]; ok {
			return data, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	path := src
	if baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用相对字体路径：%s（请改用 builtin:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

// Open loads src and returns a face of the given pixel size.
func Open(src, baseDir string, size float64) (*Face, error) {
	data, err := Load(src, baseDir)
	if err != nil {
		return nil, err
	}
	return NewFace(src, data, size)
}
