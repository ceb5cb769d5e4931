// Package sheet turns a parsed style sheet into fonts, colors, box settings
// and a configured layout.Text.
package sheet

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/glyphbox/binding"
	"github.com/ByLCY/glyphbox/dsl"
	"github.com/ByLCY/glyphbox/fonts"
	"github.com/ByLCY/glyphbox/internal/logger"
	"github.com/ByLCY/glyphbox/layout"
	"github.com/ByLCY/glyphbox/markup"
	"github.com/ByLCY/glyphbox/metrics"
)

// ErrNoFont is returned when a sheet refers to a font it never declares.
var ErrNoFont = errors.New("sheet: font not declared")

const (
	defaultFontName = "body"
	defaultFontSrc  = "builtin:goregular"
	defaultFontSize = 16.0
)

// Style is the style section as written.
type Style struct {
	Kind   markup.Kind
	Font   string
	Top    string
	Bottom string
	Plain  bool
}

// Sheet is a resolved style sheet. It implements markup.Resolver.
type Sheet struct {
	Name    string
	BaseDir string
	Fonts   map[string]*fonts.Face
	Colors  map[string]color.RGBA
	Options layout.Options
	Style   Style
	Text    string
}

var _ markup.Resolver = (*Sheet)(nil)

// Load 读取并解析 path 指向的样式表，字体相对路径基于其所在目录。
func Load(path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开样式表 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析样式表失败: %w", err)
	}
	return Build(doc, filepath.Dir(path))
}

// Build resolves doc. Resources are collected first so that box lengths in
// x units can refer to the base font size.
func Build(doc *dsl.Document, baseDir string) (*Sheet, error) {
	if doc == nil {
		return nil, fmt.Errorf("样式表为空")
	}
	s := &Sheet{
		Name:    doc.Name,
		BaseDir: baseDir,
		Fonts:   map[string]*fonts.Face{},
		Colors:  map[string]color.RGBA{},
	}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		if err := s.collectResources(section.Resources.Block); err != nil {
			return nil, err
		}
	}
	for _, section := range doc.Sections {
		switch {
		case section.Style != nil:
			if err := s.collectStyle(section.Style.Block); err != nil {
				return nil, err
			}
		case section.Text != nil:
			s.Text += collectText(section.Text.Block)
		}
	}
	base, err := s.baseFont()
	if err != nil {
		return nil, err
	}
	for _, section := range doc.Sections {
		if section.Box == nil {
			continue
		}
		if err := s.collectBox(section.Box.Block, base.Size()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sheet) collectResources(block *dsl.Block) error {
	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		cmd := stmt.Command
		switch cmd.Name {
		case "font":
			face, err := s.loadFont(cmd)
			if err != nil {
				return err
			}
			s.Fonts[face.Name()] = face
		case "color":
			if len(cmd.Args) < 2 {
				return fmt.Errorf("第 %d 行：color 需要名称和值", cmd.Pos.Line)
			}
			c, err := ParseColor(cmd.Args[len(cmd.Args)-1].Value)
			if err != nil {
				return fmt.Errorf("第 %d 行：%w", cmd.Pos.Line, err)
			}
			s.Colors[cmd.Args[0].Value] = c
		default:
			logger.Get().Debug("ignoring resource", "name", cmd.Name, "line", cmd.Pos.Line)
		}
	}
	return nil
}

func (s *Sheet) loadFont(cmd *dsl.Command) (*fonts.Face, error) {
	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("第 %d 行：font 缺少名称", cmd.Pos.Line)
	}
	name := cmd.Args[0].Value
	src := defaultFontSrc
	size := defaultFontSize
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch stmt.Assignment.Key {
			case "src":
				src = stmt.Assignment.Value.Text()
			case "size":
				l, err := ParseLength(stmt.Assignment.Value.Text())
				if err != nil {
					return nil, fmt.Errorf("字体 %s：%w", name, err)
				}
				size = l.Pixels(defaultFontSize)
			}
		}
	}
	data, err := fonts.Load(src, s.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("字体 %s：%w", name, err)
	}
	face, err := fonts.NewFace(name, data, size)
	if err != nil {
		return nil, fmt.Errorf("字体 %s：%w", name, err)
	}
	return face, nil
}

func (s *Sheet) collectStyle(block *dsl.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		a := stmt.Assignment
		value := a.Value.Text()
		switch strings.ToLower(a.Key) {
		case "kind":
			switch strings.ToLower(value) {
			case "default":
				s.Style.Kind = markup.KindDefault
			case "simple":
				s.Style.Kind = markup.KindSimple
			default:
				return fmt.Errorf("第 %d 行：未知的样式类型 %s", a.Pos.Line, value)
			}
		case "font":
			s.Style.Font = value
		case "top":
			s.Style.Top = value
		case "bottom":
			s.Style.Bottom = value
		case "color":
			s.Style.Top, s.Style.Bottom = value, value
		case "plain":
			plain, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("第 %d 行：plain 需要布尔值: %w", a.Pos.Line, err)
			}
			s.Style.Plain = plain
		default:
			logger.Get().Debug("ignoring style key", "key", a.Key, "line", a.Pos.Line)
		}
	}
	return nil
}

func (s *Sheet) collectBox(block *dsl.Block, fontSize float64) error {
	if block == nil {
		return nil
	}
	o := &s.Options
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		a := stmt.Assignment
		value := a.Value.Text()
		var err error
		switch strings.ToLower(a.Key) {
		case "x":
			o.Box.X, err = pixels(value, fontSize)
		case "y":
			o.Box.Y, err = pixels(value, fontSize)
		case "width":
			o.Box.Width, err = pixels(value, fontSize)
		case "height":
			o.Box.Height, err = pixels(value, fontSize)
		case "leading":
			o.Leading, err = pixels(value, fontSize)
		case "align":
			o.HAlign, err = layout.ParseHAlign(value)
		case "valign":
			o.VAlign, err = layout.ParseVAlign(value)
		case "justify":
			o.Justified, err = strconv.ParseBool(value)
		default:
			logger.Get().Debug("ignoring box key", "key", a.Key, "line", a.Pos.Line)
		}
		if err != nil {
			return fmt.Errorf("第 %d 行 %s：%w", a.Pos.Line, a.Key, err)
		}
	}
	return nil
}

func pixels(value string, fontSize float64) (int, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.Int(fontSize), nil
}

func collectText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var sb strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			sb.WriteString(string(stmt.Text.Value))
		}
	}
	return sb.String()
}

// baseFont picks the style font, then "body", then any declared font. A
// sheet without fonts gets the built-in regular face.
func (s *Sheet) baseFont() (*fonts.Face, error) {
	if s.Style.Font != "" {
		face, ok := s.Fonts[s.Style.Font]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoFont, s.Style.Font)
		}
		return face, nil
	}
	if face, ok := s.Fonts[defaultFontName]; ok {
		return face, nil
	}
	var first *fonts.Face
	for name, face := range s.Fonts {
		// map 遍历无序，取名称最小者保证结果稳定
		if first == nil || name < first.Name() {
			first = face
		}
	}
	if first != nil {
		return first, nil
	}
	data, err := fonts.Load(defaultFontSrc, "")
	if err != nil {
		return nil, err
	}
	face, err := fonts.NewFace(defaultFontName, data, defaultFontSize)
	if err != nil {
		return nil, err
	}
	s.Fonts[defaultFontName] = face
	return face, nil
}

// Color resolves a declared color name, then a hex value or SVG color name.
func (s *Sheet) Color(name string) (color.RGBA, error) {
	if c, ok := s.Colors[name]; ok {
		return c, nil
	}
	return ParseColor(name)
}

// Font resolves a declared font name.
func (s *Sheet) Font(name string) (metrics.Font, error) {
	face, ok := s.Fonts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFont, name)
	}
	return face, nil
}

// Factory builds the style factory from the style section. Unset colors
// stay invalid and fall back to the renderer's default ink.
func (s *Sheet) Factory() (markup.Factory, error) {
	base, err := s.baseFont()
	if err != nil {
		return markup.Factory{}, err
	}
	top, err := s.optionalColor(s.Style.Top)
	if err != nil {
		return markup.Factory{}, err
	}
	if s.Style.Kind == markup.KindSimple {
		return markup.Simple(top, base), nil
	}
	bottom, err := s.optionalColor(s.Style.Bottom)
	if err != nil {
		return markup.Factory{}, err
	}
	return markup.Default(top, bottom, base), nil
}

func (s *Sheet) optionalColor(name string) (markup.Color, error) {
	if name == "" {
		return markup.Color{}, nil
	}
	c, err := s.Color(name)
	if err != nil {
		return markup.Color{}, err
	}
	return markup.RGBA(c), nil
}

// NewText returns a Text configured from the sheet with data interpolated
// into its content.
func (s *Sheet) NewText(data any) (*layout.Text, error) {
	t := layout.NewText()
	if s.Style.Plain {
		t = layout.NewPlainText()
	}
	fac, err := s.Factory()
	if err != nil {
		return nil, err
	}
	if err := t.SetResolver(s); err != nil {
		return nil, err
	}
	if err := t.SetFactory(fac); err != nil {
		return nil, err
	}
	t.Apply(s.Options)
	if err := t.SetText(binding.Interpolate(s.Text, data)); err != nil {
		return nil, fmt.Errorf("解析文本标记失败: %w", err)
	}
	return t, nil
}
