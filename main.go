package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"

	"github.com/ByLCY/glyphbox/layout"
	"github.com/ByLCY/glyphbox/renderer"
	canvasrenderer "github.com/ByLCY/glyphbox/renderer/canvas"
	rasterrenderer "github.com/ByLCY/glyphbox/renderer/raster"
	"github.com/ByLCY/glyphbox/sheet"
)

var defaultInk = color.RGBA{R: 30, G: 30, B: 30, A: 255}

// Render is the root command: lay out a style sheet and write it out.
type Render struct {
	Output  string `short:"o" default:"" desc:"输出路径（.pdf 或 .png），默认与样式表同名的 PDF"`
	Debug   string `default:"" desc:"布局调试 JSON 输出路径"`
	Data    string `default:"" desc:"绑定到文本的 JSON 数据"`
	Margin  int    `default:"16" desc:"页边距（像素）"`
	Guides  bool   `desc:"在 PDF 中绘制布局框与行框"`
	Verbose bool   `short:"v" desc:"输出调试日志"`
	Input   string `index:"0" desc:"样式表文件（.gbx）"`
}

func main() {
	root := argp.NewCmd(&Render{}, "glyphbox: rich text layout to PDF/PNG")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var inputData any
	if cmd.Data != "" {
		if err := json.Unmarshal([]byte(cmd.Data), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	output := cmd.Output
	if output == "" {
		output = strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input)) + ".pdf"
	}
	r, err := newRenderer(output, cmd.Margin, cmd.Guides)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := run(cmd.Input, output, cmd.Debug, inputData, r); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", output)
	return nil
}

// newRenderer picks the renderer from the output extension.
func newRenderer(output string, margin int, guides bool) (renderer.Renderer, error) {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".pdf":
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			Margin: margin,
			Ink:    defaultInk,
			Guides: guides,
			Title:  strings.TrimSuffix(filepath.Base(output), filepath.Ext(output)),
		}), nil
	case ".png":
		return rasterrenderer.NewRendererWithOptions(rasterrenderer.Options{
			Margin:     margin,
			Background: color.White,
			Ink:        defaultInk,
		}), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式：%s（仅支持 .pdf 与 .png）", output)
	}
}

// run 串联解析、排版与渲染。
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	s, err := sheet.Load(inputPath)
	if err != nil {
		return err
	}
	text, err := s.NewText(data)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(text, debugPath); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	out, err := r.Render(text)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(text *layout.Text, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(text, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
