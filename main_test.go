package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const demoSheet = `sheet T {
  box { x: 0 y: 0 width: 200 height: 100 }
  style { color: "#0f62fe" }
  text { "Hello ${name}" }
}`

func writeSheet(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "t.gbx")
	if err := os.WriteFile(path, []byte(demoSheet), 0o644); err != nil {
		t.Fatalf("写入样式表失败: %v", err)
	}
	return dir, path
}

func TestRunWritesPDFAndDebug(t *testing.T) {
	dir, input := writeSheet(t)
	output := filepath.Join(dir, "out", "t.pdf")
	debug := filepath.Join(dir, "debug", "layout.json")

	r, err := newRenderer(output, 4, true)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	if err := run(input, output, debug, map[string]any{"name": "Ada"}, r); err != nil {
		t.Fatalf("run: %v", err)
	}
	pdf, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}

	raw, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
}

func TestRunWritesPNG(t *testing.T) {
	dir, input := writeSheet(t)
	output := filepath.Join(dir, "t.png")
	r, err := newRenderer(output, 0, false)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	if err := run(input, output, "", nil, r); err != nil {
		t.Fatalf("run: %v", err)
	}
	png, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
}

func TestRunErrors(t *testing.T) {
	dir, input := writeSheet(t)
	if _, err := newRenderer(filepath.Join(dir, "t.svg"), 0, false); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if err := run(input, filepath.Join(dir, "t.pdf"), "", nil, nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	r, _ := newRenderer(filepath.Join(dir, "t.pdf"), 0, false)
	if err := run(filepath.Join(dir, "missing.gbx"), filepath.Join(dir, "t.pdf"), "", nil, r); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}
