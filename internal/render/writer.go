package render

import (
	"context"
	"fanhao/internal/domain/site"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RenderError 是单个页面的渲染或写入失败，不影响其他页面。
type RenderError struct {
	Path     string
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.Path, e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

type Writer struct {
	Renderer Renderer
	Resolver *site.Resolver
	OutDir   string
	Now      time.Time
}

func NewWriter(r Renderer, res *site.Resolver, outDir string, now time.Time) *Writer {
	if now.IsZero() {
		now = time.Now()
	}
	return &Writer{Renderer: r, Resolver: res, OutDir: outDir, Now: now}
}

// Write 渲染页面并写到主路径和所有别名路径，内容完全相同。
func (w *Writer) Write(ctx context.Context, page site.Page) error {
	if err := ctx.Err(); err != nil {
		return &RenderError{Path: page.Path, Template: page.Template, Err: err}
	}
	out, err := w.Renderer.Render(page.Template, w.view(page))
	if err != nil {
		return &RenderError{Path: page.Path, Template: page.Template, Err: err}
	}
	for _, p := range page.Outputs() {
		if err := writeFile(w.OutDir, p, out); err != nil {
			return &RenderError{Path: p, Template: page.Template, Err: err}
		}
	}
	return nil
}

func writeFile(root, rel string, data []byte) error {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return fmt.Errorf("output path escapes root: %q", rel)
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
