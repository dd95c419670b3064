package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer 把生成的心得正文转成 HTML。原始 HTML 会被转义。
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &MarkdownRenderer{md: md}
}

func (r *MarkdownRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML 满足 generate.HTMLFunc。
func (r *MarkdownRenderer) HTML(markdown string) (string, error) {
	out, err := r.Render([]byte(markdown))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
