package render

import (
	"bytes"
	"fanhao/internal/domain/content"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

type TemplateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer(themeDir, themeName string) (*TemplateRenderer, error) {
	pattern := filepath.Join(themeDir, themeName, "templates", "*tmpl")
	tpl, err := template.New("").Funcs(templateFuncs()).ParseGlob(pattern)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

// templateFuncs 不依赖当前时间，保证同样的输入渲染出同样的字节。
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// pick 按语言在两个字面量之间选择，模板里的固定文案用它
		"pick": func(lang, cn, en string) string {
			if content.Language(lang) == content.LangEN {
				return en
			}
			return cn
		},
		// display 取 Localized 值在某种语言下的文本，非 Localized 原样返回
		"display": func(lang string, v any) any {
			if p, ok := v.(content.Projector); ok {
				return p.ProjectAny(content.Language(lang))
			}
			return v
		},
		"add": func(a, b int) int { return a + b },
	}
}

func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RequiredTemplates 是主题必须提供的页面模板。
var RequiredTemplates = []string{
	"index.tmpl",
	"video.tmpl",
	"genre.tmpl",
	"actress.tmpl",
	"genres_overview.tmpl",
	"actresses_overview.tmpl",
	"disclaimer.tmpl",
	"404.tmpl",
}

func CheckThemeTemplates(themeDir string) error {
	for _, name := range RequiredTemplates {
		if _, err := os.Stat(filepath.Join(themeDir, "templates", name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
