package site

import (
	"fanhao/internal/domain/content"
	"fmt"
	"strings"
)

type PageKind string

const (
	PageIndex             PageKind = "index"
	PageVideo             PageKind = "detail"
	PageGenre             PageKind = "genre"
	PageActress           PageKind = "actress"
	PageGenresOverview    PageKind = "genres_overview"
	PageActressesOverview PageKind = "actresses_overview"
	PageDisclaimer        PageKind = "disclaimer"
	PageNotFound          PageKind = "404"
)

// Page 是一个待输出的文件：路径、模板、上下文以及分页信息。
type Page struct {
	Kind     PageKind
	Lang     content.Language
	Key      string // 记录标识，只用于日志
	Path     string
	Aliases  []string
	Template string
	Context  map[string]any

	Number    int
	Total     int
	PagePaths []string // 同一列表每一页的根相对路径，下标 0 是第 1 页
}

func (p Page) String() string {
	var parts []string
	parts = append(parts, string(p.Kind), "lang="+string(p.Lang))
	if p.Key != "" {
		parts = append(parts, "key="+p.Key)
	}
	if p.Total > 1 {
		parts = append(parts, fmt.Sprintf("page=%d/%d", p.Number, p.Total))
	}
	if p.Path != "" {
		parts = append(parts, "out="+p.Path)
	}
	return strings.Join(parts, " ")
}

// Outputs 返回主路径和所有别名路径。
func (p Page) Outputs() []string {
	out := make([]string, 0, 1+len(p.Aliases))
	out = append(out, p.Path)
	out = append(out, p.Aliases...)
	return out
}
