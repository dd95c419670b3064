package render

import (
	"fanhao/internal/domain/content"
	"fanhao/internal/domain/site"
)

// DisplaySuffix 是投影后的键名后缀：title -> title_display。
const DisplaySuffix = "_display"

// Project 递归遍历上下文，把每个双语值按 lang 投影到 k_display 上。
// 原值保留在 k 上。
func Project(v any, lang content.Language) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x)+4)
		for k, val := range x {
			if p, ok := val.(content.Projector); ok {
				out[k] = val
				out[k+DisplaySuffix] = p.ProjectAny(lang)
				continue
			}
			out[k] = Project(val, lang)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(x))
		for i, m := range x {
			out[i] = Project(m, lang).(map[string]any)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			if p, ok := e.(content.Projector); ok {
				out[i] = p.ProjectAny(lang)
				continue
			}
			out[i] = Project(e, lang)
		}
		return out
	}
	return v
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// view 合并页面上下文、静态资源路径、另一语言链接和分页信息。
func (w *Writer) view(page site.Page) map[string]any {
	data := make(map[string]any, len(page.Context)+24)
	for k, v := range page.Context {
		data[k] = v
	}
	for k, v := range w.Resolver.Assets(page.Path).Map() {
		data[k] = v
	}

	data["lang"] = string(page.Lang)
	data["alternate_lang"] = string(page.Lang.Other())
	data["alternate_url"] = w.Resolver.AlternateURL(page.Lang, page.Path)
	data["current_year"] = w.Now.Year()

	number, total := max(page.Number, 1), max(page.Total, 1)
	data["current_page"] = number
	data["total_pages"] = total

	links := make([]pageLink, 0, len(page.PagePaths))
	for i, p := range page.PagePaths {
		links = append(links, pageLink{
			Number:  i + 1,
			URL:     w.Resolver.Rel(page.Path, p),
			Current: i+1 == number,
		})
	}
	data["page_urls"] = links
	data["prev_url"] = ""
	data["next_url"] = ""
	if number > 1 && number-2 < len(links) {
		data["prev_url"] = links[number-2].URL
	}
	if number < total && number < len(links) {
		data["next_url"] = links[number].URL
	}

	return Project(data, page.Lang).(map[string]any)
}
