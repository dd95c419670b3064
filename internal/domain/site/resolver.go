package site

import (
	"fanhao/internal/domain/content"
	"path"
	"path/filepath"
	"strings"
)

// StaticDir 是输出树里共享静态资源的目录。
const StaticDir = "static"

type AssetPaths struct {
	CSS                   string
	Favicon               string
	Logo                  string
	AdJS                  string
	SearchJS              string
	PathResolverJS        string
	PlaceholderThumb      string
	PlaceholderAvatar     string
	PlaceholderOGVideo    string
	PlaceholderOGCategory string
	PlaceholderOGActress  string
}

// Map 返回模板使用的键名。
func (a AssetPaths) Map() map[string]any {
	return map[string]any{
		"path_css":                     a.CSS,
		"path_favicon":                 a.Favicon,
		"path_logo":                    a.Logo,
		"path_ad_js":                   a.AdJS,
		"path_search_js":               a.SearchJS,
		"path_path_resolver_js":        a.PathResolverJS,
		"path_placeholder_thumb":       a.PlaceholderThumb,
		"path_placeholder_avatar":      a.PlaceholderAvatar,
		"path_placeholder_og_video":    a.PlaceholderOGVideo,
		"path_placeholder_og_category": a.PlaceholderOGCategory,
		"path_placeholder_og_actress":  a.PlaceholderOGActress,
	}
}

type Resolver struct {
	Scheme Scheme
}

func NewResolver(s Scheme) *Resolver {
	return &Resolver{Scheme: s}
}

// StaticBase 返回从页面所在目录到 static/ 的相对路径。
func (r *Resolver) StaticBase(page string) string {
	return r.Rel(page, StaticDir)
}

func (r *Resolver) Assets(page string) AssetPaths {
	base := r.StaticBase(page)
	j := func(name string) string { return path.Join(base, name) }
	return AssetPaths{
		CSS:                   j("style.css"),
		Favicon:               j("favicon.png"),
		Logo:                  j("LOGO.png"),
		AdJS:                  j("ad.js"),
		SearchJS:              j("search.js"),
		PathResolverJS:        j("path-resolver.js"),
		PlaceholderThumb:      j("placeholder_thumb.png"),
		PlaceholderAvatar:     j("placeholder_avatar.png"),
		PlaceholderOGVideo:    j("placeholder_og_video.png"),
		PlaceholderOGCategory: j("placeholder_og_category.png"),
		PlaceholderOGActress:  j("placeholder_og_actress.png"),
	}
}

// Rel 返回从页面 from 链接到根相对路径 to 的相对地址。
func (r *Resolver) Rel(from, to string) string {
	dir := filepath.Dir(filepath.FromSlash(from))
	rel, err := filepath.Rel(dir, filepath.FromSlash(to))
	if err != nil {
		return to
	}
	return filepath.ToSlash(rel)
}

func (r *Resolver) Path(lang content.Language, loc Location) string {
	return r.Scheme.Path(lang, loc)
}

func (r *Resolver) Alternate(lang content.Language, page string) string {
	return r.Scheme.Alternate(lang, page)
}

// AlternateURL 是从当前页面指向另一语言版本的相对链接。
func (r *Resolver) AlternateURL(lang content.Language, page string) string {
	return r.Rel(page, r.Alternate(lang, page))
}

// Depth 是页面所在目录相对输出根的层数。
func Depth(page string) int {
	return strings.Count(path.Clean(page), "/")
}
