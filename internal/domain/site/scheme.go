package site

import (
	"fanhao/internal/domain/content"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

type URLStyle string

const (
	StyleSuffix URLStyle = "suffix" // videos/abc_cn.html / videos/abc_en.html
	StylePrefix URLStyle = "prefix" // videos/abc.html / en/videos/abc.html
)

// Location 是一个逻辑页面在输出树中的位置，与语言无关。
type Location struct {
	Dir  string // "" 表示根目录
	Stem string
	Page int // 0 表示不带页码
}

// Scheme 决定语言如何编码进输出路径。一次构建只用一种。
type Scheme interface {
	Style() URLStyle
	Path(lang content.Language, loc Location) string
	// Alternate 把 lang 语言页面的路径换成另一种语言的同一页面。
	Alternate(lang content.Language, p string) string
}

func NewScheme(style URLStyle, def content.Language) (Scheme, error) {
	if !def.Valid() {
		return nil, fmt.Errorf("site: invalid default language %q", def)
	}
	switch style {
	case "", StyleSuffix:
		return SuffixScheme{Default: def}, nil
	case StylePrefix:
		return PrefixScheme{Default: def}, nil
	}
	return nil, fmt.Errorf("site: unknown url style %q", style)
}

// 根目录下默认语言的这些页面不带语言后缀：index.html、404.html。
var bareStems = map[string]bool{
	"index": true,
	"404":   true,
}

var rePageSuffix = regexp.MustCompile(`_p[0-9]+$`)

type SuffixScheme struct {
	Default content.Language
}

func (s SuffixScheme) Style() URLStyle { return StyleSuffix }

func (s SuffixScheme) Path(lang content.Language, loc Location) string {
	name := loc.Stem
	if !s.bare(loc.Dir, name, lang) {
		name += "_" + string(lang)
	}
	if loc.Page > 0 {
		name += "_p" + strconv.Itoa(loc.Page)
	}
	return path.Join(loc.Dir, name+".html")
}

func (s SuffixScheme) Alternate(lang content.Language, p string) string {
	dir, file := path.Split(p)
	name := strings.TrimSuffix(file, ".html")

	var page string
	if loc := rePageSuffix.FindStringIndex(name); loc != nil {
		page = name[loc[0]:]
		name = name[:loc[0]]
	}
	name = strings.TrimSuffix(name, "_"+string(lang))

	other := lang.Other()
	if !s.bare(strings.TrimSuffix(dir, "/"), name, other) {
		name += "_" + string(other)
	}
	return dir + name + page + ".html"
}

func (s SuffixScheme) bare(dir, stem string, lang content.Language) bool {
	return dir == "" && lang == s.Default && bareStems[stem]
}

type PrefixScheme struct {
	Default content.Language
}

func (s PrefixScheme) Style() URLStyle { return StylePrefix }

func (s PrefixScheme) Path(lang content.Language, loc Location) string {
	name := loc.Stem
	if loc.Page > 0 {
		name += "_p" + strconv.Itoa(loc.Page)
	}
	p := path.Join(loc.Dir, name+".html")
	if lang == s.Default {
		return p
	}
	return string(lang) + "/" + p
}

func (s PrefixScheme) Alternate(lang content.Language, p string) string {
	if lang == s.Default {
		return string(lang.Other()) + "/" + p
	}
	return strings.TrimPrefix(p, string(lang)+"/")
}
