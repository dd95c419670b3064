package build

import (
	"encoding/xml"
	"fanhao/internal/domain/content"
	"fanhao/internal/domain/site"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string    `xml:"loc"`
	LastMod string    `xml:"lastmod,omitempty"`
	Links   []altLink `xml:"xhtml:link"`
}

type altLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

func hreflang(l content.Language) string {
	if l == content.LangEN {
		return "en"
	}
	return "zh-Hant"
}

// writeSitemap 为每个非别名页面写一条 url，带上两种语言的 hreflang 链接。
// 404 页面不进入 sitemap。
func writeSitemap(outDir, siteURL string, res *site.Resolver, pages []writtenPage, now time.Time) (int, error) {
	base := strings.TrimRight(siteURL, "/") + "/"
	written := make(map[string]bool, len(pages))
	for _, p := range pages {
		written[p.Path] = true
	}

	sorted := make([]writtenPage, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	lastmod := ""
	if !now.IsZero() {
		lastmod = now.Format("2006-01-02")
	}

	set := urlset{NS: sitemapNS, XHTML: xhtmlNS}
	for _, p := range sorted {
		if strings.HasPrefix(filepath.Base(p.Path), "404") {
			continue
		}
		u := sitemapURL{Loc: base + p.Path, LastMod: lastmod}
		alt := res.Alternate(p.Lang, p.Path)
		if written[alt] {
			u.Links = []altLink{
				{Rel: "alternate", Hreflang: hreflang(p.Lang), Href: base + p.Path},
				{Rel: "alternate", Hreflang: hreflang(p.Lang.Other()), Href: base + alt},
			}
		}
		set.URLs = append(set.URLs, u)
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(filepath.Join(outDir, "sitemap.xml"), data, 0o644); err != nil {
		return 0, err
	}
	return len(set.URLs), nil
}
