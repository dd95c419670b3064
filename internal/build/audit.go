package build

import (
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type BrokenLink struct {
	Page   string
	Target string
}

var linkAttrs = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"img[src]", "src"},
	{"script[src]", "src"},
}

// AuditLinks 检查输出树里每个 HTML 页面的站内相对链接是否指向存在的文件。
func AuditLinks(outDir string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(outDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(outDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		doc, err := goquery.NewDocumentFromReader(f)
		f.Close()
		if err != nil {
			return err
		}

		seen := map[string]bool{}
		for _, la := range linkAttrs {
			doc.Find(la.selector).Each(func(_ int, s *goquery.Selection) {
				v, _ := s.Attr(la.attr)
				target, ok := localTarget(rel, v)
				if !ok || seen[target] {
					return
				}
				seen[target] = true
				if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(target))); err != nil {
					broken = append(broken, BrokenLink{Page: rel, Target: target})
				}
			})
		}
		return nil
	})
	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page == broken[j].Page {
			return broken[i].Target < broken[j].Target
		}
		return broken[i].Page < broken[j].Page
	})
	return broken, err
}

// localTarget 把页面上的相对链接解析成输出根下的路径；外部链接返回 false。
func localTarget(page, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	target := u.Path
	if !strings.HasPrefix(target, "/") {
		target = path.Join(path.Dir(page), target)
	}
	target = strings.TrimPrefix(path.Clean(target), "/")
	if target == "." || strings.HasPrefix(target, "../") {
		return "", false
	}
	return target, true
}
