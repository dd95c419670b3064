package site

import (
	"fanhao/internal/domain/content"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"ABC-123":        "abc-123",
		"  SSIS 001 ":    "ssis-001",
		"a//b??c":        "a-b-c",
		"---x---":        "x",
		"巨乳":             UnknownSlug,
		"":               UnknownSlug,
		"file_name.v2":   "file_name.v2",
		"Mixed--Dash__X": "mixed-dash__x",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyIdempotentAndTotal(t *testing.T) {
	inputs := []string{"", "ABC-123", "巨乳 AV", "..", "--", "a b\tc\n", "ÀÉÎ", "x.y_z-1", "12345"}
	for _, in := range inputs {
		once := Slugify(in)
		require.NotEmpty(t, once)
		require.Equal(t, once, Slugify(once), "input %q", in)
		require.Regexp(t, `^[a-z0-9_.-]+$`, once)
		require.NotContains(t, once, "--")
	}
}

func TestSlugifyAny(t *testing.T) {
	var nilStr *string
	s := "XYZ-9"
	require.Equal(t, UnknownSlug, SlugifyAny(nil))
	require.Equal(t, UnknownSlug, SlugifyAny(nilStr))
	require.Equal(t, "xyz-9", SlugifyAny(&s))
	require.Equal(t, "42", SlugifyAny(int64(42)))
	require.Equal(t, "7", SlugifyAny(7))
	require.Equal(t, "42", SlugifyID(42))
}

func TestPlanReconstructsSequence(t *testing.T) {
	for total := 0; total <= 65; total++ {
		for _, per := range []int{1, 3, 7, 20} {
			items := make([]int, total)
			for i := range items {
				items[i] = i
			}
			p := NewPlan(total, per, 0)
			if total == 0 {
				require.Equal(t, 1, p.TotalPages)
				require.Empty(t, Slice(items, p, 1))
				continue
			}
			require.Equal(t, (total+per-1)/per, p.TotalPages)

			var got []int
			for _, n := range p.Pages() {
				got = append(got, Slice(items, p, n)...)
			}
			require.Equal(t, items, got, "total=%d per=%d", total, per)
		}
	}
}

func TestPlanCap(t *testing.T) {
	p := NewPlan(100, 20, 30)
	require.Equal(t, 30, p.TotalItems)
	require.Equal(t, 2, p.TotalPages)
	start, end := p.Window(2)
	require.Equal(t, 20, start)
	require.Equal(t, 30, end)

	start, end = p.Window(3)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}

func TestSuffixSchemePaths(t *testing.T) {
	s := SuffixScheme{Default: content.LangCN}
	cases := []struct {
		lang content.Language
		loc  Location
		want string
	}{
		{content.LangCN, Location{Stem: "index"}, "index.html"},
		{content.LangCN, Location{Stem: "index", Page: 2}, "index_p2.html"},
		{content.LangEN, Location{Stem: "index"}, "index_en.html"},
		{content.LangEN, Location{Stem: "index", Page: 1}, "index_en_p1.html"},
		{content.LangCN, Location{Dir: "videos", Stem: "abc-123"}, "videos/abc-123_cn.html"},
		{content.LangEN, Location{Dir: "genres", Stem: "7", Page: 3}, "genres/7_en_p3.html"},
		{content.LangCN, Location{Stem: "404"}, "404.html"},
		{content.LangEN, Location{Stem: "404"}, "404_en.html"},
		{content.LangEN, Location{Stem: "disclaimer"}, "disclaimer_en.html"},
		{content.LangCN, Location{Dir: "videos", Stem: "index"}, "videos/index_cn.html"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, s.Path(c.lang, c.loc))
	}
}

func TestAlternateIsInvolution(t *testing.T) {
	locs := []Location{
		{Stem: "index"},
		{Stem: "index", Page: 1},
		{Stem: "index", Page: 12},
		{Stem: "404"},
		{Stem: "disclaimer"},
		{Stem: "genres_overview"},
		{Dir: "videos", Stem: "abc-123"},
		{Dir: "videos", Stem: "x_cn"},
		{Dir: "videos", Stem: "y_p3"},
		{Dir: "videos", Stem: "index"},
		{Dir: "genres", Stem: "7", Page: 2},
		{Dir: "actresses", Stem: UnknownSlug, Page: 1},
	}
	for _, style := range []URLStyle{StyleSuffix, StylePrefix} {
		s, err := NewScheme(style, content.LangCN)
		require.NoError(t, err)
		for _, loc := range locs {
			for _, lang := range content.Languages {
				p := s.Path(lang, loc)
				alt := s.Alternate(lang, p)
				require.Equal(t, s.Path(lang.Other(), loc), alt, "style=%s path=%s", style, p)
				require.Equal(t, p, s.Alternate(lang.Other(), alt), "style=%s path=%s", style, p)
			}
		}
	}
}

func TestNewSchemeRejectsUnknown(t *testing.T) {
	_, err := NewScheme("query", content.LangCN)
	require.Error(t, err)
	_, err = NewScheme(StyleSuffix, "jp")
	require.Error(t, err)
}

func TestAssetDepth(t *testing.T) {
	for _, style := range []URLStyle{StyleSuffix, StylePrefix} {
		s, err := NewScheme(style, content.LangCN)
		require.NoError(t, err)
		r := NewResolver(s)
		for _, loc := range []Location{{Stem: "index"}, {Dir: "videos", Stem: "a"}, {Dir: "genres", Stem: "3", Page: 2}} {
			for _, lang := range content.Languages {
				p := r.Path(lang, loc)
				css := r.Assets(p).CSS
				d := Depth(p)
				require.Equal(t, strings.Repeat("../", d)+"static/style.css", css, "page %s", p)
				require.Equal(t, d, strings.Count(css, ".."))
			}
		}
	}
}

func TestResolverRel(t *testing.T) {
	r := NewResolver(SuffixScheme{Default: content.LangCN})
	require.Equal(t, "videos/a_cn.html", r.Rel("index.html", "videos/a_cn.html"))
	require.Equal(t, "../genres/3_cn.html", r.Rel("videos/a_cn.html", "genres/3_cn.html"))
	require.Equal(t, "b_cn.html", r.Rel("videos/a_cn.html", "videos/b_cn.html"))
	require.Equal(t, "a_en.html", r.AlternateURL(content.LangCN, "videos/a_cn.html"))

	p := NewResolver(PrefixScheme{Default: content.LangCN})
	require.Equal(t, "../../videos/a.html", p.AlternateURL(content.LangEN, "en/videos/a.html"))
	require.Equal(t, "../en/videos/a.html", p.AlternateURL(content.LangCN, "videos/a.html"))
}

func TestPageOutputs(t *testing.T) {
	pg := Page{Kind: PageIndex, Lang: content.LangCN, Path: "index_p1.html", Aliases: []string{"index.html"}, Number: 1, Total: 2}
	require.Equal(t, []string{"index_p1.html", "index.html"}, pg.Outputs())
	require.Contains(t, pg.String(), "page=1/2")
}
