package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalizedProject(t *testing.T) {
	title := L("標題", "Title")
	require.Equal(t, "標題", title.Project(LangCN))
	require.Equal(t, "Title", title.Project(LangEN))

	var p Projector = title
	require.Equal(t, "Title", p.ProjectAny(LangEN))

	require.Equal(t, LangEN, LangCN.Other())
	require.Equal(t, LangCN, LangEN.Other())
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("en")
	require.NoError(t, err)
	require.Equal(t, LangEN, l)

	_, err = ParseLanguage("jp")
	require.Error(t, err)
}

func TestVideoIdentifierFallsBackToID(t *testing.T) {
	require.Equal(t, "ABC-123", Video{ID: 9, Code: " ABC-123 "}.Identifier())
	require.Equal(t, "9", Video{ID: 9}.Identifier())
}

func TestVideoStrings(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	v := Video{ReleaseDate: &d, Duration: 120}
	require.Equal(t, "2024-03-05", v.ReleaseDateString())
	require.Equal(t, "120 min", v.DurationString())
	require.Equal(t, "N/A", Video{}.ReleaseDateString())
	require.Empty(t, Video{}.DurationString())
}

func TestSummary(t *testing.T) {
	require.Equal(t, "short", Summary("  short ", 80))
	long := strings.Repeat("字", 100)
	got := Summary(long, 80)
	require.Equal(t, strings.Repeat("字", 80)+"...", got)
}

func TestNormalizeDropsDuplicateRefs(t *testing.T) {
	v := Video{Genres: []Ref{{ID: 1, Name: " 巨乳 "}, {ID: 1, Name: "巨乳"}, {ID: 2, Name: "制服"}}}
	v.Normalize()
	require.Equal(t, []Ref{{ID: 1, Name: "巨乳"}, {ID: 2, Name: "制服"}}, v.Genres)
}
