package content

import (
	"strconv"
	"strings"
	"time"
)

// Ref 是影片关联的实体（女优、类型、系列、厂牌）的简要引用。
type Ref struct {
	ID   int64
	Name string
}

type Video struct {
	ID          int64
	Code        string
	Title       string
	Description string
	ReleaseDate *time.Time
	CoverURL    string
	CreatedAt   time.Time
	Duration    int // 分钟，0 表示未知
	Publisher   string

	Actresses []Ref
	Genres    []Ref
	Series    []Ref
	Labels    []Ref
}

// Identifier 返回用于生成文件名的标识：优先番号，没有番号时退回数字 id。
func (v Video) Identifier() string {
	if c := strings.TrimSpace(v.Code); c != "" {
		return c
	}
	return strconv.FormatInt(v.ID, 10)
}

func (v Video) ReleaseDateString() string {
	if v.ReleaseDate == nil || v.ReleaseDate.IsZero() {
		return "N/A"
	}
	return v.ReleaseDate.Format("2006-01-02")
}

func (v Video) DurationString() string {
	if v.Duration <= 0 {
		return ""
	}
	return strconv.Itoa(v.Duration) + " min"
}

func (v *Video) Normalize() {
	v.Code = strings.TrimSpace(v.Code)
	v.Title = strings.TrimSpace(v.Title)
	v.Description = strings.TrimSpace(v.Description)
	v.CoverURL = strings.TrimSpace(v.CoverURL)
	v.Actresses = normalizeRefs(v.Actresses)
	v.Genres = normalizeRefs(v.Genres)
	v.Series = normalizeRefs(v.Series)
	v.Labels = normalizeRefs(v.Labels)
}

type Genre struct {
	ID          int64
	Name        string
	Description string
	VideoCount  int
}

type Actress struct {
	ID         int64
	Name       string
	VideoCount int
}

// Summary 截取描述前 max 个字符作为摘要，超长时补 "..."。
func Summary(desc string, max int) string {
	desc = strings.TrimSpace(desc)
	r := []rune(desc)
	if len(r) <= max {
		return desc
	}
	return string(r[:max]) + "..."
}

// 同一 id 只保留第一次出现的引用，名字去掉首尾空白。
func normalizeRefs(items []Ref) []Ref {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(items))
	out := make([]Ref, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
