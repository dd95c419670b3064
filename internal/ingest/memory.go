package ingest

import (
	"context"
	"fanhao/internal/domain/content"
	"strings"
)

// MemorySource 把一组固定的记录当作内容来源，用于测试和离线预览。
type MemorySource struct {
	videos    []content.Video
	genres    []content.Genre
	actresses []content.Actress

	// Fail 不为 nil 时所有查询都返回该错误。
	Fail error
}

func NewMemorySource(videos []content.Video, genres []content.Genre, actresses []content.Actress) *MemorySource {
	vs := make([]content.Video, len(videos))
	copy(vs, videos)
	for i := range vs {
		vs[i].Normalize()
	}
	SortVideos(vs)

	gs := make([]content.Genre, len(genres))
	copy(gs, genres)
	as := make([]content.Actress, len(actresses))
	copy(as, actresses)

	m := &MemorySource{videos: vs, genres: gs, actresses: as}
	m.countVideos()
	SortGenres(m.genres)
	SortActresses(m.actresses)
	return m
}

func (m *MemorySource) countVideos() {
	gc := map[int64]int{}
	ac := map[int64]int{}
	for _, v := range m.videos {
		for _, g := range v.Genres {
			gc[g.ID]++
		}
		for _, a := range v.Actresses {
			ac[a.ID]++
		}
	}
	for i := range m.genres {
		m.genres[i].Name = strings.TrimSpace(m.genres[i].Name)
		m.genres[i].VideoCount = gc[m.genres[i].ID]
	}
	for i := range m.actresses {
		m.actresses[i].Name = strings.TrimSpace(m.actresses[i].Name)
		m.actresses[i].VideoCount = ac[m.actresses[i].ID]
	}
}

func (m *MemorySource) Videos(ctx context.Context, opt ListOptions) ([]content.Video, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	return cloneVideos(window(m.videos, opt)), nil
}

func (m *MemorySource) VideosByGenre(ctx context.Context, genreID int64, opt ListOptions) ([]content.Video, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	return cloneVideos(window(m.filter(func(v content.Video) []content.Ref { return v.Genres }, genreID), opt)), nil
}

func (m *MemorySource) VideosByActress(ctx context.Context, actressID int64, opt ListOptions) ([]content.Video, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	return cloneVideos(window(m.filter(func(v content.Video) []content.Ref { return v.Actresses }, actressID), opt)), nil
}

func (m *MemorySource) Genres(ctx context.Context) ([]content.Genre, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	out := make([]content.Genre, len(m.genres))
	copy(out, m.genres)
	return out, nil
}

func (m *MemorySource) Actresses(ctx context.Context) ([]content.Actress, error) {
	if m.Fail != nil {
		return nil, m.Fail
	}
	out := make([]content.Actress, len(m.actresses))
	copy(out, m.actresses)
	return out, nil
}

func (m *MemorySource) filter(refs func(content.Video) []content.Ref, id int64) []content.Video {
	var out []content.Video
	for _, v := range m.videos {
		for _, r := range refs(v) {
			if r.ID == id {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// 调用方可能修改返回的切片，关联列表也要复制。
func cloneVideos(vs []content.Video) []content.Video {
	out := make([]content.Video, len(vs))
	for i, v := range vs {
		v.Actresses = append([]content.Ref(nil), v.Actresses...)
		v.Genres = append([]content.Ref(nil), v.Genres...)
		v.Series = append([]content.Ref(nil), v.Series...)
		v.Labels = append([]content.Ref(nil), v.Labels...)
		out[i] = v
	}
	return out
}
