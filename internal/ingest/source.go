package ingest

import (
	"context"
	"fanhao/internal/domain/content"
	"sort"
)

// ListOptions 控制列表查询的分页，Limit 为 0 表示不限制。
type ListOptions struct {
	Limit  int
	Offset int
}

// Source 是只读的内容来源。
// 影片按发行日期倒序、创建时间倒序返回；类型和女优按名字的字节序升序返回，
// 与数据库排序规则无关。
type Source interface {
	Videos(ctx context.Context, opt ListOptions) ([]content.Video, error)
	VideosByGenre(ctx context.Context, genreID int64, opt ListOptions) ([]content.Video, error)
	VideosByActress(ctx context.Context, actressID int64, opt ListOptions) ([]content.Video, error)
	Genres(ctx context.Context) ([]content.Genre, error)
	Actresses(ctx context.Context) ([]content.Actress, error)
}

// SortVideos 按发行日期倒序排序，相同或缺失时按创建时间倒序，再按 id 倒序。
// 没有发行日期的排在最后。
func SortVideos(vs []content.Video) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		switch {
		case a.ReleaseDate != nil && b.ReleaseDate == nil:
			return true
		case a.ReleaseDate == nil && b.ReleaseDate != nil:
			return false
		case a.ReleaseDate != nil && b.ReleaseDate != nil && !a.ReleaseDate.Equal(*b.ReleaseDate):
			return a.ReleaseDate.After(*b.ReleaseDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// SortGenres 按名字字节序（即码点顺序）升序，同名按 id。
func SortGenres(gs []content.Genre) {
	sort.SliceStable(gs, func(i, j int) bool { return nameLess(gs[i].Name, gs[i].ID, gs[j].Name, gs[j].ID) })
}

func SortActresses(as []content.Actress) {
	sort.SliceStable(as, func(i, j int) bool { return nameLess(as[i].Name, as[i].ID, as[j].Name, as[j].ID) })
}

func nameLess(a string, aID int64, b string, bID int64) bool {
	if a != b {
		return a < b
	}
	return aID < bID
}

func window[T any](items []T, opt ListOptions) []T {
	if opt.Offset > 0 {
		if opt.Offset >= len(items) {
			return nil
		}
		items = items[opt.Offset:]
	}
	if opt.Limit > 0 && opt.Limit < len(items) {
		items = items[:opt.Limit]
	}
	return items
}
