package ingest

import (
	"context"
	"errors"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func day(n int) *time.Time {
	d := time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
	return &d
}

func sampleVideos() []content.Video {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []content.Video{
		{ID: 1, Code: "AAA-001", ReleaseDate: day(1), CreatedAt: created, Genres: []content.Ref{{ID: 10, Name: "巨乳"}}},
		{ID: 2, Code: "AAA-002", ReleaseDate: day(3), CreatedAt: created, Actresses: []content.Ref{{ID: 20, Name: "Mio"}}},
		{ID: 3, Code: "AAA-003", ReleaseDate: day(3), CreatedAt: created.Add(time.Hour), Genres: []content.Ref{{ID: 10, Name: "巨乳"}}},
		{ID: 4, Code: "AAA-004", CreatedAt: created},
	}
}

func ids(vs []content.Video) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestSortVideos(t *testing.T) {
	vs := sampleVideos()
	SortVideos(vs)
	// 同一天按创建时间倒序，没有发行日期的在最后
	require.Equal(t, []int64{3, 2, 1, 4}, ids(vs))
}

func TestMemorySource(t *testing.T) {
	ctx := context.Background()
	src := NewMemorySource(sampleVideos(),
		[]content.Genre{{ID: 11, Name: "制服"}, {ID: 10, Name: " 巨乳 "}},
		[]content.Actress{{ID: 20, Name: "Mio"}})

	all, err := src.Videos(ctx, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 2, 1, 4}, ids(all))

	page, err := src.Videos(ctx, ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids(page))

	byGenre, err := src.VideosByGenre(ctx, 10, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1}, ids(byGenre))

	byActress, err := src.VideosByActress(ctx, 20, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids(byActress))

	genres, err := src.Genres(ctx)
	require.NoError(t, err)
	// 码点顺序：制服 (U+5236) 在 巨乳 (U+5DE8) 之前
	require.Equal(t, []string{"制服", "巨乳"}, []string{genres[0].Name, genres[1].Name})
	require.Equal(t, 0, genres[0].VideoCount)
	require.Equal(t, 2, genres[1].VideoCount)

	// 返回的是副本
	all[0].Genres[0].Name = "changed"
	again, _ := src.Videos(ctx, ListOptions{})
	require.Equal(t, "巨乳", again[0].Genres[0].Name)

	offEnd, err := src.Videos(ctx, ListOptions{Offset: 10})
	require.NoError(t, err)
	require.Empty(t, offEnd)
}

func TestSortByName(t *testing.T) {
	gs := []content.Genre{{ID: 3, Name: "巨乳"}, {ID: 2, Name: "制服"}, {ID: 1, Name: "制服"}, {ID: 4, Name: "Cosplay"}}
	SortGenres(gs)
	require.Equal(t, []int64{4, 1, 2, 3}, []int64{gs[0].ID, gs[1].ID, gs[2].ID, gs[3].ID})

	as := []content.Actress{{ID: 2, Name: "三上"}, {ID: 1, Name: "Mio"}}
	SortActresses(as)
	require.Equal(t, "Mio", as[0].Name)
}

func TestMemorySourceFail(t *testing.T) {
	boom := errors.New("db down")
	src := NewMemorySource(nil, nil, nil)
	src.Fail = boom
	_, err := src.Videos(context.Background(), ListOptions{})
	require.ErrorIs(t, err, boom)
	_, err = src.Genres(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestGroupRelations(t *testing.T) {
	name := func(s string) *string { return &s }
	rows := []relRow{
		{VideoID: 1, ID: 5, Name: name("A")},
		{VideoID: 2, ID: 6, Name: name("B")},
		{VideoID: 1, ID: 7, Name: name(" C ")},
		{VideoID: 1, ID: 8, Name: nil},
	}
	got := groupRelations(rows)
	require.Equal(t, []content.Ref{{ID: 5, Name: "A"}, {ID: 7, Name: "C"}}, got[1])
	require.Equal(t, []content.Ref{{ID: 6, Name: "B"}}, got[2])
	require.Nil(t, got[3])
}

func TestDSN(t *testing.T) {
	my := config.DatabaseConfig{Driver: "mysql", Host: "h", Port: "3306", User: "u", Password: "p", Name: "db"}
	require.Equal(t, "u:p@tcp(h:3306)/db?charset=utf8mb4&parseTime=True&loc=Local", DSN(my))

	pg := config.DatabaseConfig{Driver: "postgres", Host: "h", Port: "5432", User: "u", Password: "p", Name: "db", SSLMode: "disable"}
	require.Equal(t, "host=h user=u password=p dbname=db port=5432 sslmode=disable TimeZone=UTC", DSN(pg))

	require.Equal(t, "custom", DSN(config.DatabaseConfig{DSN: "custom"}))

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "u:p@tcp(127.0.0.1:1)/db?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestGormQueries(t *testing.T) {
	db := dryRunDB(t)
	src := NewGormSource(db, nil)
	ctx := context.Background()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []videoRow
		s := &GormSource{db: tx, log: src.log}
		return s.videosByQuery(ctx, "video_genre", "genre_id", 7, ListOptions{Limit: 20, Offset: 40}).Find(&rows)
	})
	require.Contains(t, sql, "JOIN video_genre j ON j.video_id = videos.id")
	require.Contains(t, sql, "j.genre_id = 7")
	require.Contains(t, sql, "videos.release_date DESC")
	require.Contains(t, sql, "LIMIT 20")
	require.Contains(t, sql, "OFFSET 40")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []relRow
		s := &GormSource{db: tx, log: src.log}
		return s.relationQuery(ctx, relations[0], []int64{1, 2, 3}).Find(&rows)
	})
	require.Contains(t, sql, "JOIN video_actress j ON j.actress_id = r.id")
	require.Contains(t, sql, "IN (1,2,3)")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []countRow
		s := &GormSource{db: tx, log: src.log}
		return s.countQuery(ctx, "genres", "video_genre", "genre_id").Find(&rows)
	})
	require.Contains(t, sql, "LEFT JOIN video_genre j ON t.id = j.genre_id")
	require.Contains(t, sql, "GROUP BY t.id, t.name")
	require.Contains(t, sql, "ORDER BY t.name ASC")
}

func TestChunkIDs(t *testing.T) {
	in := []int64{1, 2, 3, 4, 5}
	require.Equal(t, [][]int64{{1, 2}, {3, 4}, {5}}, chunkIDs(in, 2))
	require.Equal(t, [][]int64{{1, 2, 3, 4, 5}}, chunkIDs(in, 5))
	require.Nil(t, chunkIDs(nil, 2))
}

func TestRelationQueriesStayUnderPlaceholderLimit(t *testing.T) {
	db := dryRunDB(t)
	var vars []int
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:count_vars", func(tx *gorm.DB) {
		vars = append(vars, len(tx.Statement.Vars))
	}))
	src := NewGormSource(db, nil)

	const n = 70000
	vs := make([]content.Video, n)
	all := make([]int64, n)
	for i := range vs {
		vs[i].ID = int64(i + 1)
		all[i] = vs[i].ID
	}
	src.attachRelations(context.Background(), vs, all)

	// 每个关系 70 条查询
	require.Len(t, vars, len(relations)*70)
	for _, v := range vars {
		require.LessOrEqual(t, v, relationBatch)
		require.Less(t, v, 65535)
	}
}
