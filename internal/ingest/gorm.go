package ingest

import (
	"context"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 没有发行日期的排在最后，MySQL 和 PostgreSQL 对 NULL 的默认排序不同。
const videoOrder = "videos.release_date IS NULL, videos.release_date DESC, videos.created_at DESC, videos.id DESC"

// DSN 根据配置拼出驱动需要的连接串；配置里直接给了 dsn 时原样返回。
func DSN(cfg config.DatabaseConfig) string {
	if strings.TrimSpace(cfg.DSN) != "" {
		return cfg.DSN
	}
	switch cfg.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}
}

func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := DSN(cfg)
	switch cfg.Driver {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("ingest: unsupported driver %q", cfg.Driver)
}

// OpenDB 打开连接池。构建期间所有 worker 共用一个池。
func OpenDB(cfg config.DatabaseConfig, workers int) (*gorm.DB, error) {
	d, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	sqlDB.SetMaxOpenConns(workers + 1)
	sqlDB.SetMaxIdleConns(workers + 1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

type videoRow struct {
	ID          int64
	Code        *string
	Title       *string
	Description *string
	ReleaseDate *time.Time
	CoverURL    *string
	CreatedAt   *time.Time
	Duration    *int
	Publisher   *string
}

func (r videoRow) toVideo() content.Video {
	v := content.Video{
		ID:          r.ID,
		Code:        deref(r.Code),
		Title:       deref(r.Title),
		Description: deref(r.Description),
		ReleaseDate: r.ReleaseDate,
		CoverURL:    deref(r.CoverURL),
		CreatedAt:   deref(r.CreatedAt),
		Publisher:   deref(r.Publisher),
	}
	if r.Duration != nil {
		v.Duration = *r.Duration
	}
	return v
}

type relRow struct {
	VideoID int64
	ID      int64
	Name    *string
}

type countRow struct {
	ID         int64
	Name       *string
	VideoCount int
}

// relation 描述一个多对多关联：实体表和连接表。
type relation struct {
	Name   string
	Table  string
	Join   string
	Column string
	assign func(v *content.Video, refs []content.Ref)
}

var relations = []relation{
	{Name: "actresses", Table: "actresses", Join: "video_actress", Column: "actress_id",
		assign: func(v *content.Video, refs []content.Ref) { v.Actresses = refs }},
	{Name: "genres", Table: "genres", Join: "video_genre", Column: "genre_id",
		assign: func(v *content.Video, refs []content.Ref) { v.Genres = refs }},
	{Name: "series", Table: "series", Join: "video_series", Column: "series_id",
		assign: func(v *content.Video, refs []content.Ref) { v.Series = refs }},
	{Name: "labels", Table: "labels", Join: "video_label", Column: "label_id",
		assign: func(v *content.Video, refs []content.Ref) { v.Labels = refs }},
}

// GormSource 从 MySQL/PostgreSQL 读取内容。关联数据每个关系一条批量查询，
// 某个关联查询失败时记录日志并当作空列表。
type GormSource struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewGormSource(db *gorm.DB, log *slog.Logger) *GormSource {
	if log == nil {
		log = slog.Default()
	}
	return &GormSource{db: db, log: log.With("component", "ingest")}
}

func (s *GormSource) Videos(ctx context.Context, opt ListOptions) ([]content.Video, error) {
	return s.videos(ctx, s.videosQuery(ctx, opt))
}

func (s *GormSource) VideosByGenre(ctx context.Context, genreID int64, opt ListOptions) ([]content.Video, error) {
	return s.videos(ctx, s.videosByQuery(ctx, "video_genre", "genre_id", genreID, opt))
}

func (s *GormSource) VideosByActress(ctx context.Context, actressID int64, opt ListOptions) ([]content.Video, error) {
	return s.videos(ctx, s.videosByQuery(ctx, "video_actress", "actress_id", actressID, opt))
}

func (s *GormSource) Genres(ctx context.Context) ([]content.Genre, error) {
	var rows []countRow
	if err := s.countQuery(ctx, "genres", "video_genre", "genre_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	out := make([]content.Genre, 0, len(rows))
	for _, r := range rows {
		out = append(out, content.Genre{
			ID:         r.ID,
			Name:       strings.TrimSpace(deref(r.Name)),
			VideoCount: r.VideoCount,
		})
	}
	SortGenres(out)
	return out, nil
}

func (s *GormSource) Actresses(ctx context.Context) ([]content.Actress, error) {
	var rows []countRow
	if err := s.countQuery(ctx, "actresses", "video_actress", "actress_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query actresses: %w", err)
	}
	out := make([]content.Actress, 0, len(rows))
	for _, r := range rows {
		out = append(out, content.Actress{
			ID:         r.ID,
			Name:       strings.TrimSpace(deref(r.Name)),
			VideoCount: r.VideoCount,
		})
	}
	SortActresses(out)
	return out, nil
}

func (s *GormSource) videos(ctx context.Context, q *gorm.DB) ([]content.Video, error) {
	var rows []videoRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	vs := make([]content.Video, len(rows))
	ids := make([]int64, len(rows))
	for i, r := range rows {
		vs[i] = r.toVideo()
		ids[i] = r.ID
	}
	s.attachRelations(ctx, vs, ids)
	for i := range vs {
		vs[i].Normalize()
	}
	return vs, nil
}

// relationBatch 是一条关联查询里最多绑定的影片 id 数，远低于 MySQL/PostgreSQL 的 65535 个占位符上限。
const relationBatch = 1000

func (s *GormSource) attachRelations(ctx context.Context, vs []content.Video, ids []int64) {
	if len(ids) == 0 {
		return
	}
	for _, rel := range relations {
		lookup := map[int64][]content.Ref{}
		for _, chunk := range chunkIDs(ids, relationBatch) {
			var rows []relRow
			if err := s.relationQuery(ctx, rel, chunk).Find(&rows).Error; err != nil {
				s.log.WarnContext(ctx, "relation query failed, using empty lists",
					"relation", rel.Name, "videos", len(chunk), "err", err)
				continue
			}
			for id, refs := range groupRelations(rows) {
				lookup[id] = refs
			}
		}
		for i := range vs {
			rel.assign(&vs[i], lookup[vs[i].ID])
		}
	}
}

func chunkIDs(ids []int64, size int) [][]int64 {
	var out [][]int64
	for len(ids) > size {
		out = append(out, ids[:size:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

func (s *GormSource) videosQuery(ctx context.Context, opt ListOptions) *gorm.DB {
	q := s.db.WithContext(ctx).Table("videos").Select("videos.*").Order(videoOrder)
	return paged(q, opt)
}

func (s *GormSource) videosByQuery(ctx context.Context, join, column string, id int64, opt ListOptions) *gorm.DB {
	q := s.db.WithContext(ctx).Table("videos").
		Select("videos.*").
		Joins(fmt.Sprintf("JOIN %s j ON j.video_id = videos.id", join)).
		Where(fmt.Sprintf("j.%s = ?", column), id).
		Order(videoOrder)
	return paged(q, opt)
}

func (s *GormSource) relationQuery(ctx context.Context, rel relation, ids []int64) *gorm.DB {
	return s.db.WithContext(ctx).Table(rel.Table+" r").
		Select("j.video_id AS video_id, r.id AS id, r.name AS name").
		Joins(fmt.Sprintf("JOIN %s j ON j.%s = r.id", rel.Join, rel.Column)).
		Where("j.video_id IN ?", ids).
		Order("j.video_id, r.id")
}

func (s *GormSource) countQuery(ctx context.Context, table, join, column string) *gorm.DB {
	return s.db.WithContext(ctx).Table(table + " t").
		Select("t.id AS id, t.name AS name, COUNT(j.video_id) AS video_count").
		Joins(fmt.Sprintf("LEFT JOIN %s j ON t.id = j.%s", join, column)).
		Group("t.id, t.name").
		Order("t.name ASC")
}

func paged(q *gorm.DB, opt ListOptions) *gorm.DB {
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}
	if opt.Offset > 0 {
		q = q.Offset(opt.Offset)
	}
	return q
}

// groupRelations 把批量查询的结果按影片 id 分组，保持查询顺序。
func groupRelations(rows []relRow) map[int64][]content.Ref {
	out := make(map[int64][]content.Ref)
	for _, r := range rows {
		name := strings.TrimSpace(deref(r.Name))
		if name == "" {
			continue
		}
		out[r.VideoID] = append(out[r.VideoID], content.Ref{ID: r.ID, Name: name})
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
