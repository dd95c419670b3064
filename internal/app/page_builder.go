package app

import (
	"context"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	"fanhao/internal/domain/site"
	"fanhao/internal/generate"
	"fanhao/internal/ingest"
	"fanhao/internal/logx"
	"html"
	"html/template"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type ContentType string

const (
	TypeIndex      ContentType = "index"
	TypeDetail     ContentType = "detail"
	TypeGenre      ContentType = "genre"
	TypeActress    ContentType = "actress"
	TypeOverview   ContentType = "overview"
	TypeDisclaimer ContentType = "disclaimer"
	TypeNotFound   ContentType = "404"
)

// ContentTypes 是生成顺序。
var ContentTypes = []ContentType{
	TypeIndex,
	TypeDetail,
	TypeGenre,
	TypeActress,
	TypeOverview,
	TypeDisclaimer,
	TypeNotFound,
}

// Job 是一条记录的页面生成任务，每种语言调用一次 Pages。
type Job struct {
	Type  ContentType
	Key   string
	Pages func(ctx context.Context, lang content.Language) ([]site.Page, error)
}

const (
	dirVideos    = "videos"
	dirGenres    = "genres"
	dirActresses = "actresses"

	summaryRunes = 80
	chipsPerItem = 3
)

type PageBuilder struct {
	Source   ingest.Source
	Gen      *generate.Orchestrator
	Resolver *site.Resolver
	Site     config.SiteConfig
	Build    config.BuildConfig
	Preview  config.PreviewConfig
	Reviews  bool
	Log      *slog.Logger

	mu        sync.Mutex
	videos    []content.Video
	genres    []content.Genre
	actresses []content.Actress
	loaded    map[string]bool
}

func NewPageBuilder(cfg config.Config, src ingest.Source, gen *generate.Orchestrator, res *site.Resolver, log *slog.Logger) *PageBuilder {
	if log == nil {
		log = slog.Default()
	}
	return &PageBuilder{
		Source:   src,
		Gen:      gen,
		Resolver: res,
		Site:     cfg.Site,
		Build:    cfg.Build,
		Preview:  cfg.PreviewLimits(),
		Reviews:  cfg.Generation.Reviews,
		Log:      logx.Component(log, "pages"),
		loaded:   map[string]bool{},
	}
}

func (b *PageBuilder) preview() config.PreviewConfig {
	return b.Preview
}

// Jobs 列出某种内容的所有生成任务。查询失败时返回错误，该类型整体跳过。
func (b *PageBuilder) Jobs(ctx context.Context, t ContentType) ([]Job, error) {
	switch t {
	case TypeIndex:
		return []Job{{Type: t, Key: "index", Pages: b.IndexPages}}, nil

	case TypeDetail:
		videos, err := b.allVideos(ctx)
		if err != nil {
			return nil, err
		}
		videos = capRecords(videos, b.preview().MaxRecords)
		jobs := make([]Job, 0, len(videos))
		for _, v := range videos {
			v := v
			jobs = append(jobs, Job{Type: t, Key: v.Identifier(), Pages: func(ctx context.Context, lang content.Language) ([]site.Page, error) {
				return []site.Page{b.VideoPage(ctx, v, lang)}, nil
			}})
		}
		return jobs, nil

	case TypeGenre:
		genres, err := b.allGenres(ctx)
		if err != nil {
			return nil, err
		}
		genres = capRecords(genres, b.preview().MaxRecords)
		jobs := make([]Job, 0, len(genres))
		for _, g := range genres {
			g := g
			jobs = append(jobs, Job{Type: t, Key: site.SlugifyID(g.ID), Pages: func(ctx context.Context, lang content.Language) ([]site.Page, error) {
				return b.GenrePages(ctx, g, lang)
			}})
		}
		return jobs, nil

	case TypeActress:
		actresses, err := b.allActresses(ctx)
		if err != nil {
			return nil, err
		}
		actresses = capRecords(actresses, b.preview().MaxRecords)
		jobs := make([]Job, 0, len(actresses))
		for _, a := range actresses {
			a := a
			jobs = append(jobs, Job{Type: t, Key: site.SlugifyID(a.ID), Pages: func(ctx context.Context, lang content.Language) ([]site.Page, error) {
				return b.ActressPages(ctx, a, lang)
			}})
		}
		return jobs, nil

	case TypeOverview:
		return []Job{
			{Type: t, Key: "genres_overview", Pages: b.single(b.GenresOverviewPage)},
			{Type: t, Key: "actresses_overview", Pages: b.single(b.ActressesOverviewPage)},
		}, nil

	case TypeDisclaimer:
		return []Job{{Type: t, Key: "disclaimer", Pages: func(ctx context.Context, lang content.Language) ([]site.Page, error) {
			return []site.Page{b.DisclaimerPage(lang)}, nil
		}}}, nil

	case TypeNotFound:
		return []Job{{Type: t, Key: "404", Pages: func(ctx context.Context, lang content.Language) ([]site.Page, error) {
			return []site.Page{b.NotFoundPage(lang)}, nil
		}}}, nil
	}
	return nil, nil
}

func (b *PageBuilder) single(fn func(context.Context, content.Language) (site.Page, error)) func(context.Context, content.Language) ([]site.Page, error) {
	return func(ctx context.Context, lang content.Language) ([]site.Page, error) {
		p, err := fn(ctx, lang)
		if err != nil {
			return nil, err
		}
		return []site.Page{p}, nil
	}
}

func capRecords[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		return items[:n]
	}
	return items
}

// 一次构建内只查询一次全量影片、类型和女优。
func (b *PageBuilder) allVideos(ctx context.Context) ([]content.Video, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded["videos"] {
		return b.videos, nil
	}
	p := b.preview()
	limit := 0
	if p.MaxItems > 0 && p.MaxRecords > 0 {
		limit = max(p.MaxItems, p.MaxRecords)
	}
	vs, err := b.Source.Videos(ctx, ingest.ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}
	b.videos, b.loaded["videos"] = vs, true
	return vs, nil
}

func (b *PageBuilder) allGenres(ctx context.Context) ([]content.Genre, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded["genres"] {
		return b.genres, nil
	}
	gs, err := b.Source.Genres(ctx)
	if err != nil {
		return nil, err
	}
	b.genres, b.loaded["genres"] = gs, true
	return gs, nil
}

func (b *PageBuilder) allActresses(ctx context.Context) ([]content.Actress, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded["actresses"] {
		return b.actresses, nil
	}
	as, err := b.Source.Actresses(ctx)
	if err != nil {
		return nil, err
	}
	b.actresses, b.loaded["actresses"] = as, true
	return as, nil
}

// ---- 路径 ----

func (b *PageBuilder) path(lang content.Language, dir, stem string, page int) string {
	return b.Resolver.Path(lang, site.Location{Dir: dir, Stem: stem, Page: page})
}

func (b *PageBuilder) videoPath(lang content.Language, v content.Video) string {
	return b.path(lang, dirVideos, site.Slugify(v.Identifier()), 0)
}

func (b *PageBuilder) genrePath(lang content.Language, id int64) string {
	return b.path(lang, dirGenres, site.SlugifyID(id), 0)
}

func (b *PageBuilder) actressPath(lang content.Language, id int64) string {
	return b.path(lang, dirActresses, site.SlugifyID(id), 0)
}

func (b *PageBuilder) canonical(p string) string {
	if b.Site.SiteURL == "" {
		return ""
	}
	return strings.TrimRight(b.Site.SiteURL, "/") + "/" + p
}

// ---- 通用上下文 ----

func (b *PageBuilder) newPage(kind site.PageKind, lang content.Language, key, path, tmpl string) site.Page {
	rel := func(to string) string { return b.Resolver.Rel(path, to) }
	return site.Page{
		Kind:     kind,
		Lang:     lang,
		Key:      key,
		Path:     path,
		Template: tmpl,
		Context: map[string]any{
			"lang":                   string(lang),
			"site_title":             b.Site.Title,
			"site_description":       b.Site.Description,
			"nav_home_url":           rel(b.path(lang, "", "index", 0)),
			"nav_all_categories_url": rel(b.path(lang, "", "genres_overview", 0)),
			"nav_all_actresses_url":  rel(b.path(lang, "", "actresses_overview", 0)),
			"nav_disclaimer_url":     rel(b.path(lang, "", "disclaimer", 0)),
		},
	}
}

func (b *PageBuilder) seo(page string, title, desc content.Localized[string], keywords []string, image string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": desc,
		"keywords":    strings.Join(keywords, ","),
		"canonical":   b.canonical(page),
		"og_image":    image,
	}
}

// paginate 给列表生成每一页。第 1 页的规范路径不带页码，带页码的路径作为别名。
func (b *PageBuilder) paginate(kind site.PageKind, lang content.Language, key, dir, stem, tmpl string, videos []content.Video, capItems int, fill func(ctx map[string]any, page string, items []content.Video, n int)) []site.Page {
	plan := site.NewPlan(len(videos), b.Build.ItemsPerPage, capItems)

	paths := make([]string, plan.TotalPages)
	for i := range paths {
		n := i + 1
		if n == 1 {
			paths[i] = b.path(lang, dir, stem, 0)
		} else {
			paths[i] = b.path(lang, dir, stem, n)
		}
	}

	pages := make([]site.Page, 0, plan.TotalPages)
	for _, n := range plan.Pages() {
		p := b.newPage(kind, lang, key, paths[n-1], tmpl)
		if n == 1 {
			p.Aliases = []string{b.path(lang, dir, stem, 1)}
		}
		p.Number = n
		p.Total = plan.TotalPages
		p.PagePaths = paths
		fill(p.Context, p.Path, site.Slice(videos, plan, n), n)
		pages = append(pages, p)
	}
	return pages
}

// ---- 条目 ----

func (b *PageBuilder) title(ctx context.Context, v content.Video) content.Localized[string] {
	raw := v.Title
	if raw == "" {
		raw = v.Identifier()
	}
	gen := func(lang content.Language) string {
		return b.Gen.Generate(ctx, generate.Request{
			Kind:   generate.KindTitle,
			Lang:   lang,
			Prompt: generate.TitlePrompt(lang, raw),
			Input:  raw,
			Tag:    v.Identifier(),
		}).Value
	}
	return content.L(gen(content.LangCN), gen(content.LangEN))
}

func (b *PageBuilder) name(ctx context.Context, ref content.Ref, sentinel content.Localized[string]) content.Localized[string] {
	if ref.Name == "" {
		return sentinel
	}
	return b.Gen.Localize(ctx, ref.Name)
}

// refs 生成关联实体的显示名和相对链接；linkTo 为 nil 表示该实体没有页面。
func (b *PageBuilder) refs(ctx context.Context, from string, items []content.Ref, linkTo func(id int64) string, sentinel content.Localized[string], limit int) []map[string]any {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]map[string]any, 0, len(items))
	for _, r := range items {
		url := ""
		if linkTo != nil {
			url = b.Resolver.Rel(from, linkTo(r.ID))
		}
		out = append(out, map[string]any{
			"id":   r.ID,
			"name": b.name(ctx, r, sentinel),
			"url":  url,
		})
	}
	return out
}

func summaryOf(v content.Video) content.Localized[string] {
	if v.Description == "" {
		return content.NoDescription
	}
	return content.Same(content.Summary(v.Description, summaryRunes))
}

func (b *PageBuilder) videoItem(ctx context.Context, lang content.Language, from string, v content.Video) map[string]any {
	actress := content.UnknownActress
	actressURL := ""
	if len(v.Actresses) > 0 {
		a := v.Actresses[0]
		actress = b.name(ctx, a, content.UnknownActress)
		actressURL = b.Resolver.Rel(from, b.actressPath(lang, a.ID))
	}
	cover := v.CoverURL
	if cover == "" {
		cover = b.Resolver.Assets(from).PlaceholderThumb
	}
	return map[string]any{
		"fanhao":              v.Identifier(),
		"title":               b.title(ctx, v),
		"actress_name":        actress,
		"actress_url":         actressURL,
		"summary":             summaryOf(v),
		"release_date":        v.ReleaseDateString(),
		"detail_url":          b.Resolver.Rel(from, b.videoPath(lang, v)),
		"cover_thumbnail_url": cover,
		"genres_for_template": b.refs(ctx, from, v.Genres, func(id int64) string { return b.genrePath(lang, id) }, content.Uncategorized, chipsPerItem),
	}
}

func (b *PageBuilder) videoItems(ctx context.Context, lang content.Language, from string, vs []content.Video) []map[string]any {
	out := make([]map[string]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, b.videoItem(ctx, lang, from, v))
	}
	return out
}

// ---- 首页 ----

func (b *PageBuilder) IndexPages(ctx context.Context, lang content.Language) ([]site.Page, error) {
	videos, err := b.allVideos(ctx)
	if err != nil {
		return nil, err
	}
	genres, err := b.allGenres(ctx)
	if err != nil {
		b.Log.Warn("hot genres unavailable", "err", err)
		genres = nil
	}
	actresses, err := b.allActresses(ctx)
	if err != nil {
		b.Log.Warn("hot actresses unavailable", "err", err)
		actresses = nil
	}

	title := content.L(b.Site.Title+" - 最新影片", b.Site.Title+" - Latest Videos")
	desc := content.L(b.Site.Description, b.Site.Description)

	pages := b.paginate(site.PageIndex, lang, "index", "", "index", "index.tmpl", videos, b.preview().MaxItems,
		func(c map[string]any, page string, items []content.Video, n int) {
			c["latest_videos"] = b.videoItems(ctx, lang, page, items)
			c["featured_videos"] = []map[string]any{}
			c["hot_genres"] = []map[string]any{}
			c["hot_actresses"] = []map[string]any{}
			c["hot_rank_videos"] = []map[string]any{}
			if n == 1 {
				c["featured_videos"] = b.videoItems(ctx, lang, page, capRecords(videos, b.Build.FeaturedCount))
				c["hot_genres"] = b.hotGenres(ctx, lang, page, genres)
				c["hot_actresses"] = b.hotActresses(ctx, lang, page, actresses)
				c["hot_rank_videos"] = b.videoItems(ctx, lang, page, hotRank(videos, genres, actresses, b.Build.HotRankCount))
			}
			c["seo"] = b.seo(page, pagedTitle(title, n), desc, nil, b.Resolver.Assets(page).PlaceholderOGVideo)
		})
	return pages, nil
}

// pagedTitle 在第 2 页起的标题后面加上页码，避免分页之间标题重复。
func pagedTitle(t content.Localized[string], n int) content.Localized[string] {
	if n <= 1 {
		return t
	}
	num := strconv.Itoa(n)
	return content.L(t.CN+" 第"+num+"頁", t.EN+" - Page "+num)
}

// hotRank 按影片所属类型和女优的作品总数排序，同分保持原有的发行日期顺序。
func hotRank(vs []content.Video, gs []content.Genre, as []content.Actress, n int) []content.Video {
	if n <= 0 || len(vs) == 0 {
		return nil
	}
	genreCount := make(map[int64]int, len(gs))
	for _, g := range gs {
		genreCount[g.ID] = g.VideoCount
	}
	actressCount := make(map[int64]int, len(as))
	for _, a := range as {
		actressCount[a.ID] = a.VideoCount
	}
	score := func(v content.Video) int {
		s := 0
		for _, r := range v.Genres {
			s += genreCount[r.ID]
		}
		for _, r := range v.Actresses {
			s += actressCount[r.ID]
		}
		return s
	}

	ranked := make([]content.Video, len(vs))
	copy(ranked, vs)
	scores := make(map[int64]int, len(ranked))
	for _, v := range ranked {
		scores[v.ID] = score(v)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return scores[ranked[i].ID] > scores[ranked[j].ID] })
	return capRecords(ranked, n)
}

func (b *PageBuilder) hotGenres(ctx context.Context, lang content.Language, from string, gs []content.Genre) []map[string]any {
	hot := make([]content.Genre, len(gs))
	copy(hot, gs)
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].VideoCount > hot[j].VideoCount })
	hot = capRecords(hot, b.Build.HotCount)
	out := make([]map[string]any, 0, len(hot))
	for _, g := range hot {
		out = append(out, map[string]any{
			"name":  b.name(ctx, content.Ref{ID: g.ID, Name: g.Name}, content.Uncategorized),
			"url":   b.Resolver.Rel(from, b.genrePath(lang, g.ID)),
			"count": g.VideoCount,
		})
	}
	return out
}

func (b *PageBuilder) hotActresses(ctx context.Context, lang content.Language, from string, as []content.Actress) []map[string]any {
	hot := make([]content.Actress, len(as))
	copy(hot, as)
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].VideoCount > hot[j].VideoCount })
	hot = capRecords(hot, b.Build.HotCount)
	out := make([]map[string]any, 0, len(hot))
	for _, a := range hot {
		out = append(out, map[string]any{
			"name":  b.name(ctx, content.Ref{ID: a.ID, Name: a.Name}, content.UnknownActress),
			"url":   b.Resolver.Rel(from, b.actressPath(lang, a.ID)),
			"count": a.VideoCount,
		})
	}
	return out
}

// ---- 详情页 ----

func (b *PageBuilder) VideoPage(ctx context.Context, v content.Video, lang content.Language) site.Page {
	path := b.videoPath(lang, v)
	p := b.newPage(site.PageVideo, lang, v.Identifier(), path, "video.tmpl")
	c := p.Context

	genreLink := func(id int64) string { return b.genrePath(lang, id) }
	actressLink := func(id int64) string { return b.actressPath(lang, id) }

	title := b.title(ctx, v)
	actresses := b.refs(ctx, path, v.Actresses, actressLink, content.UnknownActress, 0)
	genres := b.refs(ctx, path, v.Genres, genreLink, content.Uncategorized, 0)

	actress := content.UnknownActress
	actressURL := ""
	if len(actresses) > 0 {
		actress = actresses[0]["name"].(content.Localized[string])
		actressURL = actresses[0]["url"].(string)
	}
	primary := content.Uncategorized
	primaryURL := ""
	if len(genres) > 0 {
		primary = genres[0]["name"].(content.Localized[string])
		primaryURL = genres[0]["url"].(string)
	}

	keywords := make([]string, 0, len(genres))
	for _, g := range genres {
		keywords = append(keywords, g["name"].(content.Localized[string]).Project(lang))
	}
	facts := generate.VideoFacts{
		Code:        v.Identifier(),
		Title:       title.Project(lang),
		Actress:     actress.Project(lang),
		Keywords:    keywords,
		Description: v.Description,
	}

	summary := b.Gen.Generate(ctx, generate.Request{
		Kind:   generate.KindSummary,
		Lang:   lang,
		Prompt: generate.SummaryPrompt(lang, facts),
		Input:  v.Description,
		Tag:    v.Identifier(),
	})
	reviewReq := generate.Request{Kind: generate.KindReview, Lang: lang, Tag: v.Identifier()}
	if b.Reviews {
		reviewReq.Prompt = generate.ReviewPrompt(lang, facts)
	}
	review := b.Gen.Generate(ctx, reviewReq)

	cover := v.CoverURL
	assets := b.Resolver.Assets(path)
	if cover == "" {
		cover = assets.PlaceholderThumb
	}
	og := v.CoverURL
	if og == "" {
		og = assets.PlaceholderOGVideo
	}

	c["fanhao"] = v.Identifier()
	c["title"] = title
	c["original_title"] = v.Title
	c["release_date"] = v.ReleaseDateString()
	c["duration"] = v.DurationString()
	c["publisher"] = v.Publisher
	c["cover_url"] = cover
	c["actresses"] = actresses
	c["actress_name"] = actress
	c["actress_url"] = actressURL
	c["genres"] = genres
	c["primary_genre"] = primary
	c["primary_genre_url"] = primaryURL
	c["series"] = b.refs(ctx, path, v.Series, nil, content.Uncategorized, 0)
	c["labels"] = b.refs(ctx, path, v.Labels, nil, content.Uncategorized, 0)
	c["summary"] = summaryOf(v)
	c["plot_html"] = plotHTML(v.Description)
	c["review_html"] = template.HTML(review.Value)
	c["review_is_placeholder"] = review.Fallback

	seoTitle := content.L(title.CN+" | "+v.Identifier(), title.EN+" | "+v.Identifier())
	c["seo"] = b.seo(path, seoTitle, content.Same(summary.Value), keywords, og)
	return p
}

func plotHTML(desc string) content.Localized[template.HTML] {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return content.L(template.HTML(generate.PlotFallback.CN), template.HTML(generate.PlotFallback.EN))
	}
	var sb strings.Builder
	for _, para := range strings.Split(generate.Paragraphs(desc), "\n\n") {
		sb.WriteString("<p>" + html.EscapeString(para) + "</p>")
	}
	return content.Same(template.HTML(sb.String()))
}

// ---- 类型 / 女优列表 ----

func (b *PageBuilder) capItems() int {
	if p := b.preview(); p.MaxPages > 0 {
		per := b.Build.ItemsPerPage
		if per <= 0 {
			per = 20
		}
		return p.MaxPages * per
	}
	return 0
}

func (b *PageBuilder) GenrePages(ctx context.Context, g content.Genre, lang content.Language) ([]site.Page, error) {
	videos, err := b.Source.VideosByGenre(ctx, g.ID, ingest.ListOptions{Limit: b.capItems()})
	if err != nil {
		return nil, err
	}
	name := b.name(ctx, content.Ref{ID: g.ID, Name: g.Name}, content.Uncategorized)
	desc := content.L(
		name.CN+" 類型影片列表，共 "+strconv.Itoa(len(videos))+" 部。",
		name.EN+" videos, "+strconv.Itoa(len(videos))+" in total.",
	)
	if g.Description != "" {
		desc = content.Same(g.Description)
	}
	key := site.SlugifyID(g.ID)
	pages := b.paginate(site.PageGenre, lang, key, dirGenres, key, "genre.tmpl", videos, 0,
		func(c map[string]any, page string, items []content.Video, n int) {
			c["genre_name"] = name
			c["genre_description"] = desc
			c["video_count"] = len(videos)
			c["videos"] = b.videoItems(ctx, lang, page, items)
			c["seo"] = b.seo(page, pagedTitle(name, n), desc, []string{g.Name}, b.Resolver.Assets(page).PlaceholderOGCategory)
		})
	return pages, nil
}

func (b *PageBuilder) ActressPages(ctx context.Context, a content.Actress, lang content.Language) ([]site.Page, error) {
	videos, err := b.Source.VideosByActress(ctx, a.ID, ingest.ListOptions{Limit: b.capItems()})
	if err != nil {
		return nil, err
	}
	name := b.name(ctx, content.Ref{ID: a.ID, Name: a.Name}, content.UnknownActress)
	desc := content.L(
		name.CN+" 的影片列表，共 "+strconv.Itoa(len(videos))+" 部。",
		"Videos starring "+name.EN+", "+strconv.Itoa(len(videos))+" in total.",
	)
	key := site.SlugifyID(a.ID)
	pages := b.paginate(site.PageActress, lang, key, dirActresses, key, "actress.tmpl", videos, 0,
		func(c map[string]any, page string, items []content.Video, n int) {
			c["actress_name"] = name
			c["actress_description"] = desc
			c["video_count"] = len(videos)
			c["videos"] = b.videoItems(ctx, lang, page, items)
			c["seo"] = b.seo(page, pagedTitle(name, n), desc, []string{a.Name}, b.Resolver.Assets(page).PlaceholderOGActress)
		})
	return pages, nil
}

// ---- 总览 ----

func (b *PageBuilder) GenresOverviewPage(ctx context.Context, lang content.Language) (site.Page, error) {
	genres, err := b.allGenres(ctx)
	if err != nil {
		return site.Page{}, err
	}
	path := b.path(lang, "", "genres_overview", 0)
	p := b.newPage(site.PageGenresOverview, lang, "genres_overview", path, "genres_overview.tmpl")
	items := make([]map[string]any, 0, len(genres))
	for _, g := range genres {
		items = append(items, map[string]any{
			"name":  b.name(ctx, content.Ref{ID: g.ID, Name: g.Name}, content.Uncategorized),
			"url":   b.Resolver.Rel(path, b.genrePath(lang, g.ID)),
			"count": g.VideoCount,
		})
	}
	title := content.L("所有類型", "All Categories")
	p.Context["items"] = items
	p.Context["page_heading"] = title
	p.Context["seo"] = b.seo(path, title, content.L("按類型瀏覽全部影片。", "Browse all videos by category."), nil, b.Resolver.Assets(path).PlaceholderOGCategory)
	return p, nil
}

func (b *PageBuilder) ActressesOverviewPage(ctx context.Context, lang content.Language) (site.Page, error) {
	actresses, err := b.allActresses(ctx)
	if err != nil {
		return site.Page{}, err
	}
	path := b.path(lang, "", "actresses_overview", 0)
	p := b.newPage(site.PageActressesOverview, lang, "actresses_overview", path, "actresses_overview.tmpl")
	items := make([]map[string]any, 0, len(actresses))
	for _, a := range actresses {
		items = append(items, map[string]any{
			"name":  b.name(ctx, content.Ref{ID: a.ID, Name: a.Name}, content.UnknownActress),
			"url":   b.Resolver.Rel(path, b.actressPath(lang, a.ID)),
			"count": a.VideoCount,
		})
	}
	title := content.L("所有女優", "All Actresses")
	p.Context["items"] = items
	p.Context["page_heading"] = title
	p.Context["seo"] = b.seo(path, title, content.L("按女優瀏覽全部影片。", "Browse all videos by actress."), nil, b.Resolver.Assets(path).PlaceholderOGActress)
	return p, nil
}

// ---- 固定页面 ----

func (b *PageBuilder) DisclaimerPage(lang content.Language) site.Page {
	path := b.path(lang, "", "disclaimer", 0)
	p := b.newPage(site.PageDisclaimer, lang, "disclaimer", path, "disclaimer.tmpl")
	title := content.L("免責聲明", "Disclaimer")
	p.Context["page_heading"] = title
	p.Context["seo"] = b.seo(path, title, title, nil, b.Resolver.Assets(path).PlaceholderOGVideo)
	return p
}

func (b *PageBuilder) NotFoundPage(lang content.Language) site.Page {
	path := b.path(lang, "", "404", 0)
	p := b.newPage(site.PageNotFound, lang, "404", path, "404.tmpl")
	title := content.L("找不到頁面", "Page Not Found")
	p.Context["page_heading"] = title
	p.Context["seo"] = b.seo(path, title, title, nil, b.Resolver.Assets(path).PlaceholderOGVideo)
	return p
}
