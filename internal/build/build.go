package build

import (
	"context"
	"fanhao/internal/app"
	domainbuild "fanhao/internal/domain/build"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	domainerr "fanhao/internal/domain/errors"
	"fanhao/internal/domain/site"
	"fanhao/internal/generate"
	"fanhao/internal/ingest"
	"fanhao/internal/logx"
	"fanhao/internal/render"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type Builder struct {
	Cfg    config.Config
	Source ingest.Source
	Gen    *generate.Orchestrator
	Log    *slog.Logger
}

type TypeStats struct {
	Generated int
	Skipped   int
}

type Result struct {
	BuildID     string
	Types       map[app.ContentType]TypeStats
	Pages       []string // 非别名页面，按路径排序
	SitemapURLs int
	BrokenLinks []BrokenLink
	Fingerprint domainbuild.Fingerprint
	Generation  generate.Stats
	Duration    time.Duration
}

func (r *Result) Generated() int {
	n := 0
	for _, s := range r.Types {
		n += s.Generated
	}
	return n
}

func (r *Result) Skipped() int {
	n := 0
	for _, s := range r.Types {
		n += s.Skipped
	}
	return n
}

// tally 记录生成结果，多个 worker 并发写入。
type tally struct {
	mu    sync.Mutex
	types map[app.ContentType]TypeStats
	pages []writtenPage
}

type writtenPage struct {
	Path string
	Lang content.Language
}

func (t *tally) ok(ct app.ContentType, p site.Page) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.types[ct]
	s.Generated++
	t.types[ct] = s
	t.pages = append(t.pages, writtenPage{Path: p.Path, Lang: p.Lang})
}

func (t *tally) skip(ct app.ContentType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.types[ct]
	s.Skipped++
	t.types[ct] = s
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()
	ctx = logx.WithBuildID(ctx, id)
	base := b.Log
	if base == nil {
		base = slog.Default()
	}
	log := logx.FromContext(ctx, logx.Component(base, "build"))

	gen := b.Gen
	if gen == nil {
		gen = generate.NewOrchestrator(nil, generate.Options{Logger: base})
	}

	scheme, err := site.NewScheme(b.Cfg.Site.URLStyle, b.Cfg.Site.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	resolver := site.NewResolver(scheme)

	themeDir := filepath.Join(b.Cfg.Build.ThemeDir, b.Cfg.Site.Theme)
	if err := render.CheckThemeTemplates(themeDir); err != nil {
		return nil, fmt.Errorf("load theme(%s): %w", themeDir, err)
	}
	tpl, err := render.NewTemplateRenderer(b.Cfg.Build.ThemeDir, b.Cfg.Site.Theme)
	if err != nil {
		return nil, fmt.Errorf("load theme(%s): %w", themeDir, err)
	}

	outDir := b.Cfg.Build.OutputDir
	log.Info("build started", "output", outDir, "url_style", scheme.Style(), "workers", b.Cfg.Build.Workers, "generation", gen.Available())

	// CLEAN_OUTPUT 失败是唯一的致命错误
	if err := cleanOutput(outDir); err != nil {
		return nil, &domainerr.StageError{Stage: "clean", Fatal: true, Err: err}
	}

	if err := copyStaticAssets(filepath.Join(themeDir, "static"), filepath.Join(outDir, site.StaticDir)); err != nil {
		log.Error("copy static assets failed", "err", err)
	}

	t := &tally{types: make(map[app.ContentType]TypeStats, len(app.ContentTypes))}
	pb := app.NewPageBuilder(b.Cfg, b.Source, gen, resolver, base)
	w := render.NewWriter(tpl, resolver, outDir, b.Cfg.Build.Now)

	for _, ct := range app.ContentTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.generate(ctx, log, pb, w, t, ct)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		BuildID:    id,
		Types:      t.types,
		Generation: gen.Stats(),
	}
	for _, p := range t.pages {
		res.Pages = append(res.Pages, p.Path)
	}
	sort.Strings(res.Pages)

	if b.Cfg.Build.Sitemap && b.Cfg.Site.SiteURL != "" {
		n, err := writeSitemap(outDir, b.Cfg.Site.SiteURL, resolver, t.pages, b.Cfg.Build.Now)
		if err != nil {
			log.Error("write sitemap failed", "err", err)
		}
		res.SitemapURLs = n
	}

	if b.Cfg.Build.AuditLinks {
		broken, err := AuditLinks(outDir)
		if err != nil {
			log.Error("link audit failed", "err", err)
		}
		for _, bl := range broken {
			log.Warn("broken link", "page", bl.Page, "target", bl.Target)
		}
		res.BrokenLinks = broken
	}

	fp, err := b.fingerprint(themeDir, outDir)
	if err != nil {
		log.Warn("fingerprint failed", "err", err)
	}
	res.Fingerprint = fp
	res.Duration = time.Since(start)

	for _, ct := range app.ContentTypes {
		s := res.Types[ct]
		log.Info("content type done", "type", ct, "generated", s.Generated, "skipped", s.Skipped)
	}
	log.Info("build finished",
		"generated", res.Generated(),
		"skipped", res.Skipped(),
		"sitemap_urls", res.SitemapURLs,
		"broken_links", len(res.BrokenLinks),
		"texts_generated", res.Generation.Generated,
		"texts_fallback", res.Generation.Fallbacks,
		"render_hash", fp.RenderHash,
		"duration", res.Duration,
	)
	return res, nil
}

// generate 执行一个 GENERATE(type, lang) 步骤。单条记录失败只记录并计为跳过。
func (b *Builder) generate(ctx context.Context, log *slog.Logger, pb *app.PageBuilder, w *render.Writer, t *tally, ct app.ContentType) {
	jobs, err := pb.Jobs(ctx, ct)
	if err != nil {
		log.Error("list records failed", "type", ct, "err", err)
		for range content.Languages {
			t.skip(ct)
		}
		return
	}

	workers := b.Cfg.Build.Workers
	if workers <= 0 {
		workers = 1
	}

	for _, lang := range content.Languages {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				pages, err := job.Pages(gctx, lang)
				if err != nil {
					log.Error("build pages failed", "type", ct, "record", job.Key, "lang", lang, "err", err)
					t.skip(ct)
					return nil
				}
				for _, p := range pages {
					if err := w.Write(gctx, p); err != nil {
						log.Error("write page failed", "type", ct, "record", job.Key, "lang", lang, "path", p.Path, "err", err)
						t.skip(ct)
						continue
					}
					t.ok(ct, p)
				}
				return nil
			})
		}
		_ = g.Wait()
	}
}

func (b *Builder) fingerprint(themeDir, outDir string) (domainbuild.Fingerprint, error) {
	var fp domainbuild.Fingerprint
	var err error
	if fp.ThemeHash, _, err = domainbuild.HashTree(themeDir); err != nil {
		return fp, err
	}
	cfg := b.Cfg
	cfg.Generation.APIKey = ""
	cfg.Database.Password = ""
	cfg.Database.DSN = ""
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fp, err
	}
	fp.ConfigHash = domainbuild.HashBytes(data)
	if fp.OutputHash, fp.Files, err = domainbuild.HashTree(outDir); err != nil {
		return fp, err
	}
	fp.ComputeRenderHash()
	return fp, nil
}

// cleanOutput 删除并重建输出目录，拒绝明显危险的路径。
func cleanOutput(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == string(filepath.Separator) || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return fmt.Errorf("refusing to clean output dir %q", dir)
	}
	if err := os.RemoveAll(clean); err != nil {
		return err
	}
	return os.MkdirAll(clean, 0o755)
}
