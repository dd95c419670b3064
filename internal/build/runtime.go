package build

import (
	"context"
	"errors"
	"fanhao/internal/domain/config"
	"fanhao/internal/generate"
	"fanhao/internal/ingest"
	"fanhao/internal/render"
	"fanhao/internal/textcache"
	"fmt"
	"log/slog"
)

// Runtime 持有多次构建之间共享的外部资源：数据库连接池、生成服务和文本缓存。
type Runtime struct {
	Source ingest.Source

	svc     generate.Service
	cache   *textcache.Store
	log     *slog.Logger
	closers []func() error
}

func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Runtime, error) {
	rt := &Runtime{log: log}

	db, err := ingest.OpenDB(cfg.Database, cfg.Build.Workers)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, sqlDB.Close)
	rt.Source = ingest.NewGormSource(db, log)

	svc, err := generate.NewService(ctx, cfg.Generation)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("generation service: %w", err)
	}
	if svc != nil {
		rt.svc = svc
		if c, ok := svc.(interface{ Close() error }); ok {
			rt.closers = append(rt.closers, c.Close)
		}
	} else {
		log.Warn("no generation api key, using fallback text")
	}

	if cfg.Generation.CachePath != "" {
		store, err := textcache.Open(textcache.OpenOptions{Path: cfg.Generation.CachePath})
		if err != nil {
			// 缓存打不开不影响构建
			log.Warn("open text cache failed", "path", cfg.Generation.CachePath, "err", err)
		} else {
			rt.cache = store
			rt.closers = append(rt.closers, store.Close)
		}
	}
	return rt, nil
}

// Builder 每次返回新的 Builder；生成统计和记忆缓存按构建计算。
func (rt *Runtime) Builder(cfg config.Config) *Builder {
	opt := generate.OptionsFrom(cfg.Generation)
	opt.HTML = render.NewMarkdownRenderer().HTML
	opt.Logger = rt.log
	if rt.cache != nil {
		opt.Cache = rt.cache
	}
	return &Builder{
		Cfg:    cfg,
		Source: rt.Source,
		Gen:    generate.NewOrchestrator(rt.svc, opt),
		Log:    rt.log,
	}
}

func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
