package main

import (
	"context"
	"fanhao/internal/build"
	"fanhao/internal/domain/config"
	"fanhao/internal/watch"
	"log/slog"
	"path/filepath"
)

// runWatch 在主题或配置变化时重新构建。配置文件改坏时沿用上一次有效的配置。
func runWatch(ctx context.Context, rt *build.Runtime, cfg config.Config, configPath string, log *slog.Logger) error {
	current := cfg
	w := &watch.Watcher{
		Dirs:  []string{filepath.Join(cfg.Build.ThemeDir, cfg.Site.Theme)},
		Files: []string{configPath},
		Log:   log,
		Rebuild: func(ctx context.Context) error {
			next, err := config.LoadOrDefault(configPath)
			if err != nil {
				log.Warn("reload config failed, keeping previous", "err", err)
			} else {
				current = next
			}
			res, err := rt.Builder(current).Run(ctx)
			if err != nil {
				return err
			}
			printSummary(res)
			return nil
		},
	}
	return w.Run(ctx)
}
