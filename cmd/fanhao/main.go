package main

import (
	"context"
	"errors"
	"fanhao/internal/app"
	"fanhao/internal/build"
	"fanhao/internal/domain/config"
	domainerr "fanhao/internal/domain/errors"
	"fanhao/internal/logx"
	"fanhao/internal/textcache"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"
)

func main() {
	var (
		configPath = flag.String("config", "./site.yaml", "site config file")
		watchMode  = flag.Bool("watch", false, "rebuild when the theme or config changes")
		purge      = flag.String("purge-cache", "", "drop cached texts of a kind (title|phrase|summary|review|all) and exit")
		cacheStats = flag.Bool("cache-stats", false, "print text cache stats and exit")
	)
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		var ve domainerr.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "load config:", err.Error())
		os.Exit(1)
	}

	log, err := logx.Init(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init log:", err.Error())
		os.Exit(1)
	}

	if *purge != "" || *cacheStats {
		if err := cacheCommand(cfg.Generation.CachePath, *purge, *cacheStats); err != nil {
			fmt.Fprintln(os.Stderr, "cache error:", err.Error())
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := build.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init error:", err.Error())
		os.Exit(1)
	}

	if *watchMode {
		err = runWatch(ctx, rt, cfg, *configPath, log)
	} else {
		err = buildOnce(ctx, rt, cfg)
	}
	rt.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "build error:", err.Error())
		os.Exit(1)
	}
}

func buildOnce(ctx context.Context, rt *build.Runtime, cfg config.Config) error {
	res, err := rt.Builder(cfg).Run(ctx)
	if err != nil {
		return err
	}
	printSummary(res)
	return nil
}

func printSummary(res *build.Result) {
	fmt.Printf("build %s: %d pages generated, %d skipped in %s\n", res.BuildID, res.Generated(), res.Skipped(), res.Duration.Round(time.Millisecond))
	for _, ct := range app.ContentTypes {
		s := res.Types[ct]
		fmt.Printf("  %-10s generated=%d skipped=%d\n", ct, s.Generated, s.Skipped)
	}
	fmt.Printf("  texts: generated=%d fallback=%d cached=%d\n", res.Generation.Generated, res.Generation.Fallbacks, res.Generation.CacheHits)
	if res.SitemapURLs > 0 {
		fmt.Printf("  sitemap: %d urls\n", res.SitemapURLs)
	}
	if n := len(res.BrokenLinks); n > 0 {
		fmt.Printf("  broken links: %d\n", n)
	}
	fmt.Printf("  render hash: %s\n", res.Fingerprint.RenderHash)
}

func cacheCommand(path, purge string, stats bool) error {
	if path == "" {
		return errors.New("text cache is not configured (generation.cache_path)")
	}
	store, err := textcache.Open(textcache.OpenOptions{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()
	if purge != "" {
		kind := purge
		if kind == "all" {
			kind = ""
		}
		n, err := store.Purge(kind)
		if err != nil {
			return err
		}
		fmt.Printf("purged %d cached texts\n", n)
	}
	if stats {
		st, err := store.Stats()
		if err != nil {
			return err
		}
		kinds := make([]string, 0, len(st.Entries))
		for k := range st.Entries {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Printf("%-8s entries=%d hits=%d\n", k, st.Entries[k], st.Hits[k])
		}
	}
	return nil
}
