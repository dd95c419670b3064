package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher 监听主题目录和配置文件，变化后合并成一次重建。
type Watcher struct {
	Dirs     []string // 递归监听
	Files    []string // 只关心这些文件本身
	Debounce time.Duration
	Timeout  time.Duration // 单次重建的超时，0 表示不限制
	Rebuild  func(ctx context.Context) error
	Log      *slog.Logger

	fw    *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]bool
}

// Run 先构建一次，然后一直监听到 ctx 结束。
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return errors.New("watch: missing rebuild func")
	}
	if w.Log == nil {
		w.Log = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	w.fw = fw
	w.files = map[string]bool{}
	w.dirs = map[string]bool{}

	for _, d := range w.Dirs {
		if err := w.addTree(d); err != nil {
			return err
		}
	}
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = true
		// 编辑器常用 rename 覆盖文件，所以监听所在目录
		if err := w.fw.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	w.rebuild(ctx)
	w.loop(ctx)
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.dirs[abs] = true
		return w.fw.Add(abs)
	})
}

// relevant 判断事件是否需要触发重建；新建的子目录顺便加入监听。
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if w.files[name] {
		return true
	}
	if !w.underTree(name) {
		return false
	}
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTree(name); err != nil {
				w.Log.Warn("watch new dir failed", "dir", name, "err", err)
			}
		}
	}
	return true
}

func (w *Watcher) underTree(name string) bool {
	for dir := filepath.Dir(name); ; dir = filepath.Dir(dir) {
		if w.dirs[dir] {
			return true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}

func (w *Watcher) loop(ctx context.Context) {
	w.Log.Info("watching for file changes", "dirs", w.Dirs, "files", w.Files)
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(delay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				trigger()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.Log.Warn("watcher error", "err", err)
		case <-debounce.C:
			debounce.Stop()
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}
	if err := w.Rebuild(ctx); err != nil {
		w.Log.Error("rebuild failed", "err", err)
	}
}
