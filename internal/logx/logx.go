package logx

import (
	"context"
	"fanhao/internal/domain/config"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const buildIDKey contextKey = "build_id"

// Init 按配置创建全局 logger：stdout、滚动文件或两者都写。
func Init(cfg config.LogConfig) (*slog.Logger, error) {
	var writers []io.Writer

	out := cfg.Output
	if out == "" {
		out = "stdout"
	}
	if out == "stdout" || out == "both" {
		writers = append(writers, os.Stdout)
	}
	if out == "file" || out == "both" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	l := New(w, cfg.Level, cfg.Format)
	slog.SetDefault(l)
	return l, nil
}

func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard 用于测试和不需要输出的场景。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Component 返回带 component 属性的 logger，l 为 nil 时使用默认 logger。
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", name)
}

func WithBuildID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, buildIDKey, id)
}

func BuildID(ctx context.Context) string {
	if id, ok := ctx.Value(buildIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext 在 logger 上附加 ctx 里的 build_id。
func FromContext(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if id := BuildID(ctx); id != "" {
		return l.With("build_id", id)
	}
	return l
}
