package logx

import (
	"bytes"
	"context"
	"fanhao/internal/domain/config"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewJSONWithBuildID(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	ctx := WithBuildID(context.Background(), "b-1")
	FromContext(ctx, Component(l, "build")).Info("done", "pages", 3)

	out := buf.String()
	require.Contains(t, out, `"build_id":"b-1"`)
	require.Contains(t, out, `"component":"build"`)
	require.Contains(t, out, `"pages":3`)
}

func TestInitFileOutput(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	path := filepath.Join(t.TempDir(), "logs", "build.log")
	l, err := Init(config.LogConfig{Level: "debug", Format: "text", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	l.Debug("hello file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello file")
}
