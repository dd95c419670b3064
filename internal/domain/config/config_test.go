package config

import (
	"errors"
	domainerr "fanhao/internal/domain/errors"
	"fanhao/internal/domain/site"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 20, cfg.Build.ItemsPerPage)
	require.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	require.Equal(t, 3, cfg.Generation.Attempts)
	require.Equal(t, site.StyleSuffix, cfg.Site.URLStyle)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Site.Title = " "
	cfg.Site.SiteURL = "ftp://example"
	cfg.Site.URLStyle = "query"
	cfg.Build.OutputDir = "/"
	cfg.Build.ItemsPerPage = 0
	cfg.Database.Driver = "oracle"
	cfg.Generation.Attempts = 0

	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, domainerr.ErrInvalid))

	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]bool{}
	for _, it := range ve.Items {
		fields[it.Field] = true
	}
	for _, f := range []string{"site.title", "site.site_url", "site.url_style", "build.output_dir", "build.items_per_page", "database.driver", "generation.attempts"} {
		require.True(t, fields[f], "missing %s", f)
	}
}

func TestTemperatureRange(t *testing.T) {
	cfg := Default()
	cfg.Generation.Temperature = 0
	require.NoError(t, cfg.Validate())

	cfg.Generation.Temperature = 2.5
	var ve domainerr.ValidationError
	require.True(t, errors.As(cfg.Validate(), &ve))
	require.Equal(t, "generation.temperature", ve.Items[0].Field)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yml := `
site:
  title: Night Notes
  site_url: https://example.com
  url_style: prefix
build:
  output_dir: public
  items_per_page: 12
  preview:
    enabled: true
    max_pages: 2
generation:
  provider: gemini
  timeout: 10s
  retry_delay: 0s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Night Notes", cfg.Site.Title)
	require.Equal(t, site.StylePrefix, cfg.Site.URLStyle)
	require.Equal(t, "public", cfg.Build.OutputDir)
	require.Equal(t, 12, cfg.Build.ItemsPerPage)
	require.Equal(t, 10*time.Second, cfg.Generation.Timeout)
	require.Zero(t, cfg.Generation.RetryDelay)
	require.Equal(t, "gemini", cfg.Generation.Provider)
	// 未写到的字段保留默认值
	require.Equal(t, 3, cfg.Generation.Attempts)
	require.Equal(t, 2, cfg.PreviewLimits().MaxPages)
	require.False(t, cfg.Build.Now.IsZero())
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "output", cfg.Build.OutputDir)
	require.Equal(t, PreviewConfig{}, cfg.PreviewLimits())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "fanhao")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("ITEMS_PER_PAGE", "30")
	t.Setenv("TEST_MODE", "true")
	t.Setenv("TEST_LIMIT_TOTAL_VIDEOS", "40")
	t.Setenv("TEST_LIMIT_PAGES_PER_CATEGORY", "notanumber")
	t.Setenv("GENERATION_RETRY_DELAY", "250ms")

	cfg := Default()
	ApplyEnv(&cfg)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "fanhao", cfg.Database.Name)
	require.Equal(t, "sk-test", cfg.Generation.APIKey)
	require.Equal(t, 30, cfg.Build.ItemsPerPage)
	require.True(t, cfg.Build.Preview.Enabled)
	require.Equal(t, 40, cfg.Build.Preview.MaxItems)
	require.Zero(t, cfg.Build.Preview.MaxPages)
	require.Equal(t, 250*time.Millisecond, cfg.Generation.RetryDelay)
}

func TestApplyEnvGeminiKey(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("DEEPSEEK_API_KEY", "sk-ignored")

	cfg := Default()
	ApplyEnv(&cfg)
	require.Equal(t, "gemini", cfg.Generation.Provider)
	require.Equal(t, "g-key", cfg.Generation.APIKey)
}
