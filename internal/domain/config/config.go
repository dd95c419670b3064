package config

import (
	"fanhao/internal/domain/content"
	domainerr "fanhao/internal/domain/errors"
	"fanhao/internal/domain/site"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Build      BuildConfig      `yaml:"build"`
	Database   DatabaseConfig   `yaml:"database"`
	Generation GenerationConfig `yaml:"generation"`
	Log        LogConfig        `yaml:"log"`
}

type SiteConfig struct {
	Title           string           `yaml:"title"`
	Description     string           `yaml:"description"`
	SiteURL         string           `yaml:"site_url"`
	Theme           string           `yaml:"theme"`
	DefaultLanguage content.Language `yaml:"default_language"`
	URLStyle        site.URLStyle    `yaml:"url_style"`
}

type BuildConfig struct {
	OutputDir     string        `yaml:"output_dir"`
	ThemeDir      string        `yaml:"theme_dir"`
	ItemsPerPage  int           `yaml:"items_per_page"`
	FeaturedCount int           `yaml:"featured_count"`
	HotCount      int           `yaml:"hot_count"`
	HotRankCount  int           `yaml:"hot_rank_count"`
	Workers       int           `yaml:"workers"`
	Preview       PreviewConfig `yaml:"preview"`
	Sitemap       bool          `yaml:"sitemap"`
	AuditLinks    bool          `yaml:"audit_links"`
	Now           time.Time     `yaml:"-"`
}

// PreviewConfig 限制生成规模，用于本地预览和调试。0 表示不限制。
type PreviewConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxItems   int  `yaml:"max_items"`   // 首页列表最多分页多少条
	MaxPages   int  `yaml:"max_pages"`   // 每个类型/女优列表最多多少页
	MaxRecords int  `yaml:"max_records"` // 详情页、类型页、女优页各最多多少个
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | postgres
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type GenerationConfig struct {
	Provider    string        `yaml:"provider"` // deepseek | gemini
	APIKey      string        `yaml:"api_key"`
	APIURL      string        `yaml:"api_url"`
	Model       string        `yaml:"model"` // 为空时按 provider 取默认模型
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	Attempts    int           `yaml:"attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	MaxTokens   TokenLimits   `yaml:"max_tokens"`
	CachePath   string        `yaml:"cache_path"`
	Reviews     bool          `yaml:"reviews"`
}

type TokenLimits struct {
	Title   int `yaml:"title"`
	Phrase  int `yaml:"phrase"`
	Summary int `yaml:"summary"`
	Review  int `yaml:"review"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // json | text
	Output     string `yaml:"output"` // stdout | file | both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:           "Fanhao Diary",
			Description:     "",
			Theme:           "default",
			DefaultLanguage: content.LangCN,
			URLStyle:        site.StyleSuffix,
		},
		Build: BuildConfig{
			OutputDir:     "output",
			ThemeDir:      "themes",
			ItemsPerPage:  20,
			FeaturedCount: 6,
			HotCount:      8,
			HotRankCount:  6,
			Workers:       1,
			Sitemap:       true,
			Now:           time.Now(),
		},
		Database: DatabaseConfig{
			Driver:  "mysql",
			Host:    "127.0.0.1",
			Port:    "3306",
			SSLMode: "disable",
		},
		Generation: GenerationConfig{
			Provider:    "deepseek",
			APIURL:      "https://api.deepseek.com/v1",
			Timeout:     30 * time.Second,
			Temperature: 0.7,
			Attempts:    3,
			RetryDelay:  2 * time.Second,
			MaxTokens: TokenLimits{
				Title:   150,
				Phrase:  150,
				Summary: 150,
				Review:  600,
			},
			Reviews: true,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stdout",
			FilePath:   "logs/build.log",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if u := strings.TrimSpace(c.Site.SiteURL); u != "" && !isValidAbsURL(u) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}
	if strings.TrimSpace(c.Site.Theme) == "" {
		ve.Add("site.theme", "must not be empty")
	}
	if !c.Site.DefaultLanguage.Valid() {
		ve.Add("site.default_language", "must be 'cn' or 'en'")
	}
	switch c.Site.URLStyle {
	case "", site.StyleSuffix, site.StylePrefix:
	default:
		ve.Add("site.url_style", "must be 'suffix' or 'prefix'")
	}

	if strings.TrimSpace(c.Build.OutputDir) == "" {
		ve.Add("build.output_dir", "must not be empty")
	} else if p := strings.TrimSpace(c.Build.OutputDir); p == "/" || p == "." {
		ve.Add("build.output_dir", "must not be the filesystem or working directory root")
	}
	if strings.TrimSpace(c.Build.ThemeDir) == "" {
		ve.Add("build.theme_dir", "must not be empty")
	}
	if c.Build.ItemsPerPage <= 0 {
		ve.Add("build.items_per_page", "must be positive")
	}
	if c.Build.Workers <= 0 {
		ve.Add("build.workers", "must be positive")
	}
	if c.Build.Preview.MaxItems < 0 || c.Build.Preview.MaxPages < 0 || c.Build.Preview.MaxRecords < 0 {
		ve.Add("build.preview", "limits must not be negative")
	}

	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		ve.Add("database.driver", "must be 'mysql' or 'postgres'")
	}

	switch c.Generation.Provider {
	case "deepseek", "gemini":
	default:
		ve.Add("generation.provider", "must be 'deepseek' or 'gemini'")
	}
	if c.Generation.Timeout <= 0 {
		ve.Add("generation.timeout", "must be positive")
	}
	if c.Generation.Attempts <= 0 {
		ve.Add("generation.attempts", "must be positive")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		ve.Add("generation.temperature", "must be between 0 and 2")
	}
	if c.Generation.RetryDelay < 0 {
		ve.Add("generation.retry_delay", "must not be negative")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// PreviewLimits 返回生效的预览限制；未开启时全部为 0。
func (c Config) PreviewLimits() PreviewConfig {
	if !c.Build.Preview.Enabled {
		return PreviewConfig{}
	}
	return c.Build.Preview
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// 文件中写到的字段覆盖默认值，其他字段保留 Default
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)

	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault 与 Load 相同，但配置文件不存在时使用默认值加环境变量。
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)

	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
