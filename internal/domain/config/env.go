package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv 读取工作目录下的 .env（不存在就忽略），已有的环境变量不会被覆盖。
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ApplyEnv 用环境变量覆盖配置。只处理设置了的变量。
func ApplyEnv(cfg *Config) {
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.Generation.Provider, "GENERATION_PROVIDER")
	setString(&cfg.Generation.Model, "GENERATION_MODEL")
	setString(&cfg.Generation.CachePath, "GENERATION_CACHE")
	switch cfg.Generation.Provider {
	case "gemini":
		setString(&cfg.Generation.APIKey, "GEMINI_API_KEY")
	default:
		setString(&cfg.Generation.APIKey, "DEEPSEEK_API_KEY")
		setString(&cfg.Generation.APIURL, "DEEPSEEK_API_URL")
	}
	setDuration(&cfg.Generation.RetryDelay, "GENERATION_RETRY_DELAY")

	setString(&cfg.Build.OutputDir, "OUTPUT_DIR")
	setString(&cfg.Site.SiteURL, "SITE_URL")
	setInt(&cfg.Build.ItemsPerPage, "ITEMS_PER_PAGE")
	setInt(&cfg.Build.Workers, "BUILD_WORKERS")

	setBool(&cfg.Build.Preview.Enabled, "TEST_MODE")
	setInt(&cfg.Build.Preview.MaxItems, "TEST_LIMIT_TOTAL_VIDEOS")
	setInt(&cfg.Build.Preview.MaxPages, "TEST_LIMIT_PAGES_PER_CATEGORY")
	setInt(&cfg.Build.Preview.MaxRecords, "TEST_LIMIT_RECORDS")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Log.Output, "LOG_OUTPUT")
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := lookup(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
