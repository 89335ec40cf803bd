package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres; empty host runs the service without a store
	PostgresHost    string `toml:"postgres_host"`
	PostgresPort    string `toml:"postgres_port"`
	PostgresDBName  string `toml:"postgres_db_name"`
	PostgresUser    string `toml:"postgres_user"`
	PostgresSSLMode string `toml:"postgres_ssl_mode"`

	// redis; empty host disables login rate limiting
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// read client IPs from X-Real-Ip / X-Forwarded-For; only behind a proxy that sets them
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`

	// admin area
	SecureCookies               bool   `toml:"secure_cookies"`
	AdminPagesDir               string `toml:"admin_pages_dir"`
	LoginRateLimitAllowedPerMin int    `toml:"login_rate_limit_allowed_per_min"`

	// public list responses cache
	ListCacheSizeMB     int `toml:"list_cache_size_mb"`
	ListCacheTTLSeconds int `toml:"list_cache_ttl_seconds"`

	// 2gis rating proxy
	RatingApiURL          string `toml:"rating_api_url"`
	RatingBranchID        string `toml:"rating_branch_id"`
	RatingReviewsURL      string `toml:"rating_reviews_url"`
	RatingCacheTTLMinutes int    `toml:"rating_cache_ttl_minutes"`

	// contact form
	TelegramApiURL string `toml:"telegram_api_url"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch normalizeEnv(env) {
	case EnvDevelopment:
		cfg = t.Development
	case EnvProduction:
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	return cfg, nil
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development":
		return EnvDevelopment
	case "prod", "production":
		return EnvProduction
	default:
		return ""
	}
}

// Load reads the TOML file at path and returns the section for env with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.Environment = normalizeEnv(env)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) StoreConfigured() bool {
	return c.PostgresHost != ""
}

func (c *Config) RedisConfigured() bool {
	return c.RedisHost != ""
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.PostgresSSLMode == "" {
		c.PostgresSSLMode = "disable"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.ListCacheSizeMB == 0 {
		c.ListCacheSizeMB = 8
	}
	if c.ListCacheTTLSeconds == 0 {
		c.ListCacheTTLSeconds = 30
	}
	if c.RatingApiURL == "" {
		c.RatingApiURL = "https://catalog.api.2gis.com/3.0/items/byid"
	}
	if c.RatingBranchID == "" {
		c.RatingBranchID = "70000001096815639"
	}
	if c.RatingReviewsURL == "" {
		c.RatingReviewsURL = "https://2gis.ru/firm/" + c.RatingBranchID + "/tab/reviews"
	}
	if c.RatingCacheTTLMinutes == 0 {
		c.RatingCacheTTLMinutes = 60
	}
	if c.TelegramApiURL == "" {
		c.TelegramApiURL = "https://api.telegram.org"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.ListCacheSizeMB < 0 {
		errs = append(errs, fmt.Errorf("invalid list cache size: %d", c.ListCacheSizeMB))
	}
	if c.RatingCacheTTLMinutes < 0 {
		errs = append(errs, fmt.Errorf("invalid rating cache ttl: %d", c.RatingCacheTTLMinutes))
	}
	return errors.Join(errs...)
}
