package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// rate limits
	LoginRateLimitAllowedPerMin     int `toml:"login_rate_limit_allowed_per_min"`
	PlanAdaptRateLimitAllowedPerMin int `toml:"plan_adapt_rate_limit_allowed_per_min"`
	// plan generation
	GeminiModel string `toml:"gemini_model"`
	// product-level fallbacks used when profile / metric data is absent;
	// kept configurable on purpose, the numbers are guesses pending review
	DefaultCurrentWeightKg  float64 `toml:"default_current_weight_kg"`
	DefaultExperienceLevel  string  `toml:"default_experience_level"`
	ProgressCacheTTLSeconds int     `toml:"progress_cache_ttl_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	configData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var tomlConfig Toml
	if err := toml.Unmarshal(configData, &tomlConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s is empty", env)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.DefaultCurrentWeightKg == 0 {
		cfg.DefaultCurrentWeightKg = 75
	}
	if cfg.DefaultExperienceLevel == "" {
		cfg.DefaultExperienceLevel = "intermediate"
	}
	if cfg.LoginRateLimitAllowedPerMin == 0 {
		cfg.LoginRateLimitAllowedPerMin = 15
	}
	if cfg.PlanAdaptRateLimitAllowedPerMin == 0 {
		cfg.PlanAdaptRateLimitAllowedPerMin = 5
	}
	if cfg.ProgressCacheTTLSeconds == 0 {
		cfg.ProgressCacheTTLSeconds = 300
	}
}
