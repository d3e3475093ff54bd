package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	GeneratorProviderGemini = "gemini"
	GeneratorProviderOpenAI = "openai"

	DefaultGeminiBaseURL           = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel             = "gemini-2.0-flash"
	DefaultOpenAIBaseURL           = "https://api.openai.com/v1"
	DefaultOpenAIModel             = "gpt-4o-mini"
	DefaultGeneratorTimeoutSeconds = 60
	DefaultAIRateLimitPerMin       = 10
	DefaultSuggestLockTTLSeconds   = 120
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	InitSchema     bool   `toml:"init_schema"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// text generation
	GeneratorProvider       string `toml:"generator_provider"`
	GeminiBaseURL           string `toml:"gemini_base_url"`
	GeminiModel             string `toml:"gemini_model"`
	OpenAIBaseURL           string `toml:"openai_base_url"`
	OpenAIModel             string `toml:"openai_model"`
	GeneratorTimeoutSeconds int    `toml:"generator_timeout_seconds"`

	AIRateLimitAllowedPerMin int `toml:"ai_rate_limit_allowed_per_min"`
	// 0 disables the exercise tips cache
	TipsCacheTTLSeconds   int `toml:"tips_cache_ttl_seconds"`
	SuggestLockTTLSeconds int `toml:"suggest_lock_ttl_seconds"`
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.GeneratorProvider == "" {
		c.GeneratorProvider = GeneratorProviderGemini
	}
	if c.GeminiBaseURL == "" {
		c.GeminiBaseURL = DefaultGeminiBaseURL
	}
	if c.GeminiModel == "" {
		c.GeminiModel = DefaultGeminiModel
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = DefaultOpenAIBaseURL
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = DefaultOpenAIModel
	}
	if c.GeneratorTimeoutSeconds <= 0 {
		c.GeneratorTimeoutSeconds = DefaultGeneratorTimeoutSeconds
	}
	if c.AIRateLimitAllowedPerMin <= 0 {
		c.AIRateLimitAllowedPerMin = DefaultAIRateLimitPerMin
	}
	if c.SuggestLockTTLSeconds <= 0 {
		c.SuggestLockTTLSeconds = DefaultSuggestLockTTLSeconds
	}
}

func (c *Config) Validate() error {
	switch c.GeneratorProvider {
	case GeneratorProviderGemini, GeneratorProviderOpenAI:
	default:
		return fmt.Errorf("unknown generator provider: %s", c.GeneratorProvider)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host and db name must be set")
	}
	if c.TipsCacheTTLSeconds < 0 {
		return fmt.Errorf("tips cache ttl cannot be negative")
	}
	// the day lock must outlive a whole generation call
	if c.SuggestLockTTLSeconds <= c.GeneratorTimeoutSeconds {
		return fmt.Errorf(
			"suggest lock ttl (%ds) must be greater than generator timeout (%ds)",
			c.SuggestLockTTLSeconds, c.GeneratorTimeoutSeconds,
		)
	}
	return nil
}
