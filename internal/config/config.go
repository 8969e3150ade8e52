package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the synapcity-hub service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port" env:"PORT"`
	Debug   bool   `yaml:"debug" env:"DEBUG"`
}

// FetchConfig holds webpage fetching configuration.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"-" env:"FETCH_TIMEOUT"`
	MaxBodyChars int           `yaml:"max_body_chars"`
	UserAgent    string        `yaml:"user_agent"`
	// AllowPrivateHosts disables the SSRF guard. Only for local testing.
	AllowPrivateHosts bool `yaml:"allow_private_hosts" env:"FETCH_ALLOW_PRIVATE_HOSTS"`
}

// AnthropicConfig holds the Claude text-summarization backend configuration.
type AnthropicConfig struct {
	APIKey    string        `yaml:"api_key" env:"ANTHROPIC_AUTH_TOKEN"`
	BaseURL   string        `yaml:"base_url" env:"ANTHROPIC_BASE_URL"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"-" env:"ANTHROPIC_TIMEOUT"`
}

// GeminiConfig holds the Gemini video-understanding backend configuration.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"-" env:"GEMINI_TIMEOUT"`
}

// SearchConfig holds AI relevance-search configuration.
type SearchConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// CacheConfig holds the optional Redis enrichment-cache configuration.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" env:"CACHE_ENABLED"`
	Address  string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"-" env:"CACHE_TTL"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	// Re-apply env overrides after defaults (env always wins)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "synapcity-hub"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 3001
	}

	// Fetch defaults
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.MaxBodyChars == 0 {
		cfg.Fetch.MaxBodyChars = 50000
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}

	// Anthropic defaults
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = "claude-3-5-sonnet-20241022"
	}
	if cfg.Anthropic.MaxTokens == 0 {
		cfg.Anthropic.MaxTokens = 1024
	}
	if cfg.Anthropic.Timeout == 0 {
		cfg.Anthropic.Timeout = 60 * time.Second
	}

	// Gemini defaults
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = 60 * time.Second
	}

	// Search defaults
	if cfg.Search.BatchSize == 0 {
		cfg.Search.BatchSize = 3
	}

	// Cache defaults
	if cfg.Cache.Address == "" {
		cfg.Cache.Address = "localhost:6379"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = time.Hour
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// CORS defaults
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return &ValidationError{Field: "service.port", Message: fmt.Sprintf("invalid port: %d", c.Service.Port)}
	}
	if c.Fetch.MaxBodyChars < 1 {
		return &ValidationError{Field: "fetch.max_body_chars", Message: "must be greater than 0"}
	}
	if c.Search.BatchSize < 1 {
		return &ValidationError{Field: "search.batch_size", Message: "must be greater than 0"}
	}
	if c.Anthropic.APIKey == "" {
		return &ValidationError{Field: "anthropic.api_key", Message: "is required (set ANTHROPIC_AUTH_TOKEN)"}
	}
	if c.Gemini.APIKey == "" {
		return &ValidationError{Field: "gemini.api_key", Message: "is required (set GEMINI_API_KEY)"}
	}
	if c.Cache.Enabled && c.Cache.Address == "" {
		return &ValidationError{Field: "cache.address", Message: "is required when cache is enabled"}
	}
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}
