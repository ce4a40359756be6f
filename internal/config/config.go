// Package config loads service configuration from defaults, an optional config
// file, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/jonathan/talent-hub/internal/extraction"
	"github.com/jonathan/talent-hub/internal/server/ratelimit"
	"github.com/jonathan/talent-hub/internal/store"
	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StoreConfig selects the document store backend and its connection settings.
// Only the fields of the chosen backend are read.
type StoreConfig struct {
	Backend     string `mapstructure:"backend"`
	QueryURL    string `mapstructure:"query_url"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Bucket      string `mapstructure:"bucket"`
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`
}

// ExtractorConfig describes how the external skill extraction tool is launched.
type ExtractorConfig struct {
	Command string `mapstructure:"command"`
	// APIKey is handed to the extraction tool for its own model calls.
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LLMConfig holds the Gemini credentials and sampling settings for summaries.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// PromptConfig locates the prompt configuration file.
type PromptConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimitConfig holds the limiter defaults. Whitelist and Blacklist are
// comma-separated client IPs.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       string        `mapstructure:"whitelist"`
	Blacklist       string        `mapstructure:"blacklist"`
}

var defaults = map[string]any{
	"server.port":                5000,
	"store.backend":              string(store.BackendCouchbase),
	"store.query_url":            "http://localhost:8093/query/service",
	"store.user":                 "Administrator",
	"store.password":             "password",
	"store.bucket":               "hackathon",
	"store.database_url":         "",
	"store.sqlite_path":          "talent_hub.db",
	"extractor.command":          "dotnet run --project process_cv_csharp --",
	"extractor.api_key":          "",
	"extractor.timeout":          time.Duration(0),
	"llm.api_key":                "",
	"llm.model":                  "",
	"llm.temperature":            0.7,
	"prompt.path":                "prompt.json",
	"log.json":                   false,
	"log.debug":                  false,
	"ratelimit.enabled":          true,
	"ratelimit.default_limit":    1000,
	"ratelimit.default_window":   time.Minute,
	"ratelimit.cleanup_interval": 5 * time.Minute,
	"ratelimit.whitelist":        "",
	"ratelimit.blacklist":        "",
}

// envBindings maps keys to environment variables, first non-empty wins.
var envBindings = map[string][]string{
	"server.port":                {"PORT"},
	"store.backend":              {"STORE_BACKEND"},
	"store.query_url":            {"CB_QUERY_URL"},
	"store.user":                 {"CB_USER"},
	"store.password":             {"CB_PASSWORD"},
	"store.bucket":               {"BUCKET_NAME"},
	"store.database_url":         {"DATABASE_URL"},
	"store.sqlite_path":          {"SQLITE_PATH"},
	"extractor.command":          {"EXTRACTOR_COMMAND"},
	"extractor.api_key":          {"GITHUB_API_KEY"},
	"extractor.timeout":          {"EXTRACTOR_TIMEOUT"},
	"llm.api_key":                {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"llm.model":                  {"LLM_MODEL"},
	"llm.temperature":            {"LLM_TEMPERATURE"},
	"prompt.path":                {"PROMPT_PATH"},
	"log.json":                   {"LOG_JSON"},
	"log.debug":                  {"LOG_DEBUG"},
	"ratelimit.enabled":          {"RATE_LIMIT_ENABLED"},
	"ratelimit.default_limit":    {"RATE_LIMIT_DEFAULT_LIMIT"},
	"ratelimit.default_window":   {"RATE_LIMIT_DEFAULT_WINDOW"},
	"ratelimit.cleanup_interval": {"RATE_LIMIT_CLEANUP_INTERVAL"},
	"ratelimit.whitelist":        {"RATE_LIMIT_WHITELIST"},
	"ratelimit.blacklist":        {"RATE_LIMIT_BLACKLIST"},
}

// NewViper returns a viper instance with defaults and environment bindings in
// place. Flags may be bound to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, envs := range envBindings {
		// BindEnv only fails when no key is given.
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

// Load reads the optional config file at path (JSON, YAML or TOML by extension)
// into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch store.Backend(c.Store.Backend) {
	case store.BackendCouchbase:
		if c.Store.QueryURL == "" {
			return fmt.Errorf("config error: 'store.query_url' is required for the couchbase backend")
		}
		if err := store.ValidateBucket(c.Store.Bucket); err != nil {
			return fmt.Errorf("config error: 'store.bucket': %w", err)
		}
	case store.BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'store.database_url' is required for the postgres backend")
		}
	case store.BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("config error: 'store.sqlite_path' is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.Store.Backend)
	}

	if len(extraction.ParseCommand(c.Extractor.Command)) == 0 {
		return fmt.Errorf("config error: 'extractor.command' must not be empty")
	}
	if c.Extractor.Timeout < 0 {
		return fmt.Errorf("config error: 'extractor.timeout' must be non-negative")
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2")
	}

	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit <= 0 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: 'ratelimit.default_limit' and 'ratelimit.default_window' must be positive")
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// StoreOptions returns the options for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     store.Backend(c.Store.Backend),
		QueryURL:    c.Store.QueryURL,
		User:        c.Store.User,
		Password:    c.Store.Password,
		Bucket:      c.Store.Bucket,
		DatabaseURL: c.Store.DatabaseURL,
		SQLitePath:  c.Store.SQLitePath,
	}
}

// RateLimiter returns the limiter configuration with the default endpoint limits.
func (c *Config) RateLimiter() *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         c.RateLimit.Enabled,
		DefaultLimit:    c.RateLimit.DefaultLimit,
		DefaultWindow:   c.RateLimit.DefaultWindow,
		CleanupInterval: c.RateLimit.CleanupInterval,
		Whitelist:       ratelimit.ParseIPList(c.RateLimit.Whitelist),
		Blacklist:       ratelimit.ParseIPList(c.RateLimit.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	}
}
