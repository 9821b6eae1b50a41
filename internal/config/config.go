// Package config provides layered configuration loading and validation.
// Values come from compiled-in defaults, then an optional YAML file, then
// environment variables (highest priority).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/stylist-expert/internal/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable that points at a YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Rules     RulesConfig     `koanf:"rules"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RulesConfig selects the knowledge base. An empty path uses the compiled-in rules.
type RulesConfig struct {
	Path string `koanf:"path"`
}

// CORSConfig holds the cross-origin allow-list.
type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled         bool          `koanf:"enabled"`
	DefaultLimit    int           `koanf:"default_limit"`
	DefaultWindow   time.Duration `koanf:"default_window"`
	RecommendLimit  int           `koanf:"recommend_limit"`
	RecommendWindow time.Duration `koanf:"recommend_window"`
	RecommendBurst  int           `koanf:"recommend_burst"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Whitelist       []string      `koanf:"whitelist"`
	Blacklist       []string      `koanf:"blacklist"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:5173"},
			AllowCredentials: true,
			MaxAge:           600,
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			RecommendLimit:  120,
			RecommendWindow: time.Minute,
			RecommendBurst:  20,
			CleanupInterval: 5 * time.Minute,
		},
	}
}

// envMappings maps environment variable names to config paths.
var envMappings = map[string]string{
	"port":                        "server.port",
	"server_port":                 "server.port",
	"server_read_timeout":         "server.read_timeout",
	"server_write_timeout":        "server.write_timeout",
	"server_idle_timeout":         "server.idle_timeout",
	"server_shutdown_timeout":     "server.shutdown_timeout",
	"log_level":                   "log.level",
	"log_format":                  "log.format",
	"rules_path":                  "rules.path",
	"allowed_origins":             "cors.allowed_origins",
	"cors_allow_credentials":      "cors.allow_credentials",
	"cors_max_age":                "cors.max_age",
	"rate_limit_enabled":          "rate_limit.enabled",
	"rate_limit_default_limit":    "rate_limit.default_limit",
	"rate_limit_default_window":   "rate_limit.default_window",
	"rate_limit_recommend_limit":  "rate_limit.recommend_limit",
	"rate_limit_recommend_window": "rate_limit.recommend_window",
	"rate_limit_recommend_burst":  "rate_limit.recommend_burst",
	"rate_limit_cleanup_interval": "rate_limit.cleanup_interval",
	"rate_limit_whitelist":        "rate_limit.whitelist",
	"rate_limit_blacklist":        "rate_limit.blacklist",
}

// sliceConfigPaths are parsed from comma-separated strings when set via the environment.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
	"rate_limit.whitelist",
	"rate_limit.blacklist",
}

// LoadConfig loads the layered configuration. When path is empty, CONFIG_PATH and
// DefaultConfigPaths are searched; a missing default file is not an error.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("config error: unknown 'log.level' %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 || c.RateLimit.RecommendLimit <= 0 {
			return fmt.Errorf("config error: rate limits must be positive")
		}
		if c.RateLimit.DefaultWindow <= 0 || c.RateLimit.RecommendWindow <= 0 {
			return fmt.Errorf("config error: rate limit windows must be positive")
		}
		if c.RateLimit.RecommendBurst < 0 {
			return fmt.Errorf("config error: 'rate_limit.recommend_burst' must be non-negative")
		}
	}
	if c.Rules.Path != "" {
		if _, err := os.Stat(c.Rules.Path); os.IsNotExist(err) {
			return fmt.Errorf("config error: rules file not found: %s", c.Rules.Path)
		}
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps an environment variable name to a config path.
// Unknown variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// processSliceFields converts comma-separated string values to trimmed slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		trimmed := []string{}
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
