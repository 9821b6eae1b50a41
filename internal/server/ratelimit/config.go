package ratelimit

import (
	"time"

	"github.com/jonathan/stylist-expert/internal/config"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig returns the limiter configuration used when none is supplied.
func DefaultConfig() *Config {
	return FromSettings(config.Default().RateLimit)
}

// FromSettings converts the service configuration into limiter configuration.
func FromSettings(s config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         s.Enabled,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/recommend", Method: "POST", Limit: s.RecommendLimit, Window: s.RecommendWindow, Burst: s.RecommendBurst},
		},
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
