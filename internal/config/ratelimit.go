package config

import "time"

// RateLimitConfig controls the Redis token-bucket limiter applied to the
// API group. Defaults allow a burst of 60 with one token per second.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

// LoadRateLimitConfig builds a RateLimitConfig from the environment and
// clamps the values into a usable range.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getBool("RATE_LIMIT_ENABLED", true),
		Capacity:       getInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   getInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: getDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            getDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    get("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         get("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		cfg.TTL = min
	}
	return cfg
}
