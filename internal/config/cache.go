package config

import (
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache applied to the weather
// and advisory GET endpoints. When Enabled is false or no Redis client
// is available the middleware is a pass-through.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from the environment with defaults
// tuned for upstream-API responses (weather changes slowly; insight
// payloads are expensive LLM calls).
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getBool("CACHE_ENABLED", true),
		Methods:      parseMethods(get("CACHE_METHODS", "GET")),
		TTL:          getDur("CACHE_TTL", 5*time.Minute),
		KeyStrategy:  get("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       get("CACHE_PREFIX", "farmkeep"),
		MaxBodyBytes: getInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
