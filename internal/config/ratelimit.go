package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig defines settings for one fixed-window rate limiter.
// Requests are counted per client IP inside a window of Window length;
// once Max is reached, further requests are rejected until the window
// rolls over. Prefix namespaces the Redis keys so several limiters can
// share one Redis database.
type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
	Prefix  string
	Debug   bool
}

// LoadRateLimitConfig reads the general limiter settings applied to every
// route. Route-specific limiters (auth, otp, password-reset) are derived
// from it with Profile.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Max:     envInt("RATE_LIMIT_MAX_REQUESTS", 100),
		Window:  envDur("RATE_LIMIT_WINDOW", 15*time.Minute),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:   envBool("RATE_LIMIT_DEBUG", false),
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

// Profile returns a copy of the config with its own key namespace and
// tighter ceiling, used for the stricter per-route limiters.
func (c RateLimitConfig) Profile(name string, max int, window time.Duration) RateLimitConfig {
	p := c
	p.Prefix = c.Prefix + ":" + name
	p.Max = max
	p.Window = window
	return p
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
