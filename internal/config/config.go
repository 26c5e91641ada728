package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile   string // optional rotating JSON log file (empty = console only)

	// Content
	ContentDir     string        // content root with one directory per language (empty = embedded corpus)
	ReloadInterval time.Duration // interval to rebuild the catalog from files (default: 1h)
	WatchContent   bool          // watch ContentDir and reload on change
	WatchDebounce  time.Duration // quiet period before a watched change triggers a reload
	PruneInterval  time.Duration // interval to drop stale languages from Redis (default: 24h)
	PublishInvalid bool          // publish languages whose report has errors
	SearchLimit    int           // default max number of search results

	// Rate limiting on /api
	RateLimitBurst  int // token bucket size per client IP
	RateLimitPerMin int // refill rate per client IP

	// Redis (optional, empty address = publication disabled)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// RedisEnabled reports whether publication to Redis is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LANGDOCS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LANGDOCS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LANGDOCS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LANGDOCS_PRETTY_LOG", true),
		LogFile:   getenv("LANGDOCS_LOG_FILE", ""),

		// Content
		ContentDir:     getenv("LANGDOCS_CONTENT_DIR", ""),
		ReloadInterval: mustDuration("LANGDOCS_RELOAD_INTERVAL", time.Hour),
		WatchContent:   mustBool("LANGDOCS_WATCH_CONTENT", true),
		WatchDebounce:  mustDuration("LANGDOCS_WATCH_DEBOUNCE", time.Second),
		PruneInterval:  mustDuration("LANGDOCS_PRUNE_INTERVAL", 24*time.Hour),
		PublishInvalid: mustBool("LANGDOCS_PUBLISH_INVALID", false),
		SearchLimit:    mustPositiveInt("LANGDOCS_SEARCH_LIMIT", 20),

		RateLimitBurst:  mustPositiveInt("LANGDOCS_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: mustPositiveInt("LANGDOCS_RATE_LIMIT_PER_MIN", 600),

		// Redis settings
		RedisAddr:             getenv("LANGDOCS_REDIS_ADDR", ""),
		RedisUser:             getenv("LANGDOCS_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("LANGDOCS_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("LANGDOCS_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LANGDOCS_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LANGDOCS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("LANGDOCS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LANGDOCS_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.RedisEnabled() && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LANGDOCS_REDIS_PASSWORD is required when LANGDOCS_REDIS_PASSWORD_REQUIRED=true")
	}

	if cfg.ReloadInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: LANGDOCS_RELOAD_INTERVAL must be > 0, got %v", cfg.ReloadInterval))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustPositiveInt(key string, def int) int {
	i := getenvInt(key, def)
	if i <= 0 {
		panic(fmt.Sprintf("❌ FATAL: %s must be > 0, got %d", key, i))
	}
	return i
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
