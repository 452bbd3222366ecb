package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Stock feed
	FeedURL     string        // upstream stock endpoint; empty => offline/demo snapshot
	FeedFormat  string        // "flat" (canonical array) | "grouped" (per-category provider shape)
	FeedTimeout time.Duration // per-request timeout for the feed fetch

	// Polling
	PollInterval time.Duration // fixed period between polls (default: 5m)
	PollOffset   time.Duration // seconds-past-the-boundary offset (default: 10s)

	// Durable storage
	DataDir string // directory for file-backed storage blobs

	// Notifications
	InitialNotifyWindow time.Duration // debounce window for the first check after start
	NotifyWindow        time.Duration // debounce window for subsequent checks

	// Redis (optional durable storage backend; empty addr => file storage)
	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int
	RedisDT       time.Duration // dial timeout
	RedisRT       time.Duration // read timeout
	RedisWT       time.Duration // write timeout
	RedisPoolSize int

	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STOCKWATCH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STOCKWATCH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STOCKWATCH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STOCKWATCH_PRETTY_LOG", true),

		// Feed; empty URL activates the built-in demo snapshot
		FeedURL:     getenv("STOCKWATCH_FEED_URL", ""),
		FeedFormat:  getenv("STOCKWATCH_FEED_FORMAT", "flat"),
		FeedTimeout: mustDuration("STOCKWATCH_FEED_TIMEOUT", 10*time.Second),

		// Polls fire at wall-clock instants aligned to 5-minute
		// boundaries plus the offset, in the local timezone.
		PollInterval: mustDuration("STOCKWATCH_POLL_INTERVAL", 5*time.Minute),
		PollOffset:   mustDuration("STOCKWATCH_POLL_OFFSET", 10*time.Second),

		DataDir: getenv("STOCKWATCH_DATA_DIR", defaultDataDir()),

		InitialNotifyWindow: mustDuration("STOCKWATCH_NOTIFY_INITIAL_WINDOW", 5*time.Second),
		NotifyWindow:        mustDuration("STOCKWATCH_NOTIFY_WINDOW", time.Second),

		// Redis settings (all optional)
		RedisAddr:     getenv("STOCKWATCH_REDIS_ADDR", ""),
		RedisUser:     getenv("STOCKWATCH_REDIS_USERNAME", "default"),
		RedisPassword: getenv("STOCKWATCH_REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("STOCKWATCH_REDIS_DB", 0),
		RedisDT:       mustDuration("STOCKWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:       mustDuration("STOCKWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:       mustDuration("STOCKWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize: getenvInt("STOCKWATCH_REDIS_POOL_SIZE", 10),

		RedisConnectTimeout: mustDuration("STOCKWATCH_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("STOCKWATCH_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("STOCKWATCH_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("STOCKWATCH_REDIS_PING_TIMEOUT", 5*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/stockwatch"
	}
	return ".stockwatch"
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
