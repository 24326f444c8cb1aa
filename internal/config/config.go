// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/streamgate/internal/validation"
)

// Rate-limit store backends.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// StreamSecret is the HMAC key for playback URLs, given in plaintext.
	StreamSecret string
	// StreamSecretKMSKeyURI is a gocloud.dev/secrets keeper URI used to decrypt
	// StreamSecretCiphertext at startup (e.g. "hashivault://streamgate").
	StreamSecretKMSKeyURI string
	// StreamSecretCiphertext is the base64 encrypted HMAC key.
	StreamSecretCiphertext string

	// PlaybackTTL is the lifetime of signed playback URLs.
	PlaybackTTL time.Duration
	// MediaRoot is the directory holding hls/<id>/master.m3u8.
	MediaRoot string
	// PublicBaseURL is prepended to signed playback paths.
	PublicBaseURL string

	// OTPResendWindow and OTPResendMax bound passcode requests per subject.
	OTPResendWindow time.Duration
	OTPResendMax    int
	// OTPSweepInterval is how often expired passcodes and idle counters are removed.
	OTPSweepInterval time.Duration
	// OTPDevEcho returns issued passcodes in API responses. Never enable in production.
	OTPDevEcho bool

	// RateLimitStore selects where fixed-window counters live ("memory" or "redis").
	RateLimitStore string
	// RateLimitIdleEviction is how long a counter is kept after its window reset.
	RateLimitIdleEviction time.Duration
	// RedisAddr, RedisPassword and RedisDB configure the redis rate-limit store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RateLimitIPEnabled enables the per-IP token bucket on passcode endpoints.
	RateLimitIPEnabled bool
	// RateLimitIPRequestsPerSec is the sustained per-IP request rate.
	RateLimitIPRequestsPerSec float64
	// RateLimitIPBurst is the per-IP burst size.
	RateLimitIPBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Server
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 15, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Signing secret
		StreamSecret:           env.GetString("STREAM_SECRET", ""),
		StreamSecretKMSKeyURI:  env.GetString("STREAM_SECRET_KMS_KEY_URI", ""),
		StreamSecretCiphertext: env.GetString("STREAM_SECRET_CIPHERTEXT", ""),

		// Playback
		PlaybackTTL:   env.GetDuration("PLAYBACK_TTL_SECONDS", 600, time.Second),
		MediaRoot:     env.GetString("MEDIA_ROOT", "./media"),
		PublicBaseURL: env.GetString("PUBLIC_BASE_URL", ""),

		// One-time passcodes
		OTPResendWindow:  env.GetDuration("OTP_RESEND_WINDOW_SECONDS", 300, time.Second),
		OTPResendMax:     env.GetInt("OTP_RESEND_MAX", 1),
		OTPSweepInterval: env.GetDuration("OTP_SWEEP_INTERVAL_SECONDS", 60, time.Second),
		OTPDevEcho:       env.GetBool("OTP_DEV_ECHO", false),

		// Fixed-window rate limiting
		RateLimitStore:        env.GetString("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitIdleEviction: env.GetDuration("RATE_LIMIT_IDLE_EVICTION_SECONDS", 3600, time.Second),
		RedisAddr:             env.GetString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         env.GetString("REDIS_PASSWORD", ""),
		RedisDB:               env.GetInt("REDIS_DB", 0),

		// Per-IP throttle on passcode endpoints
		RateLimitIPEnabled:        env.GetBool("RATE_LIMIT_IP_ENABLED", true),
		RateLimitIPRequestsPerSec: env.GetFloat64("RATE_LIMIT_IP_REQUESTS_PER_SEC", 5.0),
		RateLimitIPBurst:          env.GetInt("RATE_LIMIT_IP_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "streamgate"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.StreamSecret,
			validation.When(c.StreamSecretKMSKeyURI == "", validation.Required.Error(
				"is required unless STREAM_SECRET_KMS_KEY_URI is set",
			)),
		),
		validation.Field(&c.StreamSecretCiphertext,
			validation.When(c.StreamSecretKMSKeyURI != "", validation.Required),
			customValidation.Base64,
		),
		validation.Field(&c.PlaybackTTL, validation.Min(time.Second)),
		validation.Field(&c.OTPResendWindow, validation.Min(time.Second)),
		validation.Field(&c.OTPResendMax, validation.Min(1)),
		validation.Field(&c.OTPSweepInterval, validation.Min(time.Second)),
		validation.Field(&c.RateLimitStore, validation.In(RateLimitStoreMemory, RateLimitStoreRedis)),
		validation.Field(&c.RedisAddr,
			validation.When(c.RateLimitStore == RateLimitStoreRedis, validation.Required),
		),
		validation.Field(&c.RateLimitIPRequestsPerSec,
			validation.When(c.RateLimitIPEnabled, validation.Min(0.001)),
		),
		validation.Field(&c.RateLimitIPBurst,
			validation.When(c.RateLimitIPEnabled, validation.Min(1)),
		),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file from the current directory up to the root and
// loads the first one found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
