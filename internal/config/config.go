package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig aggregates runtime configuration. Everything is injected through
// environment variables; credential blocks are deliberately optional because
// their absence selects a degraded mode (mock payments, silent mail skip,
// no AI rate limiting) instead of refusing to start.
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	// Razorpay credentials. Both empty means mock order mode.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// SMTP relay. Host+User present means order emails are attempted.
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	AdminEmail string

	GeminiAPIKey string

	// Redis is only used to rate limit the AI proxy endpoints; an empty
	// addr disables the limiter entirely.
	RedisAddr string
	RedisDB   int

	AIRateLimit  int
	AIRateWindow time.Duration

	// Video generation poll loop bounds.
	VideoPollInterval    time.Duration
	VideoPollMaxAttempts int
}

// Load reads and validates configuration, falling back to defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:             getEnv("HTTP_ADDR", ":3000"),
		DBPath:               getEnv("DB_PATH", "techmarket.db"),
		RazorpayKeyID:        getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:    getEnv("RAZORPAY_KEY_SECRET", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             587,
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPass:             getEnv("SMTP_PASS", ""),
		SMTPFrom:             getEnv("SMTP_FROM", ""),
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              0,
		AIRateLimit:          20,
		AIRateWindow:         time.Minute,
		VideoPollInterval:    10 * time.Second,
		VideoPollMaxAttempts: 30,
	}

	smtpPort, err := getEnvInt("SMTP_PORT", cfg.SMTPPort)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = smtpPort

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("AI_RATE_LIMIT", cfg.AIRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid AI_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("AI_RATE_LIMIT must be > 0")
	}
	cfg.AIRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("AI_RATE_WINDOW_SEC", int(cfg.AIRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid AI_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("AI_RATE_WINDOW_SEC must be > 0")
	}
	cfg.AIRateWindow = time.Duration(rateWindowSec) * time.Second

	pollSec, err := getEnvInt("VIDEO_POLL_INTERVAL_SEC", int(cfg.VideoPollInterval.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid VIDEO_POLL_INTERVAL_SEC: %w", err)
	}
	if pollSec <= 0 {
		return AppConfig{}, fmt.Errorf("VIDEO_POLL_INTERVAL_SEC must be > 0")
	}
	cfg.VideoPollInterval = time.Duration(pollSec) * time.Second

	pollMax, err := getEnvInt("VIDEO_POLL_MAX_ATTEMPTS", cfg.VideoPollMaxAttempts)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid VIDEO_POLL_MAX_ATTEMPTS: %w", err)
	}
	if pollMax <= 0 {
		return AppConfig{}, fmt.Errorf("VIDEO_POLL_MAX_ATTEMPTS must be > 0")
	}
	cfg.VideoPollMaxAttempts = pollMax

	return cfg, nil
}

// PaymentConfigured reports whether real Razorpay credentials are present.
// When false, create-order serves mock order handles.
func (c AppConfig) PaymentConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

// MailConfigured reports whether order emails should be attempted.
func (c AppConfig) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

// RateLimitEnabled reports whether the AI endpoints get a Redis rate limiter.
func (c AppConfig) RateLimitEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv reads a string env var, returning the fallback when unset or blank.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer env var, returning the fallback when unset.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
