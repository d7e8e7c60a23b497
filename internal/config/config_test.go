package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "techmarket.db", cfg.DBPath)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 20, cfg.AIRateLimit)
	assert.Equal(t, time.Minute, cfg.AIRateWindow)
	assert.Equal(t, 10*time.Second, cfg.VideoPollInterval)
	assert.Equal(t, 30, cfg.VideoPollMaxAttempts)

	assert.False(t, cfg.PaymentConfigured())
	assert.False(t, cfg.MailConfigured())
	assert.False(t, cfg.RateLimitEnabled())
}

func TestLoadTogglesFollowCredentials(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "owner@example.com")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.PaymentConfigured())
	assert.True(t, cfg.MailConfigured())
	assert.True(t, cfg.RateLimitEnabled())
}

func TestLoadPaymentNeedsBothHalves(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PaymentConfigured())
}

func TestLoadRejectsMalformedInts(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositivePollBounds(t *testing.T) {
	t.Setenv("VIDEO_POLL_MAX_ATTEMPTS", "0")
	_, err := Load()
	assert.Error(t, err)
}
