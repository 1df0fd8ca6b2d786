package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PAYROLL_AUTOPAY_CRON", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "0 0 1 * *", cfg.Scheduler.AutopaySpec)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.True(t, cfg.Scheduler.AutopayEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PAYROLL_AUTOPAY_ENABLED", "false")
	t.Setenv("DB_MAX_RETRIES", "not-a-number")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Scheduler.AutopayEnabled)
	assert.Equal(t, 5, cfg.DB.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
}
