package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DINNER_PLANNER_WEBHOOK_URL", "")
		t.Setenv("WEBHOOK_URL", "")
		t.Setenv("WEBHOOK_USERNAME", "")
		t.Setenv("WEBHOOK_PASSWORD", "")
		t.Setenv("APP_ENV", "")

		cfg, err := InitConfig()
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Webhook.Timeout)
		assert.Equal(t, 10*time.Second, cfg.Webhook.ProbeTimeout)
		assert.Equal(t, "8000", cfg.Server.HTTPPort)
		assert.False(t, cfg.Webhook.Configured())
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, ModeDevelopment, cfg.Environment())
	})

	t.Run("WebhookFromEnv", func(t *testing.T) {
		t.Setenv("DINNER_PLANNER_WEBHOOK_URL", "https://hooks.example.test/plan")
		t.Setenv("WEBHOOK_USERNAME", "planner")
		t.Setenv("WEBHOOK_PASSWORD", "s3cret")
		t.Setenv("WEBHOOK_TIMEOUT", "5s")
		t.Setenv("APP_ENV", "production")

		cfg, err := InitConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://hooks.example.test/plan", cfg.Webhook.URL)
		assert.Equal(t, "planner", cfg.Webhook.Username)
		assert.Equal(t, "s3cret", cfg.Webhook.Password)
		assert.Equal(t, 5*time.Second, cfg.Webhook.Timeout)
		assert.True(t, cfg.Webhook.Configured())
		assert.True(t, cfg.IsProduction())
	})

	t.Run("LegacyWebhookURL", func(t *testing.T) {
		t.Setenv("DINNER_PLANNER_WEBHOOK_URL", "")
		t.Setenv("WEBHOOK_URL", "https://legacy.example.test/hook")

		cfg, err := InitConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://legacy.example.test/hook", cfg.Webhook.URL)
	})
}

func TestWebhookMissing(t *testing.T) {
	assert.Equal(t,
		[]string{"DINNER_PLANNER_WEBHOOK_URL", "WEBHOOK_USERNAME", "WEBHOOK_PASSWORD"},
		Webhook{}.Missing())
	assert.Equal(t, []string{"WEBHOOK_PASSWORD"},
		Webhook{URL: "http://x", Username: "u"}.Missing())
	assert.Empty(t, Webhook{URL: "http://x", Username: "u", Password: "p"}.Missing())
}

func TestRequestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		server  time.Duration
		webhook time.Duration
		want    time.Duration
	}{
		{"ServerTimeoutWins", 2 * time.Minute, 30 * time.Second, 2 * time.Minute},
		{"RaisedToCoverWebhook", 200 * time.Millisecond, 2 * time.Second, 7 * time.Second},
		{"EqualToWebhook", 30 * time.Second, 30 * time.Second, 35 * time.Second},
		{"Unset", 0, 0, 60 * time.Second},
		{"UnsetServerLongWebhook", 0, 90 * time.Second, 95 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Server.Timeout = tt.server
			cfg.Webhook.Timeout = tt.webhook
			assert.Equal(t, tt.want, cfg.RequestTimeout())
		})
	}
}
