package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
interval: 10m
feeds:
  - name: walmart
    path: /var/lib/stockwatch/feeds/walmart.yaml
  - name: bestbuy
    path: /var/lib/stockwatch/feeds/bestbuy.yaml
notify:
  webhook_url: https://hooks.example.com/alerts
  health_webhook_url: https://hooks.example.com/health
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	require.Len(t, cfg.Feeds, 2)
	assert.Equal(t, "walmart", cfg.Feeds[0].Name)
	assert.Equal(t, "https://hooks.example.com/alerts", cfg.Notify.WebhookURL)
	assert.Equal(t, "https://hooks.example.com/health", cfg.Notify.HealthWebhookURL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - name: walmart
    path: ./walmart.yaml
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, cfg.Interval)
	assert.Empty(t, cfg.Notify.WebhookURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no feeds", "interval: 5m\n", "no feeds configured"},
		{"bad interval", "interval: soon\nfeeds:\n  - name: x\n    path: y\n", "invalid interval"},
		{"negative interval", "interval: -1m\nfeeds:\n  - name: x\n    path: y\n", "must be positive"},
		{"feed without name", "feeds:\n  - path: y\n", "missing name"},
		{"feed without path", "feeds:\n  - name: x\n", "missing path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
