package watch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is used when the config omits the poll interval.
const DefaultInterval = 5 * time.Minute

// Config describes a watch run: which feeds to poll, how often, and
// where alerts go. Loaded from a YAML file, e.g.:
//
//	interval: 10m
//	feeds:
//	  - name: walmart
//	    path: /var/lib/stockwatch/feeds/walmart.yaml
//	notify:
//	  webhook_url: https://hooks.slack.com/services/...
//	  health_webhook_url: https://hooks.slack.com/services/...
type Config struct {
	Interval time.Duration
	Feeds    []FeedConfig
	Notify   NotifyConfig
}

// FeedConfig names one observation drop file to poll.
type FeedConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// NotifyConfig holds webhook delivery settings. Both URLs are optional;
// with no webhook URL alerts go to the log.
type NotifyConfig struct {
	WebhookURL       string `yaml:"webhook_url"`
	HealthWebhookURL string `yaml:"health_webhook_url"`
}

type rawConfig struct {
	Interval string       `yaml:"interval"`
	Feeds    []FeedConfig `yaml:"feeds"`
	Notify   NotifyConfig `yaml:"notify"`
}

// LoadConfig reads and validates a watch config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := &Config{
		Interval: DefaultInterval,
		Feeds:    raw.Feeds,
		Notify:   raw.Notify,
	}

	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("config %s: invalid interval %q: %w", path, raw.Interval, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("config %s: interval must be positive, got %q", path, raw.Interval)
		}
		cfg.Interval = d
	}

	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("config %s: no feeds configured", path)
	}
	for i, feed := range cfg.Feeds {
		if feed.Name == "" {
			return nil, fmt.Errorf("config %s: feed %d: missing name", path, i)
		}
		if feed.Path == "" {
			return nil, fmt.Errorf("config %s: feed %q: missing path", path, feed.Name)
		}
	}

	return cfg, nil
}
