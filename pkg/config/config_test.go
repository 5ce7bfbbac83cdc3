package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `environment: development
server:
  port: 8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
generator:
  default_scenario: normal
  default_days: 365
  max_range_days: 3660
  max_symbols: 50
  cache_ttl: 5m
live_feed:
  enabled: true
  tick_interval: 1s
kafka:
  enabled: false
  topic: marketsim.bars
redis:
  enabled: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Generator.CacheTTL != 5*time.Minute {
		t.Errorf("cache_ttl = %v", cfg.Generator.CacheTTL)
	}
	if !cfg.LiveFeed.Enabled || cfg.LiveFeed.TickInterval != time.Second {
		t.Errorf("live_feed = %+v", cfg.LiveFeed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing environment", "server:\n  port: 8080\ngenerator:\n  default_scenario: normal\n  max_range_days: 10\n  max_symbols: 5\n"},
		{"zero port", "environment: test\nserver:\n  port: 0\ngenerator:\n  default_scenario: normal\n  max_range_days: 10\n  max_symbols: 5\n"},
		{"missing scenario", "environment: test\nserver:\n  port: 8080\ngenerator:\n  max_range_days: 10\n  max_symbols: 5\n"},
		{"kafka without brokers", "environment: test\nserver:\n  port: 8080\ngenerator:\n  default_scenario: normal\n  max_range_days: 10\n  max_symbols: 5\nkafka:\n  enabled: true\n"},
	}
	for _, tc := range cases {
		if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "kafka1:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}
