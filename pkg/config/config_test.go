package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `environment: test
cache:
  store: redis
  redis:
    host: localhost
    port: 6379
clickhouse:
  host: localhost
  port: 9000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadWithEnvOverridesPorts(t *testing.T) {
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CLICKHOUSE_PORT", "garbled")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Cache.Redis.Port != 6380 {
		t.Fatalf("redis port = %d, want 6380", c.Cache.Redis.Port)
	}
	// An unparsable override keeps the file value.
	if c.ClickHouse.Port != 9000 {
		t.Fatalf("clickhouse port = %d, want 9000", c.ClickHouse.Port)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\ncache:\n  store: carrier-pigeon\n"))
	if err == nil {
		t.Fatalf("expected error for unknown cache store")
	}
}
