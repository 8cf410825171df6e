package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, "local", cfg.Lock.Driver)
	require.Equal(t, 5*time.Second, cfg.Lock.TTL)
	require.Equal(t, "@every 10s", cfg.Closer.Spec)
	require.True(t, cfg.Closer.Enabled)
	require.False(t, cfg.Redis.Enabled)
	require.Contains(t, cfg.MySQL.DSN, "clientFoundRows=true")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "pebble")
	t.Setenv("PEBBLE_DIR", "/tmp/ledger")
	t.Setenv("LEADER_TTL", "45s")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "pebble", cfg.Store.Driver)
	require.Equal(t, "/tmp/ledger", cfg.Pebble.Dir)
	require.Equal(t, 45*time.Second, cfg.Leader.TTL)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  driver: sqlite
sqlite:
  path: /var/lib/ledger.db
redis:
  enabled: true
  address: redis:6379
lock:
  driver: redis
  ttl: 2s
closer:
  spec: "*/5 * * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "/var/lib/ledger.db", cfg.SQLite.Path)
	require.Equal(t, "redis", cfg.Lock.Driver)
	require.Equal(t, 2*time.Second, cfg.Lock.TTL)
	require.Equal(t, "redis:6379", cfg.Redis.Address)
	require.Equal(t, "*/5 * * * * *", cfg.Closer.Spec)
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store.Driver = "postgres" }},
		{"unknown lock", func(c *Config) { c.Lock.Driver = "etcd" }},
		{"redis lock without redis", func(c *Config) { c.Lock.Driver = "redis" }},
		{"zero lock ttl", func(c *Config) { c.Lock.TTL = 0 }},
		{"closer without spec", func(c *Config) { c.Closer.Spec = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestGetConfigString(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Contains(t, cfg.GetConfigString(), "Store: memory")
}
