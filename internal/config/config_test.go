package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.NumStreamWorkers)
	assert.Equal(t, DriverMySQL, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.MySQL.ConnMaxLifetime)
	assert.True(t, cfg.MySQL.AutoMigrate)
	assert.Equal(t, "library:", cfg.Redis.KeyPrefix)
	assert.Equal(t, ":50051", cfg.Server.GRPCAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LIBRARY_STORAGE_DRIVER", "memory")
	t.Setenv("LIBRARY_SERVER_GRPC_PORT", "6000")
	t.Setenv("LIBRARY_STORAGE_QUERY_TIMEOUT", "750ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 6000, cfg.Server.GRPCPort)
	assert.Equal(t, 750*time.Millisecond, cfg.Storage.QueryTimeout)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  grpc_port: 7000
storage:
  driver: redis
redis:
  addr: cache:6379
  key_prefix: "lib-test:"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.GRPCPort)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "lib-test:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{GRPCPort: 50051, HTTPPort: 8080},
			Storage: StorageConfig{Driver: DriverMySQL, QueryTimeout: time.Second},
			MySQL:   MySQLConfig{DSN: "root:root@tcp(localhost:3306)/library"},
			Redis:   RedisConfig{Addr: "localhost:6379"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad grpc port", func(c *Config) { c.Server.GRPCPort = 0 }},
		{"bad http port", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"same ports", func(c *Config) { c.Server.HTTPPort = c.Server.GRPCPort }},
		{"negative workers", func(c *Config) { c.Server.NumStreamWorkers = -1 }},
		{"zero timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"mysql without dsn", func(c *Config) { c.MySQL.DSN = "" }},
		{"redis without addr", func(c *Config) { c.Storage.Driver = DriverRedis; c.Redis.Addr = "" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
