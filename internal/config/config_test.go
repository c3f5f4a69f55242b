package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Chdir(t.TempDir())
	t.Setenv("COURSECHAT_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load("")
	req.NoError(err)

	req.Equal("0.0.0.0:8080", cfg.HTTP.Addr())
	req.Equal("./data/coursechat.db", cfg.Database.DatabasePath)
	req.Equal(30*time.Second, cfg.Database.WriteTimeout)
	req.Equal(30*time.Second, cfg.WebSocket.PingInterval)
	req.Equal(100, cfg.Chat.RateLimit)
	req.Equal(time.Minute, cfg.Chat.RateWindow)
	req.Equal(StorageSQLite, cfg.Storage.Messages)
	req.Empty(cfg.NATS.URL)
	req.Empty(cfg.Transcript.Endpoint)
	req.Equal("s3cret", cfg.Auth.JWTSecret)
	req.Equal("INFO", cfg.Log.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, `
http:
  port: 9090
database:
  path: /tmp/chat.db
  timeout: 5s
auth:
  jwt_secret: from-file
  token_ttl: 1h
chat:
  rate_limit: 10
storage:
  messages: badger
  badger_dir: ""
nats:
  url: nats://localhost:4222
`)
	t.Setenv("COURSECHAT_HTTP_PORT", "7070")
	t.Setenv("COURSECHAT_LOG_LEVEL", "DEBUG")

	cfg, err := Load(path)
	req.NoError(err)

	req.Equal(7070, cfg.HTTP.Port, "environment wins over the file")
	req.Equal("/tmp/chat.db", cfg.Database.DatabasePath)
	req.Equal(5*time.Second, cfg.Database.WriteTimeout)
	req.Equal("from-file", cfg.Auth.JWTSecret)
	req.Equal(time.Hour, cfg.Auth.TokenTTL)
	req.Equal(10, cfg.Chat.RateLimit)
	req.Equal(StorageBadger, cfg.Storage.Messages)
	req.Equal("nats://localhost:4222", cfg.NATS.URL)
	req.Equal("COURSECHAT", cfg.NATS.Stream)
	req.Equal("DEBUG", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load("")
		require.ErrorContains(t, err, "jwt_secret")
	})

	t.Run("unknown storage", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  jwt_secret: x\nstorage:\n  messages: postgres\n")
		_, err := Load(path)
		require.ErrorContains(t, err, "unknown message storage")
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		t.Setenv("COURSECHAT_AUTH_JWT_SECRET", "x")
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }},
		{"host", func(c *Config) { c.HTTP.Host = "" }},
		{"database path", func(c *Config) { c.Database.DatabasePath = "" }},
		{"ping vs read timeout", func(c *Config) { c.WebSocket.ReadTimeout = c.WebSocket.PingInterval }},
		{"buffer", func(c *Config) { c.WebSocket.BufferSize = 0 }},
		{"ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"negative rate limit", func(c *Config) { c.Chat.RateLimit = -1 }},
		{"queue", func(c *Config) { c.Chat.FanoutQueueSize = 0 }},
		{"nats stream", func(c *Config) { c.NATS.URL = "nats://x"; c.NATS.Stream = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
